package branchservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BranchService.
// Справочник филиалов для ядра расписания read-only и дергается на каждом
// бронировании, поэтому ответы кэшируются в памяти с TTL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента BranchService
func NewClient(baseURL string, timeout, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: cache.New(cacheTTL, 2*cacheTTL),
		log:   log,
	}
}

// GetBranch получает филиал с боксами и рабочими часами
func (c *Client) GetBranch(ctx context.Context, branchID int64) (*Branch, error) {
	key := fmt.Sprintf("branch:%d", branchID)
	if cached, found := c.cache.Get(key); found {
		return cached.(*Branch), nil
	}

	url := fmt.Sprintf("%s/internal/branches/%d", c.baseURL, branchID)

	var branch Branch
	if err := c.getJSON(ctx, url, &branch, ErrBranchNotFound); err != nil {
		return nil, err
	}

	c.cache.Set(key, &branch, cache.DefaultExpiration)
	return &branch, nil
}

// GetService получает услугу из каталога филиала
func (c *Client) GetService(ctx context.Context, branchID, serviceID int64) (*ServiceItem, error) {
	key := fmt.Sprintf("service:%d:%d", branchID, serviceID)
	if cached, found := c.cache.Get(key); found {
		return cached.(*ServiceItem), nil
	}

	url := fmt.Sprintf("%s/internal/branches/%d/services/%d", c.baseURL, branchID, serviceID)

	var service ServiceItem
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	c.cache.Set(key, &service, cache.DefaultExpiration)
	return &service, nil
}

// getJSON выполняет GET запрос и декодирует ответ.
// notFoundErr возвращается на 404.
func (c *Client) getJSON(ctx context.Context, url string, dst interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
