package customerservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с CustomerService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CustomerService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// EnsureCustomer создает клиента или возвращает существующего по телефону
func (c *Client) EnsureCustomer(ctx context.Context, req *EnsureCustomerRequest) (*Customer, error) {
	url := fmt.Sprintf("%s/internal/customers", c.baseURL)

	var customer Customer
	if err := c.postJSON(ctx, url, req, &customer); err != nil {
		return nil, err
	}

	c.log.Info("EnsureCustomer: resolved customer id=%d for phone=%s", customer.ID, customer.Phone)
	return &customer, nil
}

// EnsureVehicle создает автомобиль клиента или возвращает существующий по госномеру
func (c *Client) EnsureVehicle(ctx context.Context, customerID int64, req *EnsureVehicleRequest) (*Vehicle, error) {
	url := fmt.Sprintf("%s/internal/customers/%d/vehicles", c.baseURL, customerID)

	var vehicle Vehicle
	if err := c.postJSON(ctx, url, req, &vehicle); err != nil {
		return nil, err
	}

	c.log.Info("EnsureVehicle: resolved vehicle id=%d for customer id=%d", vehicle.ID, customerID)
	return &vehicle, nil
}

// postJSON выполняет POST запрос с JSON телом и декодирует ответ
func (c *Client) postJSON(ctx context.Context, url string, payload, dst interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
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
	case http.StatusOK, http.StatusCreated:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s", ErrInvalidPayload, string(respBody))
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
