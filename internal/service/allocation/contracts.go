package allocation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByBranchAndDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.Slot, error)
	ReserveRun(ctx context.Context, slotIDs []int64, token string, reservedUntil time.Time) error
	ConfirmRun(ctx context.Context, token string, bookingID int64) (int, error)
	ReleaseRun(ctx context.Context, token string) (int, error)
	ReleaseExpired(ctx context.Context, branchID int64, date time.Time, now time.Time) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс метрик аллокатора
type Metrics interface {
	IncReservationConflict()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// NopMetrics заглушка метрик, когда сбор метрик выключен
type NopMetrics struct{}

// IncReservationConflict ничего не делает
func (NopMetrics) IncReservationConflict() {}
