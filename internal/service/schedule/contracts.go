package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountByStatus(ctx context.Context, bayID int64, date time.Time) (map[domain.SlotStatus]int, error)
	GetByBranchAndDate(ctx context.Context, branchID int64, date time.Time) ([]*domain.Slot, error)
	BlockDate(ctx context.Context, branchID int64, date time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
