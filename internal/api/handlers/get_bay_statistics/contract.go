package get_bay_statistics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

type ScheduleService interface {
	GetBayStatistics(ctx context.Context, bayID int64, date time.Time) (*domain.BaySlotStatistics, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
