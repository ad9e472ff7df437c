package block_schedule

import (
	"context"
	"time"
)

type ScheduleService interface {
	BlockDate(ctx context.Context, branchID int64, date time.Time) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
