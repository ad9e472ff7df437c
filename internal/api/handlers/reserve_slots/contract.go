package reserve_slots

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
)

type SlotAllocator interface {
	Reserve(ctx context.Context, req *allocation.ReserveRequest) (*domain.ReservedRun, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
