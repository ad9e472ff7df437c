package get_available_slots

import (
	"context"

	usecase "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *usecase.Request) (*usecase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
