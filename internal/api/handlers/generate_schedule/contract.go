package generate_schedule

import (
	"context"

	generateSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

type GenerateScheduleUseCase interface {
	Execute(ctx context.Context, req *generateSchedule.Request) (*generateSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
