package generate_week

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	schedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

// ScheduleGenerator интерфейс генератора расписания на одну дату
type ScheduleGenerator interface {
	Execute(ctx context.Context, req *schedule.Request) (*schedule.Response, error)
}

// BranchServiceClient интерфейс клиента для BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
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
