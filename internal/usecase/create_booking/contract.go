package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
	schedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// SlotAllocator интерфейс аллокатора слотов: двухфазное резервирование
// непрерывного рана с последующим подтверждением или откатом
type SlotAllocator interface {
	Reserve(ctx context.Context, req *allocation.ReserveRequest) (*domain.ReservedRun, error)
	Confirm(ctx context.Context, token string, bookingID int64) error
	Release(ctx context.Context, token string) error
}

// ScheduleGenerator интерфейс генератора расписания: используется для
// ленивой генерации, когда на дату еще нет слотов
type ScheduleGenerator interface {
	Execute(ctx context.Context, req *schedule.Request) (*schedule.Response, error)
}

// BranchServiceClient интерфейс клиента для BranchService
type BranchServiceClient interface {
	GetBranch(ctx context.Context, branchID int64) (*branchservice.Branch, error)
	GetService(ctx context.Context, branchID, serviceID int64) (*branchservice.ServiceItem, error)
}

// CustomerServiceClient интерфейс клиента для CustomerService
type CustomerServiceClient interface {
	EnsureCustomer(ctx context.Context, req *customerservice.EnsureCustomerRequest) (*customerservice.Customer, error)
	EnsureVehicle(ctx context.Context, customerID int64, req *customerservice.EnsureVehicleRequest) (*customerservice.Vehicle, error)
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
