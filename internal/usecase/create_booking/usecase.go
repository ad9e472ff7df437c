package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	branchClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	customerClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
	schedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

// UseCase use case создания бронирования.
//
// Оркестрация поверх двухфазного резервирования: сначала аллокатор выдает
// провизорный холд на ран слотов, затем бронирование сохраняется в БД, и
// только после этого холд подтверждается. Сбой на любом шаге компенсируется:
// несохранившееся бронирование освобождает холд, неподтвержденный холд
// удаляет бронирование.
type UseCase struct {
	bookingRepo    BookingRepository
	allocator      SlotAllocator
	generator      ScheduleGenerator
	branchClient   BranchServiceClient
	customerClient CustomerServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	allocator SlotAllocator,
	generator ScheduleGenerator,
	branchClient BranchServiceClient,
	customerClient CustomerServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		allocator:      allocator,
		generator:      generator,
		branchClient:   branchClient,
		customerClient: customerClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: branch=%d, date=%s, services=%v",
		req.BranchID, req.Date.Format(domain.DateFormat), req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем филиал
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("CreateBooking: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateBooking: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Дата не должна быть в прошлом (в часовом поясе филиала)
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, branch.Location()); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 4. Загружаем заказанные услуги и считаем суммарную длительность
	services := make([]*branchClient.ServiceItem, 0, len(req.ServiceIDs))
	for _, serviceID := range req.ServiceIDs {
		svc, err := uc.branchClient.GetService(ctx, req.BranchID, serviceID)
		if err != nil {
			if errors.Is(err, branchClient.ErrServiceNotFound) {
				uc.logger.Warn("CreateBooking: service id=%d not found in branch id=%d", serviceID, req.BranchID)
				return nil, fmt.Errorf("%w: service id=%d", ErrServiceNotFound, serviceID)
			}
			uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		services = append(services, svc)
	}

	totalMinutes, totalPrice, serviceSummary := summarizeServices(services)
	if totalMinutes <= 0 {
		uc.logger.Warn("CreateBooking: services %v have zero total duration", req.ServiceIDs)
		return nil, fmt.Errorf("%w: total service duration must be positive", ErrInvalidInput)
	}

	// 5. Создаем/находим клиента и его автомобиль в CustomerService
	customer, err := uc.customerClient.EnsureCustomer(ctx, &customerClient.EnsureCustomerRequest{
		Name:  req.Customer.Name,
		Phone: req.Customer.Phone,
	})
	if err != nil {
		if errors.Is(err, customerClient.ErrInvalidPayload) {
			uc.logger.Warn("CreateBooking: customer data rejected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCustomerRejected, err)
		}
		uc.logger.Error("CreateBooking: failed to ensure customer: %v", err)
		return nil, fmt.Errorf("%w: failed to ensure customer: %v", ErrInternal, err)
	}

	vehicle, err := uc.customerClient.EnsureVehicle(ctx, customer.ID, &customerClient.EnsureVehicleRequest{
		LicensePlate: req.Vehicle.LicensePlate,
		Brand:        req.Vehicle.Brand,
		Model:        req.Vehicle.Model,
	})
	if err != nil {
		if errors.Is(err, customerClient.ErrInvalidPayload) {
			uc.logger.Warn("CreateBooking: vehicle data rejected: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCustomerRejected, err)
		}
		uc.logger.Error("CreateBooking: failed to ensure vehicle: %v", err)
		return nil, fmt.Errorf("%w: failed to ensure vehicle: %v", ErrInternal, err)
	}

	// 6. Резервируем ран слотов (с ленивой генерацией расписания)
	run, err := uc.reserveRun(ctx, req, totalMinutes)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: reserved bay=%d %s-%s token=%s",
		run.BayID, run.StartTime, run.EndTime, run.Token)

	// 7. Сохраняем бронирование
	durationMinutes, err := run.StartTime.MinutesUntil(run.EndTime)
	if err != nil {
		uc.releaseReservation(ctx, run.Token)
		return nil, fmt.Errorf("%w: failed to compute run duration: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		Number:          uuid.NewString(),
		CustomerID:      customer.ID,
		VehicleID:       vehicle.ID,
		BranchID:        req.BranchID,
		BayID:           run.BayID,
		SlotIDs:         run.SlotIDs,
		BookingDate:     req.Date,
		StartTime:       run.StartTime,
		EndTime:         run.EndTime,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
		// Денормализация данных услуг и автомобиля
		ServiceIDs:     req.ServiceIDs,
		ServiceSummary: serviceSummary,
		TotalPrice:     totalPrice,
		VehiclePlate:   &vehicle.LicensePlate,
		VehicleBrand:   vehicle.Brand,
		VehicleModel:   vehicle.Model,
		Notes:          req.Notes,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to persist booking: %v", err)
		// Компенсация: бронирование не сохранилось, холд надо вернуть
		if relErr := uc.allocator.Release(ctx, run.Token); relErr != nil {
			uc.logger.Error("CreateBooking: CRITICAL: failed to release reservation token=%s after persistence failure: %v",
				run.Token, relErr)
			return nil, fmt.Errorf("%w: %v", ErrCompensationFailed, relErr)
		}
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	// 8. Подтверждаем резервирование: слоты переходят в booked
	if err := uc.allocator.Confirm(ctx, run.Token, created.ID); err != nil {
		uc.logger.Error("CreateBooking: failed to confirm reservation token=%s for booking id=%d: %v",
			run.Token, created.ID, err)
		// Холд истек или был переработан — бронирование без слотов не живет
		if delErr := uc.bookingRepo.Delete(ctx, created.ID); delErr != nil {
			uc.logger.Error("CreateBooking: CRITICAL: failed to delete orphaned booking id=%d: %v",
				created.ID, delErr)
		}
		if errors.Is(err, allocation.ErrReservationNotFound) {
			return nil, ErrSlotConflict
		}
		return nil, fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d number=%s", created.ID, created.Number)

	return &Response{
		ID:              created.ID,
		Number:          created.Number,
		CustomerID:      created.CustomerID,
		VehicleID:       created.VehicleID,
		BranchID:        created.BranchID,
		BayID:           created.BayID,
		BookingDate:     created.BookingDate,
		StartTime:       created.StartTime.String(),
		EndTime:         created.EndTime.String(),
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		ServiceIDs:      created.ServiceIDs,
		ServiceSummary:  created.ServiceSummary,
		TotalPrice:      created.TotalPrice,
		VehiclePlate:    created.VehiclePlate,
		VehicleBrand:    created.VehicleBrand,
		VehicleModel:    created.VehicleModel,
		Notes:           created.Notes,
		CreatedAt:       created.CreatedAt,
		UpdatedAt:       created.UpdatedAt,
	}, nil
}

// reserveRun резервирует ран слотов под суммарную длительность услуг.
// Если расписания на дату еще нет, генерирует его и повторяет попытку.
func (uc *UseCase) reserveRun(ctx context.Context, req *Request, durationMinutes int) (*domain.ReservedRun, error) {
	reserveReq := &allocation.ReserveRequest{
		BranchID:        req.BranchID,
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		PreferredStart:  req.PreferredStart,
	}

	run, err := uc.allocator.Reserve(ctx, reserveReq)
	if err == nil {
		return run, nil
	}

	switch {
	case errors.Is(err, allocation.ErrNoSchedule):
		// Расписание на дату еще не генерировалось — генерируем лениво
		uc.logger.Info("CreateBooking: no schedule for branch=%d date=%s, generating",
			req.BranchID, req.Date.Format(domain.DateFormat))

		if _, genErr := uc.generator.Execute(ctx, &schedule.Request{
			BranchID: req.BranchID,
			Date:     req.Date,
		}); genErr != nil {
			switch {
			case errors.Is(genErr, schedule.ErrBranchClosed):
				return nil, ErrBranchClosed
			case errors.Is(genErr, schedule.ErrInvalidDate):
				return nil, ErrInvalidDate
			case errors.Is(genErr, schedule.ErrBranchNotFound):
				return nil, ErrBranchNotFound
			default:
				uc.logger.Error("CreateBooking: lazy schedule generation failed: %v", genErr)
				return nil, fmt.Errorf("%w: failed to generate schedule: %v", ErrInternal, genErr)
			}
		}

		run, err = uc.allocator.Reserve(ctx, reserveReq)
		if err == nil {
			return run, nil
		}
		if errors.Is(err, allocation.ErrNoCapacity) || errors.Is(err, allocation.ErrNoSchedule) {
			return nil, ErrNoCapacity
		}
		uc.logger.Error("CreateBooking: reserve after generation failed: %v", err)
		return nil, fmt.Errorf("%w: failed to reserve slots: %v", ErrInternal, err)

	case errors.Is(err, allocation.ErrNoCapacity):
		uc.logger.Warn("CreateBooking: no capacity for branch=%d date=%s duration=%d",
			req.BranchID, req.Date.Format(domain.DateFormat), durationMinutes)
		return nil, ErrNoCapacity

	case errors.Is(err, allocation.ErrInvalidDuration):
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)

	default:
		uc.logger.Error("CreateBooking: reserve failed: %v", err)
		return nil, fmt.Errorf("%w: failed to reserve slots: %v", ErrInternal, err)
	}
}

// releaseReservation освобождает холд, проглатывая ошибку: холд в любом
// случае истечет по TTL, а вызывающему уже есть что вернуть
func (uc *UseCase) releaseReservation(ctx context.Context, token string) {
	if err := uc.allocator.Release(ctx, token); err != nil {
		uc.logger.Error("CreateBooking: failed to release reservation token=%s: %v", token, err)
	}
}
