package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	storage "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый сервис бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID возвращает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings возвращает бронирования клиента, опционально по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customer id must be positive", ErrInvalidInput)
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		status = &st
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list customer bookings: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// GetBranchBookings возвращает бронирования филиала с фильтрацией
// по боксу, периоду и статусу
func (s *Service) GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error) {
	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	bookings, err := s.bookingRepo.GetByBranchWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list branch bookings: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает занятые им слоты.
// Статус отмены зависит от инициатора: клиент — cancelled_by_customer,
// иначе — cancelled_by_branch.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		return nil, fmt.Errorf("%w: booking %d has status %s", ErrCannotCancel, id, booking.Status)
	}

	status := domain.StatusCancelledByBranch
	if req.RequestedBy == booking.CustomerID {
		status = domain.StatusCancelledByCustomer
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.Cancel(ctx, id, status, req.CancellationReason); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}
		if _, err := s.slotRepo.ReleaseByBooking(ctx, id); err != nil {
			return fmt.Errorf("release slots: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrCannotCancel) {
			return nil, fmt.Errorf("%w: booking %d", ErrCannotCancel, id)
		}
		s.logger.Error("bookings.Cancel: booking %d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("bookings.Cancel: booking %d cancelled with status %s by user %d", id, status, req.RequestedBy)

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}

// UpdateStatus переводит бронирование в новый статус (confirmed -> in_progress,
// in_progress -> completed, no_show и т.д.)
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// Отмена идет через Cancel — там освобождаются слоты
	if status == domain.StatusCancelledByCustomer || status == domain.StatusCancelledByBranch {
		return nil, fmt.Errorf("%w: use cancel endpoint for cancellation", ErrInvalidStatus)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !isAllowedTransition(booking.Status, status) {
		return nil, fmt.Errorf("%w: transition %s -> %s is not allowed", ErrInvalidStatus, booking.Status, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	// При no_show слоты остаются занятыми: бокс все равно простаивал

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}

// isAllowedTransition проверяет допустимость перехода между статусами
func isAllowedTransition(from, to domain.BookingStatus) bool {
	switch from {
	case domain.StatusPending:
		return to == domain.StatusConfirmed
	case domain.StatusConfirmed:
		return to == domain.StatusInProgress || to == domain.StatusNoShow
	case domain.StatusInProgress:
		return to == domain.StatusCompleted
	default:
		return false
	}
}
