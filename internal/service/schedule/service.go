package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Service read-операции над расписанием и административная блокировка дня
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// GetBayStatistics возвращает статистику слотов бокса на дату.
// Отсутствие сгенерированного расписания — валидное состояние:
// возвращаются нулевые счётчики, а не ошибка.
func (s *Service) GetBayStatistics(ctx context.Context, bayID int64, date time.Time) (*domain.BaySlotStatistics, error) {
	if bayID <= 0 {
		return nil, fmt.Errorf("%w: bayID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	counts, err := s.slotRepo.CountByStatus(ctx, bayID, date)
	if err != nil {
		s.logger.Error("GetBayStatistics: failed to count slots for bay=%d date=%s: %v",
			bayID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetBayStatistics - repository error: %v", ErrInternal, err)
	}

	stats := &domain.BaySlotStatistics{
		BayID:          bayID,
		Date:           date,
		AvailableSlots: counts[domain.SlotAvailable],
		ReservedSlots:  counts[domain.SlotReserved],
		BookedSlots:    counts[domain.SlotBooked],
		BlockedSlots:   counts[domain.SlotBlocked],
	}
	stats.TotalSlots = stats.AvailableSlots + stats.ReservedSlots + stats.BookedSlots + stats.BlockedSlots

	return stats, nil
}

// GetDaySchedule возвращает все слоты филиала на дату
// в порядке (bay_id, start_time)
func (s *Service) GetDaySchedule(ctx context.Context, branchID int64, date time.Time) ([]*domain.Slot, error) {
	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	slots, err := s.slotRepo.GetByBranchAndDate(ctx, branchID, date)
	if err != nil {
		s.logger.Error("GetDaySchedule: failed to load slots for branch=%d date=%s: %v",
			branchID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	return slots, nil
}

// BlockDate блокирует все свободные слоты филиала на дату
// (административное закрытие дня). Занятые слоты не трогаются.
func (s *Service) BlockDate(ctx context.Context, branchID int64, date time.Time) (int, error) {
	if branchID <= 0 {
		return 0, fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	blocked, err := s.slotRepo.BlockDate(ctx, branchID, date)
	if err != nil {
		s.logger.Error("BlockDate: failed to block slots for branch=%d date=%s: %v",
			branchID, date.Format(domain.DateFormat), err)
		return 0, fmt.Errorf("%w: BlockDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("BlockDate: blocked %d slot(s) for branch=%d date=%s",
		blocked, branchID, date.Format(domain.DateFormat))
	return blocked, nil
}
