package allocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
)

// Service аллокатор слотов: поиск и резервирование непрерывного рана
// свободных слотов одного бокса под запрошенную длительность.
//
// Резервирование двухфазное: Reserve выдает провизорный холд с токеном
// и сроком жизни, терминальные операции — Confirm (ран становится booked)
// или Release (ран возвращается в available). Просроченные холды
// переутилизируются лениво при следующем поиске.
type Service struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger

	maxAttempts int
	holdTTL     time.Duration
}

// NewService создает новый экземпляр аллокатора.
// maxAttempts — бюджет повторов поиска при проигранных гонках,
// holdTTL — время жизни неподтвержденного резервирования.
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	maxAttempts int,
	holdTTL time.Duration,
) *Service {
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxReserveAttempts
	}
	if holdTTL <= 0 {
		holdTTL = domain.DefaultReservationTTLMinutes * time.Minute
	}
	return &Service{
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
		maxAttempts:  maxAttempts,
		holdTTL:      holdTTL,
	}
}

// Reserve находит и резервирует непрерывный ран слотов.
//
// Поиск (чтение без блокировок) и атомарный переход available→reserved
// разнесены: переход выполняет условный batch UPDATE, и если другой вызов
// успел занять часть рана между чтением и записью, транзакция откатывается
// и поиск повторяется от свежего состояния — проигранная гонка превращается
// в новый поиск, а не в ошибку. После исчерпания бюджета повторов
// возвращается ErrNoCapacity.
func (s *Service) Reserve(ctx context.Context, req *ReserveRequest) (*domain.ReservedRun, error) {
	if req.DurationMinutes <= 0 || req.DurationMinutes > domain.MaxBookingDurationMinutes {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, req.DurationMinutes)
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		now := s.timeProvider.Now()

		// Ленивая переработка просроченных холдов: брошенные клиентами
		// резервирования не должны навсегда съедать ёмкость дня
		reclaimed, err := s.slotRepo.ReleaseExpired(ctx, req.BranchID, req.Date, now)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to reclaim expired holds: %v", ErrInternal, err)
		}
		if reclaimed > 0 {
			s.logger.Info("Reserve: reclaimed %d expired holds for branch=%d date=%s",
				reclaimed, req.BranchID, req.Date.Format(domain.DateFormat))
		}

		slots, err := s.slotRepo.GetByBranchAndDate(ctx, req.BranchID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
		}
		if len(slots) == 0 {
			return nil, ErrNoSchedule
		}

		slotsNeeded, err := s.slotsNeeded(slots, req.DurationMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		run := findRun(slots, slotsNeeded, req.PreferredStart)
		if run == nil {
			return nil, ErrNoCapacity
		}

		token := uuid.NewString()
		expiresAt := now.Add(s.holdTTL)

		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			return s.slotRepo.ReserveRun(txCtx, run.slotIDs, token, expiresAt)
		})
		if err != nil {
			if errors.Is(err, slotRepo.ErrRunConflict) {
				// Гонка проиграна: другой вызов занял часть рана.
				// Повторяем поиск от текущего состояния.
				s.metrics.IncReservationConflict()
				s.logger.Warn("Reserve: lost race for bay=%d start=%s (attempt %d/%d), retrying search",
					run.bayID, run.startTime, attempt, s.maxAttempts)
				continue
			}
			return nil, fmt.Errorf("%w: failed to reserve run: %v", ErrInternal, err)
		}

		s.logger.Info("Reserve: reserved %d slot(s) bay=%d %s-%s branch=%d date=%s token=%s",
			len(run.slotIDs), run.bayID, run.startTime, run.endTime,
			req.BranchID, req.Date.Format(domain.DateFormat), token)

		return &domain.ReservedRun{
			Token:     token,
			BranchID:  req.BranchID,
			BayID:     run.bayID,
			SlotIDs:   run.slotIDs,
			Date:      req.Date,
			StartTime: run.startTime,
			EndTime:   run.endTime,
			ExpiresAt: expiresAt,
		}, nil
	}

	// Бюджет повторов исчерпан: под постоянной контентией это
	// эквивалентно отсутствию ёмкости
	s.logger.Warn("Reserve: retry budget exhausted for branch=%d date=%s",
		req.BranchID, req.Date.Format(domain.DateFormat))
	return nil, ErrNoCapacity
}

// Confirm подтверждает резервирование: весь ран переходит в booked
// с привязкой к бронированию
func (s *Service) Confirm(ctx context.Context, token string, bookingID int64) error {
	confirmed, err := s.slotRepo.ConfirmRun(ctx, token, bookingID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: failed to confirm reservation: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: reservation token=%s confirmed as booking id=%d (%d slots)",
		token, bookingID, confirmed)
	return nil
}

// Release освобождает резервирование: весь ран возвращается в available
func (s *Service) Release(ctx context.Context, token string) error {
	released, err := s.slotRepo.ReleaseRun(ctx, token)
	if err != nil {
		if errors.Is(err, slotRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: failed to release reservation: %v", ErrInternal, err)
	}

	s.logger.Info("Release: reservation token=%s released (%d slots)", token, released)
	return nil
}

// slotsNeeded вычисляет число слотов под длительность (округление вверх).
// Длительность слота едина для филиала и берётся из первого слота дня.
func (s *Service) slotsNeeded(slots []*domain.Slot, durationMinutes int) (int, error) {
	slotDuration, err := slots[0].DurationMinutes()
	if err != nil {
		return 0, fmt.Errorf("failed to compute slot duration: %v", err)
	}
	if slotDuration <= 0 {
		return 0, fmt.Errorf("non-positive slot duration %d", slotDuration)
	}
	return (durationMinutes + slotDuration - 1) / slotDuration, nil
}
