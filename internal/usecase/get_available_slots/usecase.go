package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	branchClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case получения доступных вариантов начала обслуживания.
//
// Read-only витрина перед бронированием: показывает, в какое время филиал
// может принять обслуживание запрошенной длительности, не удерживая слоты.
// Отсутствие расписания на дату и прошедшая дата — валидные состояния с
// пустым списком вариантов, а не ошибки.
type UseCase struct {
	slotRepo     SlotRepository
	branchClient BranchServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	branchClient BranchServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		branchClient: branchClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных вариантов начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: branch=%d, date=%s, duration=%d",
		req.BranchID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем филиал
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailableSlots: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	resp := &Response{
		BranchID: req.BranchID,
		Date:     req.Date,
		Starts:   []AvailableStart{},
	}

	// 3. Прошедшая дата — пустой список, бронировать в прошлое нельзя
	nowLocal := uc.timeProvider.Now().In(branch.Location())
	if isDateInPast(req.Date, nowLocal) {
		return resp, nil
	}

	// 4. Загружаем слоты дня; отсутствие расписания — валидное состояние
	slots, err := uc.slotRepo.GetByBranchAndDate(ctx, req.BranchID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load slots: %v", err)
		return nil, fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		return resp, nil
	}

	// 5. Считаем длину рана под запрошенную длительность
	slotDuration, err := slots[0].DurationMinutes()
	if err != nil || slotDuration <= 0 {
		uc.logger.Error("GetAvailableSlots: failed to compute slot duration: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slot duration: %v", ErrInternal, err)
	}
	slotsNeeded := 1
	if req.DurationMinutes > 0 {
		slotsNeeded = (req.DurationMinutes + slotDuration - 1) / slotDuration
	}
	resp.DurationMinutes = slotsNeeded * slotDuration

	// 6. Собираем варианты начала по всем боксам
	starts := collectStarts(slots, slotsNeeded)

	// 7. При запросе на сегодня отбрасываем уже прошедшие варианты
	if isSameDay(req.Date, nowLocal) {
		starts = filterPastStarts(starts, types.NewTimeString(nowLocal))
	}

	resp.Starts = starts

	uc.logger.Info("GetAvailableSlots: branch=%d date=%s: %d start option(s) for %d minute(s)",
		req.BranchID, req.Date.Format(domain.DateFormat), len(starts), resp.DurationMinutes)

	return resp, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	todayOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(todayOnly)
}
