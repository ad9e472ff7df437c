package generate_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	branchClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
)

// UseCase use case генерации расписания филиала на дату.
//
// Генерация идемпотентна: повторный вызов для той же пары (филиал, дата)
// пропускает боксы, у которых слоты уже есть, и ничего не перетирает —
// занятость существующих слотов сохраняется.
type UseCase struct {
	slotRepo     SlotRepository
	branchClient BranchServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	branchClient BranchServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		branchClient: branchClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case генерации расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSchedule: branch=%d, date=%s",
		req.BranchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем филиал
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("GenerateSchedule: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GenerateSchedule: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Дата не должна быть в прошлом (в часовом поясе филиала)
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now, branch.Location()) {
		uc.logger.Warn("GenerateSchedule: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем конфигурацию филиала
	if err := validateBranchConfig(branch); err != nil {
		uc.logger.Warn("GenerateSchedule: branch id=%d config invalid: %v", req.BranchID, err)
		return nil, err
	}

	// 5. Рабочие часы на день генерации
	hours := branch.HoursFor(req.Date.Weekday())
	if err := validateDayHours(hours); err != nil {
		if errors.Is(err, ErrBranchClosed) {
			uc.logger.Info("GenerateSchedule: branch id=%d is closed on %s",
				req.BranchID, req.Date.Format(domain.DateFormat))
		} else {
			uc.logger.Warn("GenerateSchedule: branch id=%d day hours invalid: %v", req.BranchID, err)
		}
		return nil, err
	}

	resp := &Response{
		BranchID:  req.BranchID,
		Date:      req.Date,
		BaysTotal: len(branch.Bays),
	}

	// 6. Генерация в транзакции: проверка уже сгенерированных боксов и вставка
	// идут атомарно, гонка двух генераций решается ON CONFLICT на вставке
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		generated, err := uc.slotRepo.GetGeneratedBayIDs(txCtx, req.BranchID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to check existing schedule: %v", ErrInternal, err)
		}

		generatedSet := make(map[int64]struct{}, len(generated))
		for _, bayID := range generated {
			generatedSet[bayID] = struct{}{}
		}

		var batch []*domain.Slot
		for _, bay := range branch.Bays {
			if _, ok := generatedSet[bay.ID]; ok {
				resp.BaysSkipped++
				continue
			}

			slots, err := buildDaySlots(
				req.BranchID, bay.ID, req.Date,
				*hours.OpenTime, *hours.CloseTime,
				branch.SlotDurationMinutes,
			)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
			}

			batch = append(batch, slots...)
		}

		if len(batch) == 0 {
			return nil
		}

		created, err := uc.slotRepo.CreateBatch(txCtx, batch)
		if err != nil {
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}

		resp.SlotsCreated = created
		return nil
	})
	if err != nil {
		uc.logger.Error("GenerateSchedule: branch=%d date=%s failed: %v",
			req.BranchID, req.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	uc.metrics.AddSlotsGenerated(resp.SlotsCreated)
	uc.logger.Info("GenerateSchedule: branch=%d date=%s: created %d slot(s), skipped %d of %d bay(s)",
		req.BranchID, req.Date.Format(domain.DateFormat),
		resp.SlotsCreated, resp.BaysSkipped, resp.BaysTotal)

	return resp, nil
}
