package generate_week

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	branchClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
	schedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

// UseCase use case генерации расписания филиала на неделю вперед.
//
// Горизонт — DefaultScheduleHorizonDays дней начиная с завтрашнего дня
// в часовом поясе филиала. Каждая дата генерируется независимо: закрытый
// день или сбой на одной дате не прерывает остальные.
type UseCase struct {
	generator    ScheduleGenerator
	branchClient BranchServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	generator ScheduleGenerator,
	branchClient BranchServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		generator:    generator,
		branchClient: branchClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case генерации расписания на неделю
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateWeek: branch=%d", req.BranchID)

	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	// Филиал нужен только ради часового пояса: от него считается "завтра"
	branch, err := uc.branchClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchClient.ErrBranchNotFound) {
			uc.logger.Warn("GenerateWeek: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GenerateWeek: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	nowLocal := uc.timeProvider.Now().In(branch.Location())
	start := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, branch.Location()).
		AddDate(0, 0, 1)

	resp := &Response{
		BranchID: req.BranchID,
		Days:     make([]DayOutcome, 0, domain.DefaultScheduleHorizonDays),
	}

	for i := 0; i < domain.DefaultScheduleHorizonDays; i++ {
		date := start.AddDate(0, 0, i)
		resp.Days = append(resp.Days, uc.generateDay(ctx, req.BranchID, date))
	}

	for _, day := range resp.Days {
		resp.SlotsCreated += day.SlotsCreated
	}

	uc.logger.Info("GenerateWeek: branch=%d: created %d slot(s) over %d day(s)",
		req.BranchID, resp.SlotsCreated, len(resp.Days))

	return resp, nil
}

// generateDay генерирует расписание на одну дату, изолируя сбои
func (uc *UseCase) generateDay(ctx context.Context, branchID int64, date time.Time) DayOutcome {
	outcome := DayOutcome{Date: date}

	result, err := uc.generator.Execute(ctx, &schedule.Request{
		BranchID: branchID,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrBranchClosed) {
			outcome.Outcome = OutcomeClosed
			return outcome
		}
		uc.logger.Error("GenerateWeek: branch=%d date=%s failed: %v",
			branchID, date.Format(domain.DateFormat), err)
		outcome.Outcome = OutcomeFailed
		outcome.Error = err.Error()
		return outcome
	}

	outcome.SlotsCreated = result.SlotsCreated
	if result.SlotsCreated == 0 && result.BaysSkipped == result.BaysTotal {
		outcome.Outcome = OutcomeSkipped
	} else {
		outcome.Outcome = OutcomeGenerated
	}

	return outcome
}
