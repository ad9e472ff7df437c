package generate_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/branchservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateBranchConfig проверяет конфигурацию филиала перед генерацией
func validateBranchConfig(branch *branchservice.Branch) error {
	if branch.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		branch.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration %d minutes is out of range [%d, %d]",
			ErrInvalidConfiguration, branch.SlotDurationMinutes,
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if len(branch.Bays) == 0 {
		return ErrNoBays
	}

	return nil
}

// validateDayHours проверяет рабочие часы на день генерации
func validateDayHours(hours branchservice.DaySchedule) error {
	if !hours.IsOpen {
		return ErrBranchClosed
	}

	if hours.OpenTime == nil || hours.CloseTime == nil {
		return fmt.Errorf("%w: open day without working hours", ErrInvalidConfiguration)
	}

	if *hours.OpenTime >= *hours.CloseTime {
		return fmt.Errorf("%w: open time %s is not before close time %s",
			ErrInvalidConfiguration, *hours.OpenTime, *hours.CloseTime)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня в часовом поясе филиала
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	nowLocal := now.In(loc)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	todayOnly := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	return dateOnly.Before(todayOnly)
}
