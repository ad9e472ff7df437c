package create_booking

import (
	"fmt"
	"strings"
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

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	if req.PreferredStart != nil {
		if err := req.PreferredStart.Validate(); err != nil {
			return fmt.Errorf("%w: invalid preferredStart format: %v", ErrInvalidInput, err)
		}
	}

	if strings.TrimSpace(req.Customer.Phone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Vehicle.LicensePlate) == "" {
		return fmt.Errorf("%w: vehicle license plate is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом в часовом поясе филиала
func validateDate(date, now time.Time, loc *time.Location) error {
	nowLocal := now.In(loc)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	todayOnly := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	if dateOnly.Before(todayOnly) {
		return ErrInvalidDate
	}
	return nil
}

// summarizeServices собирает денормализованные данные заказанных услуг:
// суммарную длительность, цену и текстовую сводку
func summarizeServices(services []*branchservice.ServiceItem) (totalMinutes int, totalPrice float64, summary string) {
	names := make([]string, 0, len(services))
	for _, svc := range services {
		totalMinutes += svc.DurationMinutes
		if svc.Price != nil {
			totalPrice += *svc.Price
		}
		names = append(names, svc.Name)
	}
	return totalMinutes, totalPrice, strings.Join(names, ", ")
}
