package generate_week

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	generateWeek "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_week"
)

// DayOutcomeResponse итог генерации на одну дату
type DayOutcomeResponse struct {
	Date         string `json:"date"`
	Outcome      string `json:"outcome"`
	SlotsCreated int    `json:"slotsCreated"`
	Error        string `json:"error,omitempty"`
}

// GenerateWeekResponse HTTP response model
type GenerateWeekResponse struct {
	BranchID     int64                `json:"branchId"`
	Days         []DayOutcomeResponse `json:"days"`
	SlotsCreated int                  `json:"slotsCreated"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateWeek.Response) *GenerateWeekResponse {
	days := make([]DayOutcomeResponse, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayOutcomeResponse{
			Date:         day.Date.Format(domain.DateFormat),
			Outcome:      day.Outcome,
			SlotsCreated: day.SlotsCreated,
			Error:        day.Error,
		}
	}
	return &GenerateWeekResponse{
		BranchID:     resp.BranchID,
		Days:         days,
		SlotsCreated: resp.SlotsCreated,
	}
}
