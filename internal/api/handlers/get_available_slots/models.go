package get_available_slots

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	usecase "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

// AvailableStartResponse вариант начала обслуживания
type AvailableStartResponse struct {
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	AvailableBays int    `json:"availableBays"`
}

// AvailabilityResponse ответ со списком доступных вариантов начала
type AvailabilityResponse struct {
	BranchID        int64                    `json:"branchId"`
	Date            string                   `json:"date"`
	DurationMinutes int                      `json:"durationMinutes"`
	Starts          []AvailableStartResponse `json:"starts"`
}

// FromUsecaseResponse конвертирует ответ use case в HTTP-модель
func FromUsecaseResponse(resp *usecase.Response) *AvailabilityResponse {
	starts := make([]AvailableStartResponse, len(resp.Starts))
	for i, s := range resp.Starts {
		starts[i] = AvailableStartResponse{
			StartTime:     s.StartTime.String(),
			EndTime:       s.EndTime.String(),
			AvailableBays: s.AvailableBays,
		}
	}
	return &AvailabilityResponse{
		BranchID:        resp.BranchID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Starts:          starts,
	}
}
