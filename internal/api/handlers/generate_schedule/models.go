package generate_schedule

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	generateSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

// GenerateScheduleRequest HTTP request model
type GenerateScheduleRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// GenerateScheduleResponse HTTP response model
type GenerateScheduleResponse struct {
	BranchID     int64  `json:"branchId"`
	Date         string `json:"date"`
	BaysTotal    int    `json:"baysTotal"`
	BaysSkipped  int    `json:"baysSkipped"`
	SlotsCreated int    `json:"slotsCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateScheduleRequest) ToUseCaseRequest(branchID int64) (*generateSchedule.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &generateSchedule.Request{
		BranchID: branchID,
		Date:     date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSchedule.Response) *GenerateScheduleResponse {
	return &GenerateScheduleResponse{
		BranchID:     resp.BranchID,
		Date:         resp.Date.Format(domain.DateFormat),
		BaysTotal:    resp.BaysTotal,
		BaysSkipped:  resp.BaysSkipped,
		SlotsCreated: resp.SlotsCreated,
	}
}
