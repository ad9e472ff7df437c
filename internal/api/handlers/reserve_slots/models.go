package reserve_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ReserveSlotsRequest HTTP request model
type ReserveSlotsRequest struct {
	BranchID        int64   `json:"branchId"`
	Date            string  `json:"date"` // "2025-10-15"
	DurationMinutes int     `json:"durationMinutes"`
	PreferredStart  *string `json:"preferredStart,omitempty"` // "10:00"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	Token     string  `json:"token"`
	BranchID  int64   `json:"branchId"`
	BayID     int64   `json:"bayId"`
	SlotIDs   []int64 `json:"slotIds"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	ExpiresAt string  `json:"expiresAt"` // RFC 3339
}

// ToServiceRequest конвертирует HTTP запрос в модель аллокатора
func (r *ReserveSlotsRequest) ToServiceRequest() (*allocation.ReserveRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &allocation.ReserveRequest{
		BranchID:        r.BranchID,
		Date:            date,
		DurationMinutes: r.DurationMinutes,
	}

	if r.PreferredStart != nil {
		start, err := types.NewTimeStringFromString(*r.PreferredStart)
		if err != nil {
			return nil, err
		}
		req.PreferredStart = &start
	}

	return req, nil
}

// FromReservedRun конвертирует резервирование в HTTP response
func FromReservedRun(run *domain.ReservedRun) *ReservationResponse {
	return &ReservationResponse{
		Token:     run.Token,
		BranchID:  run.BranchID,
		BayID:     run.BayID,
		SlotIDs:   run.SlotIDs,
		Date:      run.Date.Format(domain.DateFormat),
		StartTime: run.StartTime.String(),
		EndTime:   run.EndTime.String(),
		ExpiresAt: run.ExpiresAt.Format(time.RFC3339),
	}
}
