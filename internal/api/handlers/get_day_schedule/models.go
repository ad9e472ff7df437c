package get_day_schedule

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotResponse слот в ответе API
type SlotResponse struct {
	ID        int64  `json:"id"`
	BayID     int64  `json:"bayId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// DayScheduleResponse HTTP response model: слоты дня, сгруппированные по боксам
type DayScheduleResponse struct {
	BranchID int64          `json:"branchId"`
	Date     string         `json:"date"`
	Bays     []*BaySlots    `json:"bays"`
}

// BaySlots слоты одного бокса
type BaySlots struct {
	BayID int64           `json:"bayId"`
	Slots []*SlotResponse `json:"slots"`
}

// FromDomainSlots группирует слоты по боксам, сохраняя порядок
// (bay_id, start_time) из выборки
func FromDomainSlots(branchID int64, date string, slots []*domain.Slot) *DayScheduleResponse {
	resp := &DayScheduleResponse{
		BranchID: branchID,
		Date:     date,
		Bays:     []*BaySlots{},
	}

	var current *BaySlots
	for _, slot := range slots {
		if current == nil || current.BayID != slot.BayID {
			current = &BaySlots{BayID: slot.BayID}
			resp.Bays = append(resp.Bays, current)
		}
		current.Slots = append(current.Slots, &SlotResponse{
			ID:        slot.ID,
			BayID:     slot.BayID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Status:    string(slot.Status),
			BookingID: slot.BookingID,
		})
	}

	return resp
}
