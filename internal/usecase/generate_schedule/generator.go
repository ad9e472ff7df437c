package generate_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// buildDaySlots нарезает рабочий день бокса на слоты фиксированной длительности.
// Нарезка идет от открытия с шагом slotDuration; неполный хвост перед закрытием
// отбрасывается — слот короче стандартного не создается.
func buildDaySlots(
	branchID, bayID int64,
	date time.Time,
	openTime, closeTime string,
	slotDurationMinutes int,
) ([]*domain.Slot, error) {
	open, err := types.NewTimeStringFromString(openTime)
	if err != nil {
		return nil, fmt.Errorf("invalid open time %q: %v", openTime, err)
	}

	closeAt, err := types.NewTimeStringFromString(closeTime)
	if err != nil {
		return nil, fmt.Errorf("invalid close time %q: %v", closeTime, err)
	}

	var slots []*domain.Slot

	cursor := open
	for {
		next, err := cursor.AddMinutes(slotDurationMinutes)
		if err != nil {
			// Слот вышел за полночь — день закончился
			break
		}
		if next.IsAfter(closeAt) {
			break
		}

		slots = append(slots, &domain.Slot{
			BranchID:  branchID,
			BayID:     bayID,
			SlotDate:  date,
			StartTime: cursor,
			EndTime:   next,
			Status:    domain.SlotAvailable,
		})

		cursor = next
	}

	return slots, nil
}
