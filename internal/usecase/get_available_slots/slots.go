package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// collectStarts собирает все варианты начала: позиции, с которых в каком-либо
// боксе начинается непрерывный ран из slotsNeeded свободных слотов.
// Варианты из разных боксов с одним временем начала схлопываются в один
// с подсчетом AvailableBays. Слоты ожидаются в порядке (bay_id, start_time).
func collectStarts(slots []*domain.Slot, slotsNeeded int) []AvailableStart {
	byStart := make(map[types.TimeString]*AvailableStart)

	for _, baySlots := range groupByBay(slots) {
		for i := 0; i+slotsNeeded <= len(baySlots); i++ {
			end, ok := runEnd(baySlots[i:i+slotsNeeded])
			if !ok {
				continue
			}

			start := baySlots[i].StartTime
			if existing, found := byStart[start]; found {
				existing.AvailableBays++
				continue
			}
			byStart[start] = &AvailableStart{
				StartTime:     start,
				EndTime:       end,
				AvailableBays: 1,
			}
		}
	}

	result := make([]AvailableStart, 0, len(byStart))
	for _, s := range byStart {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result
}

// runEnd проверяет, что кандидаты образуют непрерывный ран свободных слотов,
// и возвращает время его окончания
func runEnd(candidates []*domain.Slot) (types.TimeString, bool) {
	for i, slot := range candidates {
		if !slot.IsAvailable() {
			return "", false
		}
		if i > 0 && candidates[i-1].EndTime != slot.StartTime {
			return "", false
		}
	}
	return candidates[len(candidates)-1].EndTime, true
}

// groupByBay группирует слоты по боксам, сохраняя хронологический порядок
// внутри каждой группы
func groupByBay(slots []*domain.Slot) map[int64][]*domain.Slot {
	groups := make(map[int64][]*domain.Slot)
	for _, slot := range slots {
		groups[slot.BayID] = append(groups[slot.BayID], slot)
	}
	return groups
}

// filterPastStarts отбрасывает варианты, начинающиеся раньше указанного
// локального времени (используется при запросе на сегодня)
func filterPastStarts(starts []AvailableStart, cutoff types.TimeString) []AvailableStart {
	result := make([]AvailableStart, 0, len(starts))
	for _, s := range starts {
		if !s.StartTime.IsBefore(cutoff) {
			result = append(result, s)
		}
	}
	return result
}
