package allocation

import (
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// candidateRun найденный кандидат: непрерывный ран свободных слотов одного бокса
type candidateRun struct {
	bayID     int64
	slotIDs   []int64
	startTime types.TimeString
	endTime   types.TimeString
}

// findRun ищет непрерывный ран из slotsNeeded свободных слотов.
//
// Слоты должны быть упорядочены по (bay_id ASC, start_time ASC) — порядок
// выдачи репозитория. Обход боксов детерминированный, по возрастанию ID.
//
// Если задано preferred, сначала во всех боксах ищется ран, начинающийся
// ровно в это время; при неудаче — самый ранний ран среди всех боксов
// (при равном времени побеждает бокс с меньшим ID).
func findRun(slots []*domain.Slot, slotsNeeded int, preferred *types.TimeString) *candidateRun {
	if slotsNeeded <= 0 {
		return nil
	}

	bays := groupByBay(slots)

	if preferred != nil {
		for _, baySlots := range bays {
			if run := runStartingAt(baySlots, slotsNeeded, *preferred); run != nil {
				return run
			}
		}
	}

	var best *candidateRun
	for _, baySlots := range bays {
		run := firstRun(baySlots, slotsNeeded)
		if run == nil {
			continue
		}
		// Строгое "раньше": при равном старте остаётся бокс с меньшим ID
		if best == nil || run.startTime.IsBefore(best.startTime) {
			best = run
		}
	}

	return best
}

// groupByBay разбивает отсортированный список слотов на группы по боксам,
// сохраняя порядок возрастания bay_id
func groupByBay(slots []*domain.Slot) [][]*domain.Slot {
	var bays [][]*domain.Slot
	var current []*domain.Slot

	for _, s := range slots {
		if len(current) > 0 && current[0].BayID != s.BayID {
			bays = append(bays, current)
			current = nil
		}
		current = append(current, s)
	}
	if len(current) > 0 {
		bays = append(bays, current)
	}

	return bays
}

// firstRun возвращает первый (самый ранний) ран из slotsNeeded свободных
// смежных по времени слотов бокса
func firstRun(baySlots []*domain.Slot, slotsNeeded int) *candidateRun {
	for i := 0; i+slotsNeeded <= len(baySlots); i++ {
		if run := runAt(baySlots, i, slotsNeeded); run != nil {
			return run
		}
	}
	return nil
}

// runStartingAt возвращает ран из slotsNeeded свободных смежных слотов,
// начинающийся ровно в start, либо nil
func runStartingAt(baySlots []*domain.Slot, slotsNeeded int, start types.TimeString) *candidateRun {
	for i := 0; i+slotsNeeded <= len(baySlots); i++ {
		if baySlots[i].StartTime != start {
			continue
		}
		return runAt(baySlots, i, slotsNeeded)
	}
	return nil
}

// runAt проверяет, образуют ли slotsNeeded слотов, начиная с индекса from,
// непрерывный свободный ран. Смежность строгая: конец предыдущего слота
// должен совпадать с началом следующего (перерывы в расписании ран разрывают).
func runAt(baySlots []*domain.Slot, from, slotsNeeded int) *candidateRun {
	run := baySlots[from : from+slotsNeeded]

	for i, s := range run {
		if !s.IsAvailable() {
			return nil
		}
		if i > 0 && run[i-1].EndTime != s.StartTime {
			return nil
		}
	}

	slotIDs := make([]int64, len(run))
	for i, s := range run {
		slotIDs[i] = s.ID
	}

	return &candidateRun{
		bayID:     run[0].BayID,
		slotIDs:   slotIDs,
		startTime: run[0].StartTime,
		endTime:   run[len(run)-1].EndTime,
	}
}
