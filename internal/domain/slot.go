package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// SlotStatus represents the state of a bay slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotReserved  SlotStatus = "reserved"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// Slot атомарная единица бронирования: фиксированный интервал времени
// в конкретном боксе (bay) филиала на конкретную дату.
// Слоты создаются только генератором расписания, аллокатор лишь меняет их статус.
type Slot struct {
	ID        int64
	BranchID  int64
	BayID     int64
	SlotDate  time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus

	// Заполнены только для занятых слотов
	BookingID        *int64
	ReservationToken *string
	ReservedUntil    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the slot can be reserved
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// IsHoldExpired returns true if the slot is reserved but the hold has expired
func (s *Slot) IsHoldExpired(now time.Time) bool {
	return s.Status == SlotReserved && s.ReservedUntil != nil && s.ReservedUntil.Before(now)
}

// DurationMinutes возвращает длительность слота в минутах
func (s *Slot) DurationMinutes() (int, error) {
	return s.StartTime.MinutesUntil(s.EndTime)
}

// ReservedRun результат успешного резервирования: непрерывный ран слотов
// одного бокса, удерживаемый по токену до подтверждения или освобождения.
type ReservedRun struct {
	Token     string
	BranchID  int64
	BayID     int64
	SlotIDs   []int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	ExpiresAt time.Time
}

// BaySlotStatistics агрегированная статистика слотов бокса на дату.
// Всегда вычисляется на лету, никогда не персистится.
type BaySlotStatistics struct {
	BayID          int64
	Date           time.Time
	TotalSlots     int
	AvailableSlots int
	ReservedSlots  int
	BookedSlots    int
	BlockedSlots   int
}
