package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes   = 30
	DefaultReservationTTLMinutes = 15
	DefaultMaxReserveAttempts    = 3
	DefaultScheduleHorizonDays   = 7
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxBookingDurationMinutes   = 480
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByBranch,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}
