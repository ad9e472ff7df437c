package confirm_reservation

import "context"

type SlotAllocator interface {
	Confirm(ctx context.Context, token string, bookingID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
