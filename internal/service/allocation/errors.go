package allocation

import "errors"

var (
	// ErrNoSchedule возвращается, когда на дату не сгенерировано расписание
	ErrNoSchedule = errors.New("allocation: no schedule generated for this date")

	// ErrNoCapacity возвращается, когда ни в одном боксе нет подходящего
	// непрерывного рана свободных слотов (в том числе после исчерпания
	// бюджета повторов при гонках)
	ErrNoCapacity = errors.New("allocation: no capacity available")

	// ErrReservationNotFound возвращается, когда по токену нет действующего
	// резервирования (истекло, уже подтверждено или освобождено)
	ErrReservationNotFound = errors.New("allocation: reservation not found")

	// ErrInvalidDuration возвращается при некорректной запрошенной длительности
	ErrInvalidDuration = errors.New("allocation: invalid duration")

	// ErrInternal возвращается при внутренних ошибках аллокатора
	ErrInternal = errors.New("allocation: internal error")
)
