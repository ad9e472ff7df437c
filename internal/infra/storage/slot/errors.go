package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrRunConflict возвращается, когда часть рана уже не доступна
	// (другой вызов выиграл гонку между поиском и резервированием)
	ErrRunConflict = errors.New("slot.repository: run is no longer available")

	// ErrReservationNotFound возвращается, когда по токену нет
	// действующего резервирования (истекло или уже обработано)
	ErrReservationNotFound = errors.New("slot.repository: reservation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
