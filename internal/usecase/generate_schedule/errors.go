package generate_schedule

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("generate_schedule: branch not found")

	// ErrInvalidDate возвращается при попытке сгенерировать расписание на прошедшую дату
	ErrInvalidDate = errors.New("generate_schedule: date is in the past")

	// ErrBranchClosed возвращается, когда филиал закрыт в указанную дату
	ErrBranchClosed = errors.New("generate_schedule: branch is closed on this date")

	// ErrNoBays возвращается, когда у филиала нет ни одного бокса
	ErrNoBays = errors.New("generate_schedule: branch has no bays")

	// ErrInvalidConfiguration возвращается при некорректной конфигурации филиала
	// (длительность слота вне допустимых границ, open >= close)
	ErrInvalidConfiguration = errors.New("generate_schedule: invalid branch configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_schedule: internal error")
)
