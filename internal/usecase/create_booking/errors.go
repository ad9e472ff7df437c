package create_booking

import "errors"

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = errors.New("create_booking: branch not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге филиала
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrBranchClosed возвращается, когда филиал закрыт в указанную дату
	ErrBranchClosed = errors.New("create_booking: branch is closed on this date")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrNoCapacity возвращается, когда на дату нет подходящего
	// непрерывного рана свободных слотов
	ErrNoCapacity = errors.New("create_booking: no capacity available")

	// ErrSlotConflict возвращается, когда резервирование потеряно между
	// созданием бронирования и подтверждением слотов
	ErrSlotConflict = errors.New("create_booking: reservation lost before confirmation")

	// ErrCustomerRejected возвращается, когда CustomerService отклонил
	// данные клиента или автомобиля
	ErrCustomerRejected = errors.New("create_booking: customer data rejected")

	// ErrCompensationFailed возвращается, когда бронирование не сохранилось,
	// а резервирование не удалось откатить — слоты останутся занятыми
	// до истечения холда
	ErrCompensationFailed = errors.New("create_booking: failed to release reservation after persistence failure")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
