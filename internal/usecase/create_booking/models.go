package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// CustomerInput данные клиента для создания/поиска в CustomerService
type CustomerInput struct {
	Name  string // Имя клиента
	Phone string // Телефон (ключ поиска)
}

// VehicleInput данные автомобиля клиента
type VehicleInput struct {
	LicensePlate string  // Госномер (ключ поиска)
	Brand        *string // Марка (опционально)
	Model        *string // Модель (опционально)
}

// Request модель запроса на создание бронирования
type Request struct {
	BranchID       int64             // ID филиала
	Date           time.Time         // Дата бронирования (без времени)
	PreferredStart *types.TimeString // Желаемое время начала (опционально)
	ServiceIDs     []int64           // Услуги из каталога филиала
	Customer       CustomerInput     // Данные клиента
	Vehicle        VehicleInput      // Данные автомобиля
	Notes          *string           // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	Number          string    // Внешний номер бронирования (UUID)
	CustomerID      int64     // ID клиента
	VehicleID       int64     // ID автомобиля
	BranchID        int64     // ID филиала
	BayID           int64     // ID бокса
	BookingDate     time.Time // Дата бронирования
	StartTime       string    // Время начала
	EndTime         string    // Время окончания
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования

	// Денормализованные данные
	ServiceIDs     []int64 // Услуги
	ServiceSummary string  // Сводка услуг через запятую
	TotalPrice     float64 // Суммарная цена
	VehiclePlate   *string // Госномер
	VehicleBrand   *string // Марка автомобиля
	VehicleModel   *string // Модель автомобиля
	Notes          *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
