package customerservice

// Customer модель клиента из CustomerService
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Vehicle модель автомобиля клиента из CustomerService
type Vehicle struct {
	ID           int64   `json:"id"`
	CustomerID   int64   `json:"customer_id"`
	LicensePlate string  `json:"license_plate"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
}

// EnsureCustomerRequest запрос на создание/поиск клиента по телефону
type EnsureCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// EnsureVehicleRequest запрос на создание/поиск автомобиля клиента по госномеру
type EnsureVehicleRequest struct {
	LicensePlate string  `json:"license_plate"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
