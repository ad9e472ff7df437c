package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// CustomerPayload данные клиента в HTTP запросе
type CustomerPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// VehiclePayload данные автомобиля в HTTP запросе
type VehiclePayload struct {
	LicensePlate string  `json:"licensePlate"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BranchID       int64           `json:"branchId"`
	BookingDate    string          `json:"bookingDate"` // "2025-10-15"
	PreferredStart *string         `json:"preferredStart,omitempty"`
	ServiceIDs     []int64         `json:"serviceIds"`
	Customer       CustomerPayload `json:"customer"`
	Vehicle        VehiclePayload  `json:"vehicle"`
	Notes          *string         `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Number          string  `json:"number"`
	CustomerID      int64   `json:"customerId"`
	VehicleID       int64   `json:"vehicleId"`
	BranchID        int64   `json:"branchId"`
	BayID           int64   `json:"bayId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceIDs      []int64 `json:"serviceIds"`
	ServiceSummary  string  `json:"serviceSummary"`
	TotalPrice      float64 `json:"totalPrice"`
	VehiclePlate    *string `json:"vehiclePlate,omitempty"`
	VehicleBrand    *string `json:"vehicleBrand,omitempty"`
	VehicleModel    *string `json:"vehicleModel,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		BranchID:   r.BranchID,
		Date:       bookingDate,
		ServiceIDs: r.ServiceIDs,
		Customer: createBooking.CustomerInput{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
		},
		Vehicle: createBooking.VehicleInput{
			LicensePlate: r.Vehicle.LicensePlate,
			Brand:        r.Vehicle.Brand,
			Model:        r.Vehicle.Model,
		},
		Notes: r.Notes,
	}

	if r.PreferredStart != nil {
		start, err := types.NewTimeStringFromString(*r.PreferredStart)
		if err != nil {
			return nil, err
		}
		req.PreferredStart = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Number:          resp.Number,
		CustomerID:      resp.CustomerID,
		VehicleID:       resp.VehicleID,
		BranchID:        resp.BranchID,
		BayID:           resp.BayID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime,
		EndTime:         resp.EndTime,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceIDs:      resp.ServiceIDs,
		ServiceSummary:  resp.ServiceSummary,
		TotalPrice:      resp.TotalPrice,
		VehiclePlate:    resp.VehiclePlate,
		VehicleBrand:    resp.VehicleBrand,
		VehicleModel:    resp.VehicleModel,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
