package confirm_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidBookingID     = "некорректный ID бронирования"
	msgReservationNotFound  = "резервирование не найдено или истекло"
)

// ConfirmReservationRequest HTTP request model
type ConfirmReservationRequest struct {
	BookingID int64 `json:"bookingId"`
}

// ConfirmReservationResponse HTTP response model
type ConfirmReservationResponse struct {
	Token     string `json:"token"`
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

type Handler struct {
	allocator SlotAllocator
	logger    Logger
}

func NewHandler(allocator SlotAllocator, logger Logger) *Handler {
	return &Handler{
		allocator: allocator,
		logger:    logger,
	}
}

// Handle POST /api/v1/reservations/{token}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ConfirmReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{token}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BookingID <= 0 {
		h.logger.Warn("POST /reservations/{token}/confirm - Invalid booking id: %d", req.BookingID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.allocator.Confirm(r.Context(), token, req.BookingID); err != nil {
		if errors.Is(err, allocation.ErrReservationNotFound) {
			h.logger.Warn("POST /reservations/{token}/confirm - Reservation not found: token=%s", token)
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("POST /reservations/{token}/confirm - Failed: token=%s error=%v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reservations/{token}/confirm - Confirmed: token=%s booking=%d", token, req.BookingID)
	handlers.RespondJSON(w, http.StatusOK, &ConfirmReservationResponse{
		Token:     token,
		BookingID: req.BookingID,
		Status:    "confirmed",
	})
}
