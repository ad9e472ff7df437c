package release_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
)

const msgReservationNotFound = "резервирование не найдено или истекло"

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

// Handle DELETE /api/v1/reservations/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.allocator.Release(r.Context(), token); err != nil {
		if errors.Is(err, allocation.ErrReservationNotFound) {
			h.logger.Warn("DELETE /reservations/{token} - Reservation not found: token=%s", token)
			handlers.RespondNotFound(w, msgReservationNotFound)
			return
		}
		h.logger.Error("DELETE /reservations/{token} - Failed: token=%s error=%v", token, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /reservations/{token} - Released: token=%s", token)
	w.WriteHeader(http.StatusNoContent)
}
