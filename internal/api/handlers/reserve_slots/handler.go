package reserve_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/service/allocation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgNoSchedule         = "расписание на эту дату не сгенерировано"
	msgNoCapacity         = "нет свободного времени на эту дату"
	msgInvalidDuration    = "некорректная длительность"
)

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

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReserveSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	run, err := h.allocator.Reserve(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, allocation.ErrNoSchedule):
			h.logger.Warn("POST /reservations - No schedule: branch=%d date=%s", req.BranchID, req.Date)
			handlers.RespondNotFound(w, msgNoSchedule)

		case errors.Is(err, allocation.ErrNoCapacity):
			h.logger.Warn("POST /reservations - No capacity: branch=%d date=%s duration=%d",
				req.BranchID, req.Date, req.DurationMinutes)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, allocation.ErrInvalidDuration):
			h.logger.Warn("POST /reservations - Invalid duration: %d", req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("POST /reservations - Failed: branch=%d date=%s error=%v", req.BranchID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reserved %d slot(s): branch=%d bay=%d token=%s",
		len(run.SlotIDs), run.BranchID, run.BayID, run.Token)
	handlers.RespondJSON(w, http.StatusCreated, FromReservedRun(run))
}
