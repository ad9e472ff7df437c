package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	usecase "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgBranchNotFound  = "филиал не найден"
	msgInvalidRequest  = "некорректный запрос"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branch_id}/availability?date=YYYY-MM-DD&duration=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branch_id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid branch id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /branches/%d/availability - Invalid date: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var duration int
	if rawDuration := r.URL.Query().Get("duration"); rawDuration != "" {
		duration, err = strconv.Atoi(rawDuration)
		if err != nil || duration < 0 {
			h.logger.Warn("GET /branches/%d/availability - Invalid duration: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	resp, err := h.useCase.Execute(r.Context(), &usecase.Request{
		BranchID:        branchID,
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBranchNotFound):
			h.logger.Warn("GET /branches/%d/availability - Branch not found", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)
		case errors.Is(err, usecase.ErrInvalidInput):
			h.logger.Warn("GET /branches/%d/availability - Invalid input: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
		default:
			h.logger.Error("GET /branches/%d/availability - Failed: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUsecaseResponse(resp))
}
