package generate_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	generateSchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBranchNotFound     = "филиал не найден"
	msgDateInPast         = "дата в прошлом"
	msgBranchClosed       = "филиал закрыт в выбранную дату"
	msgNoBays             = "у филиала нет боксов"
	msgInvalidConfig      = "некорректная конфигурация филиала"
)

type Handler struct {
	useCase GenerateScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GenerateScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/branches/{branch_id}/schedule/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branch_id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/schedule/generate - Invalid branch id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req GenerateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches/%d/schedule/generate - Invalid request body: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(branchID)
	if err != nil {
		h.logger.Warn("POST /branches/%d/schedule/generate - Failed to parse date: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSchedule.ErrBranchNotFound):
			h.logger.Warn("POST /branches/%d/schedule/generate - Branch not found", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, generateSchedule.ErrInvalidDate):
			h.logger.Warn("POST /branches/%d/schedule/generate - Date in past: %s", branchID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, generateSchedule.ErrBranchClosed):
			h.logger.Info("POST /branches/%d/schedule/generate - Branch closed on %s", branchID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgBranchClosed)

		case errors.Is(err, generateSchedule.ErrNoBays):
			h.logger.Warn("POST /branches/%d/schedule/generate - Branch has no bays", branchID)
			handlers.RespondBadRequest(w, msgNoBays)

		case errors.Is(err, generateSchedule.ErrInvalidConfiguration):
			h.logger.Warn("POST /branches/%d/schedule/generate - Invalid config: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, generateSchedule.ErrInvalidInput):
			h.logger.Warn("POST /branches/%d/schedule/generate - Invalid input: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /branches/%d/schedule/generate - Failed: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /branches/%d/schedule/generate - Created %d slot(s) for %s",
		branchID, result.SlotsCreated, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
