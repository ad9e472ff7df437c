package generate_week

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	generateWeek "github.com/m04kA/SMC-ScheduleService/internal/usecase/generate_week"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	useCase GenerateWeekUseCase
	logger  Logger
}

func NewHandler(useCase GenerateWeekUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/branches/{branch_id}/schedule/generate-week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branch_id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/schedule/generate-week - Invalid branch id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateWeek.Request{BranchID: branchID})
	if err != nil {
		switch {
		case errors.Is(err, generateWeek.ErrBranchNotFound):
			h.logger.Warn("POST /branches/%d/schedule/generate-week - Branch not found", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, generateWeek.ErrInvalidInput):
			h.logger.Warn("POST /branches/%d/schedule/generate-week - Invalid input: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidBranchID)

		default:
			h.logger.Error("POST /branches/%d/schedule/generate-week - Failed: %v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /branches/%d/schedule/generate-week - Created %d slot(s)", branchID, result.SlotsCreated)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
