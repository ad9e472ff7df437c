package block_schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// BlockScheduleRequest HTTP request model
type BlockScheduleRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// BlockScheduleResponse HTTP response model
type BlockScheduleResponse struct {
	BranchID     int64  `json:"branchId"`
	Date         string `json:"date"`
	SlotsBlocked int    `json:"slotsBlocked"`
}

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/branches/{branch_id}/schedule/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := strconv.ParseInt(mux.Vars(r)["branch_id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /branches/{id}/schedule/block - Invalid branch id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req BlockScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /branches/%d/schedule/block - Invalid request body: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /branches/%d/schedule/block - Invalid date: %v", branchID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	blocked, err := h.service.BlockDate(r.Context(), branchID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("POST /branches/%d/schedule/block - Invalid input: %v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidBranchID)
			return
		}
		h.logger.Error("POST /branches/%d/schedule/block - Failed: %v", branchID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /branches/%d/schedule/block - Blocked %d slot(s) on %s", branchID, blocked, req.Date)
	handlers.RespondJSON(w, http.StatusOK, &BlockScheduleResponse{
		BranchID:     branchID,
		Date:         req.Date,
		SlotsBlocked: blocked,
	})
}
