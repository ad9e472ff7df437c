package get_bay_statistics

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
	msgInvalidBayID = "некорректный ID бокса"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// BayStatisticsResponse HTTP response model
type BayStatisticsResponse struct {
	BayID          int64  `json:"bayId"`
	Date           string `json:"date"`
	TotalSlots     int    `json:"totalSlots"`
	AvailableSlots int    `json:"availableSlots"`
	ReservedSlots  int    `json:"reservedSlots"`
	BookedSlots    int    `json:"bookedSlots"`
	BlockedSlots   int    `json:"blockedSlots"`
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

// Handle GET /api/v1/bays/{bay_id}/statistics?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bayID, err := strconv.ParseInt(mux.Vars(r)["bay_id"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bays/{id}/statistics - Invalid bay id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBayID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /bays/%d/statistics - Invalid date: %v", bayID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	stats, err := h.service.GetBayStatistics(r.Context(), bayID, date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /bays/%d/statistics - Invalid input: %v", bayID, err)
			handlers.RespondBadRequest(w, msgInvalidBayID)
			return
		}
		h.logger.Error("GET /bays/%d/statistics - Failed: %v", bayID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &BayStatisticsResponse{
		BayID:          stats.BayID,
		Date:           stats.Date.Format(domain.DateFormat),
		TotalSlots:     stats.TotalSlots,
		AvailableSlots: stats.AvailableSlots,
		ReservedSlots:  stats.ReservedSlots,
		BookedSlots:    stats.BookedSlots,
		BlockedSlots:   stats.BlockedSlots,
	})
}
