package get_arrangement

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNoSlots     = "на эту дату не открыта сетка слотов"
)

type Handler struct {
	service ArrangementService
	logger  Logger
}

func NewHandler(service ArrangementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/days/{date}/arrangement
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /days/{date}/arrangement - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetArrangement(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrNoSlotsForDate):
			h.logger.Warn("GET /days/{date}/arrangement - No slots: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNoSlots)

		default:
			h.logger.Error("GET /days/{date}/arrangement - Failed: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /days/{date}/arrangement - Retrieved arrangement for date=%s", vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
