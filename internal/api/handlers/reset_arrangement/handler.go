package reset_arrangement

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

// Handle POST /api/v1/days/{date}/arrangement/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/reset - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Reset(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrNoSlotsForDate):
			h.logger.Warn("POST /days/{date}/arrangement/reset - No slots: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNoSlots)

		default:
			h.logger.Error("POST /days/{date}/arrangement/reset - Failed: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/arrangement/reset - Reset arrangement for date=%s", vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
