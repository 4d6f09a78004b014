package get_day_entries

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/service/entries"
	"github.com/fairwaylab/GC-LotteryService/internal/service/entries/models"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput = "некорректные параметры запроса"
)

type Handler struct {
	service EntryService
	logger  Logger
}

func NewHandler(service EntryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/days/{date}/entries
// Query параметры: status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /days/{date}/entries - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetDayEntriesRequest{
		Date:             date,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetDayEntries(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entries.ErrInvalidInput):
			h.logger.Warn("GET /days/{date}/entries - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /days/{date}/entries - Failed to get entries: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /days/{date}/entries - Retrieved %d entries for date=%s", result.Total, vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
