package commit_arrangement

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
	msgNoChanges   = "нет несохраненных изменений расстановки"
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

// Handle POST /api/v1/days/{date}/arrangement/commit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/commit - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Commit(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrNoChanges):
			h.logger.Warn("POST /days/{date}/arrangement/commit - No changes: date=%s", vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgNoChanges)

		default:
			h.logger.Error("POST /days/{date}/arrangement/commit - Failed: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/arrangement/commit - Committed %d changes for date=%s",
		len(result.Applied), vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
