package move_entry

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements"
	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoSlots            = "на эту дату не открыта сетка слотов"
	msgEntryNotFound      = "заявка не найдена в расстановке"
	msgSlotNotFound       = "слот не найден в расстановке"
	msgCapacityExceeded   = "заявка не помещается в целевой слот"
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

// Handle POST /api/v1/days/{date}/arrangement/move
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/move - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req models.MoveEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/move - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.MoveEntry(r.Context(), date, &req)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/arrangement/move - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, arrangements.ErrNoSlotsForDate):
			h.logger.Warn("POST /days/{date}/arrangement/move - No slots: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNoSlots)

		case errors.Is(err, arrangements.ErrEntryNotFound):
			h.logger.Warn("POST /days/{date}/arrangement/move - Entry not found: entry_id=%d", req.EntryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, arrangements.ErrSlotNotFound):
			h.logger.Warn("POST /days/{date}/arrangement/move - Slot not found: target=%v", req.TargetSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, arrangements.ErrCapacityExceeded):
			h.logger.Warn("POST /days/{date}/arrangement/move - Capacity exceeded: entry_id=%d, target=%v",
				req.EntryID, req.TargetSlotID)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("POST /days/{date}/arrangement/move - Failed: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/arrangement/move - Moved entry_id=%d for date=%s", req.EntryID, vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
