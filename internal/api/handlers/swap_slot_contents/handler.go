package swap_slot_contents

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
	msgSlotNotFound       = "слот не найден в расстановке"
	msgCapacityExceeded   = "обмен нарушает вместимость слота"
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

// Handle POST /api/v1/days/{date}/arrangement/swap-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/swap-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req models.SwapSlotContentsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/swap-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SwapSlotContents(r.Context(), date, &req)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/arrangement/swap-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, arrangements.ErrNoSlotsForDate):
			h.logger.Warn("POST /days/{date}/arrangement/swap-slots - No slots: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNoSlots)

		case errors.Is(err, arrangements.ErrSlotNotFound):
			h.logger.Warn("POST /days/{date}/arrangement/swap-slots - Slot not found: a=%d, b=%d",
				req.SlotIDA, req.SlotIDB)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, arrangements.ErrCapacityExceeded):
			h.logger.Warn("POST /days/{date}/arrangement/swap-slots - Capacity exceeded: a=%d, b=%d",
				req.SlotIDA, req.SlotIDB)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("POST /days/{date}/arrangement/swap-slots - Failed: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/arrangement/swap-slots - Swapped slots %d and %d for date=%s",
		req.SlotIDA, req.SlotIDB, vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
