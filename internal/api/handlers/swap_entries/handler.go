package swap_entries

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
	msgCapacityExceeded   = "перестановка нарушает вместимость слота"
	msgSameSlot           = "заявки уже находятся в одном слоте"
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

// Handle POST /api/v1/days/{date}/arrangement/swap
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/swap - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var req models.SwapEntriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days/{date}/arrangement/swap - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SwapEntries(r.Context(), date, &req)
	if err != nil {
		switch {
		case errors.Is(err, arrangements.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/arrangement/swap - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, arrangements.ErrNoSlotsForDate):
			h.logger.Warn("POST /days/{date}/arrangement/swap - No slots: date=%s", vars["date"])
			handlers.RespondNotFound(w, msgNoSlots)

		case errors.Is(err, arrangements.ErrEntryNotFound):
			h.logger.Warn("POST /days/{date}/arrangement/swap - Entry not found: a=%d, b=%d",
				req.EntryIDA, req.EntryIDB)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, arrangements.ErrSameSlot):
			h.logger.Warn("POST /days/{date}/arrangement/swap - Same slot: a=%d, b=%d",
				req.EntryIDA, req.EntryIDB)
			handlers.RespondError(w, http.StatusConflict, msgSameSlot)

		case errors.Is(err, arrangements.ErrCapacityExceeded):
			h.logger.Warn("POST /days/{date}/arrangement/swap - Capacity exceeded: a=%d, b=%d",
				req.EntryIDA, req.EntryIDB)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		default:
			h.logger.Error("POST /days/{date}/arrangement/swap - Failed: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/arrangement/swap - Swapped entries %d and %d for date=%s",
		req.EntryIDA, req.EntryIDB, vars["date"])
	handlers.RespondJSON(w, http.StatusOK, result)
}
