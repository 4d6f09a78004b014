package cancel_entry

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	"github.com/fairwaylab/GC-LotteryService/internal/service/entries"
)

const (
	msgInvalidEntryID = "некорректный ID заявки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "заявка не найдена"
	msgForbidden      = "доступ запрещен"
	msgCannotCancel   = "заявка не может быть отменена"
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

// Handle PATCH /api/v1/entries/{entryId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /entries/{id}/cancel - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /entries/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Cancel(r.Context(), entryID, userID)
	if err != nil {
		switch {
		case errors.Is(err, entries.ErrEntryNotFound):
			h.logger.Warn("PATCH /entries/{id}/cancel - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, entries.ErrPermissionDenied):
			h.logger.Warn("PATCH /entries/{id}/cancel - Permission denied: entry_id=%d, user_id=%d", entryID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, entries.ErrCannotCancel):
			h.logger.Warn("PATCH /entries/{id}/cancel - Cannot cancel: entry_id=%d", entryID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /entries/{id}/cancel - Failed to cancel: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /entries/{id}/cancel - Entry cancelled: entry_id=%d, user_id=%d", entryID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
