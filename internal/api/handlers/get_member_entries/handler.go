package get_member_entries

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/service/entries"
	"github.com/fairwaylab/GC-LotteryService/internal/service/entries/models"
)

const (
	msgInvalidMemberID = "некорректный ID члена клуба"
	msgInvalidInput    = "некорректные параметры запроса"
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

// Handle GET /api/v1/members/{memberId}/entries
// Query параметры: status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	memberID, err := strconv.ParseInt(vars["memberId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /members/{id}/entries - Invalid member ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	req := &models.GetMemberEntriesRequest{
		MemberID:         memberID,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetMemberEntries(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entries.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/entries - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /members/{id}/entries - Failed to get entries: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/entries - Retrieved %d entries for member_id=%d", result.Total, memberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
