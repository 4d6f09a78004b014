package evaluate_restrictions

import (
	"errors"
	"net/http"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/service/restrictions"
	"github.com/fairwaylab/GC-LotteryService/internal/service/restrictions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры запроса"
	msgMemberNotFound     = "участник не найден"
	msgNoConfiguration    = "конфигурация дня не настроена"
)

type Handler struct {
	service RestrictionService
	logger  Logger
}

func NewHandler(service RestrictionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/restrictions/evaluate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.EvaluateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /restrictions/evaluate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Evaluate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, restrictions.ErrInvalidInput):
			h.logger.Warn("POST /restrictions/evaluate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, restrictions.ErrMemberNotFound):
			h.logger.Warn("POST /restrictions/evaluate - Member not found: members=%v", req.MemberIDs)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, restrictions.ErrConfigNotFound):
			h.logger.Warn("POST /restrictions/evaluate - Day configuration not found")
			handlers.RespondNotFound(w, msgNoConfiguration)

		default:
			h.logger.Error("POST /restrictions/evaluate - Failed to evaluate: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /restrictions/evaluate - Evaluated %d windows for %d members",
		len(result.Verdicts), len(req.MemberIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
