package get_day_config

import (
	"errors"
	"net/http"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/service/days"
)

const (
	msgNotFound = "конфигурация дня не найдена"
)

type Handler struct {
	service DayService
	logger  Logger
}

func NewHandler(service DayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetConfig(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, days.ErrConfigNotFound):
			h.logger.Warn("GET /config - Day configuration not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /config - Failed to get config: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /config - Retrieved configuration id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
