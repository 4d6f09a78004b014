package get_windows

import (
	"errors"
	"net/http"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/service/days"
)

const (
	msgNoConfiguration = "конфигурация дня не настроена"
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

// Handle GET /api/v1/windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetWindows(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, days.ErrConfigNotFound):
			h.logger.Warn("GET /windows - Day configuration not found")
			handlers.RespondNotFound(w, msgNoConfiguration)

		default:
			h.logger.Error("GET /windows - Failed to compute windows: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /windows - Computed %d windows", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
