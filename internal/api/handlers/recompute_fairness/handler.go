package recompute_fairness

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	recomputeFairness "github.com/fairwaylab/GC-LotteryService/internal/usecase/recompute_fairness"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgNoConfiguration = "конфигурация дня не настроена"
)

type Handler struct {
	useCase RecomputeFairnessUseCase
	logger  Logger
}

func NewHandler(useCase RecomputeFairnessUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RecomputeFairnessResponse HTTP response model
type RecomputeFairnessResponse struct {
	Date          string        `json:"date"`
	UpdatedScores map[int64]int `json:"updatedScores"`
}

// Handle POST /api/v1/days/{date}/recompute-fairness
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/recompute-fairness - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	operatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days/{date}/recompute-fairness - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &recomputeFairness.Request{
		OperatorID: operatorID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, recomputeFairness.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/recompute-fairness - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, recomputeFairness.ErrConfigurationInvalid):
			h.logger.Warn("POST /days/{date}/recompute-fairness - No day configuration: date=%s", vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgNoConfiguration)

		default:
			h.logger.Error("POST /days/{date}/recompute-fairness - Failed: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/recompute-fairness - Updated %d scores for date=%s",
		len(result.UpdatedScores), vars["date"])
	handlers.RespondJSON(w, http.StatusOK, &RecomputeFairnessResponse{
		Date:          result.Date.Format(domain.DateFormat),
		UpdatedScores: result.UpdatedScores,
	})
}
