package reset_lottery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	resetLottery "github.com/fairwaylab/GC-LotteryService/internal/usecase/reset_lottery"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID = "отсутствует ID пользователя"
)

type Handler struct {
	useCase ResetLotteryUseCase
	logger  Logger
}

func NewHandler(useCase ResetLotteryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// ResetLotteryResponse HTTP response model
type ResetLotteryResponse struct {
	Date       string `json:"date"`
	ResetCount int64  `json:"resetCount"`
}

// Handle POST /api/v1/days/{date}/reset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/reset - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	operatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days/{date}/reset - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resetLottery.Request{
		OperatorID: operatorID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, resetLottery.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/reset - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /days/{date}/reset - Failed to reset: date=%s, error=%v", vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/reset - Reset date=%s: %d entries returned to pending",
		vars["date"], result.ResetCount)
	handlers.RespondJSON(w, http.StatusOK, &ResetLotteryResponse{
		Date:       result.Date.Format(domain.DateFormat),
		ResetCount: result.ResetCount,
	})
}
