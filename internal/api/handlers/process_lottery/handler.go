package process_lottery

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	processLottery "github.com/fairwaylab/GC-LotteryService/internal/usecase/process_lottery"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNoConfiguration  = "конфигурация дня не настроена"
	msgNoSlots          = "на эту дату не открыта сетка слотов"
	msgAlreadyProcessed = "розыгрыш на эту дату уже проведен"
)

type Handler struct {
	useCase ProcessLotteryUseCase
	logger  Logger
}

func NewHandler(useCase ProcessLotteryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/days/{date}/process
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("POST /days/{date}/process - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	operatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days/{date}/process - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processLottery.Request{
		OperatorID: operatorID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, processLottery.ErrInvalidInput):
			h.logger.Warn("POST /days/{date}/process - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, processLottery.ErrConfigurationInvalid):
			h.logger.Warn("POST /days/{date}/process - No day configuration: date=%s", vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgNoConfiguration)

		case errors.Is(err, processLottery.ErrNoSlotsForDate):
			h.logger.Warn("POST /days/{date}/process - No slots: date=%s", vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgNoSlots)

		case errors.Is(err, processLottery.ErrAlreadyProcessed):
			h.logger.Warn("POST /days/{date}/process - Already processed: date=%s", vars["date"])
			handlers.RespondError(w, http.StatusConflict, msgAlreadyProcessed)

		default:
			h.logger.Error("POST /days/{date}/process - Failed to process: date=%s, error=%v",
				vars["date"], err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days/{date}/process - Processed date=%s: run_id=%s, assigned=%d, unassigned=%d",
		vars["date"], result.RunID, result.AssignedCount, result.UnassignedCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
