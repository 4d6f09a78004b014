package open_day

import (
	"errors"
	"net/http"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	openLotteryDay "github.com/fairwaylab/GC-LotteryService/internal/usecase/open_lottery_day"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgDateInPast         = "дата не может быть в прошлом"
	msgNoConfiguration    = "конфигурация дня не настроена"
	msgAlreadyOpened      = "сетка слотов на эту дату уже создана"
)

type Handler struct {
	useCase OpenLotteryDayUseCase
	logger  Logger
}

func NewHandler(useCase OpenLotteryDayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /days - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req OpenDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(operatorID)
	if err != nil {
		h.logger.Warn("POST /days - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, openLotteryDay.ErrInvalidInput):
			h.logger.Warn("POST /days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, openLotteryDay.ErrInvalidDate):
			h.logger.Warn("POST /days - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, openLotteryDay.ErrConfigurationInvalid):
			h.logger.Warn("POST /days - Invalid configuration: date=%s, error=%v", req.Date, err)
			handlers.RespondError(w, http.StatusConflict, msgNoConfiguration)

		case errors.Is(err, openLotteryDay.ErrDateAlreadyOpened):
			h.logger.Warn("POST /days - Already opened: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyOpened)

		default:
			h.logger.Error("POST /days - Failed to open day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /days - Opened date=%s with %d slots", req.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
