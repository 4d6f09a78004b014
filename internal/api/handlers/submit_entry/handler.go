package submit_entry

import (
	"errors"
	"net/http"

	"github.com/fairwaylab/GC-LotteryService/internal/api/handlers"
	"github.com/fairwaylab/GC-LotteryService/internal/api/middleware"
	submitEntry "github.com/fairwaylab/GC-LotteryService/internal/usecase/submit_entry"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgMemberNotFound      = "участник не найден"
	msgNoConfiguration     = "конфигурация дня не настроена"
	msgDateInPast          = "дата розыгрыша не может быть в прошлом"
	msgPartyTooLarge       = "размер группы превышает вместимость слота"
	msgTooManyMembers      = "слишком много участников в группе"
	msgInvalidWindow       = "указанное окно не существует"
	msgSameAlternateWindow = "альтернативное окно должно отличаться от предпочтительного"
	msgWindowRestricted    = "предпочтительное окно закрыто правилами клуба"
	msgDuplicateEntry      = "участник уже состоит в заявке на эту дату"
	msgDateProcessed       = "розыгрыш на эту дату уже проведен"
)

type Handler struct {
	useCase SubmitEntryUseCase
	logger  Logger
}

func NewHandler(useCase SubmitEntryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/entries
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /entries - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SubmitEntryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /entries - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /entries - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitEntry.ErrInvalidInput):
			h.logger.Warn("POST /entries - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, submitEntry.ErrMemberNotFound):
			h.logger.Warn("POST /entries - Member not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, submitEntry.ErrConfigurationInvalid):
			h.logger.Warn("POST /entries - No day configuration: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgNoConfiguration)

		case errors.Is(err, submitEntry.ErrInvalidDate):
			h.logger.Warn("POST /entries - Date in past: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, submitEntry.ErrPartyTooLarge):
			h.logger.Warn("POST /entries - Party too large: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgPartyTooLarge)

		case errors.Is(err, submitEntry.ErrTooManyMembers):
			h.logger.Warn("POST /entries - Too many members: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgTooManyMembers)

		case errors.Is(err, submitEntry.ErrInvalidWindow):
			h.logger.Warn("POST /entries - Invalid window: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, submitEntry.ErrSameAlternateWindow):
			h.logger.Warn("POST /entries - Same alternate window: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgSameAlternateWindow)

		case errors.Is(err, submitEntry.ErrWindowRestricted):
			h.logger.Warn("POST /entries - Window restricted: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusConflict, msgWindowRestricted)

		case errors.Is(err, submitEntry.ErrDuplicateEntry):
			h.logger.Warn("POST /entries - Duplicate entry: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateEntry)

		case errors.Is(err, submitEntry.ErrDateAlreadyProcessed):
			h.logger.Warn("POST /entries - Date already processed: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDateProcessed)

		default:
			h.logger.Error("POST /entries - Failed to submit entry: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /entries - Entry submitted: entry_id=%d, user_id=%d, date=%s",
		result.ID, userID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
