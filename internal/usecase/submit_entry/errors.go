package submit_entry

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_entry: invalid input data")

	// ErrMemberNotFound возвращается, когда участник заявки не найден
	ErrMemberNotFound = errors.New("submit_entry: member not found")

	// ErrConfigurationInvalid возвращается при отсутствующей конфигурации дня
	ErrConfigurationInvalid = errors.New("submit_entry: invalid day configuration")

	// ErrInvalidDate возвращается при дате розыгрыша в прошлом
	ErrInvalidDate = errors.New("submit_entry: invalid lottery date")

	// ErrPartyTooLarge возвращается, когда размер группы превышает емкость слота
	ErrPartyTooLarge = errors.New("submit_entry: party exceeds slot capacity")

	// ErrTooManyMembers возвращается при превышении лимита людей в группе
	ErrTooManyMembers = errors.New("submit_entry: too many group members")

	// ErrInvalidWindow возвращается при ссылке на несуществующее окно
	ErrInvalidWindow = errors.New("submit_entry: invalid preference window")

	// ErrSameAlternateWindow возвращается, когда альтернативное окно совпадает
	// с предпочтительным
	ErrSameAlternateWindow = errors.New("submit_entry: alternate window equals preferred window")

	// ErrWindowRestricted возвращается, когда предпочтительное окно закрыто
	// правилами для данного состава группы
	ErrWindowRestricted = errors.New("submit_entry: preferred window is restricted for this party")

	// ErrDuplicateEntry возвращается, когда участник уже состоит в заявке на эту дату
	ErrDuplicateEntry = errors.New("submit_entry: member already has an entry for this date")

	// ErrDateAlreadyProcessed возвращается при подаче заявки на уже разыгранную дату
	ErrDateAlreadyProcessed = errors.New("submit_entry: date already processed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_entry: internal error")
)
