package open_lottery_day

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("open_lottery_day: invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("open_lottery_day: invalid lottery date")

	// ErrConfigurationInvalid возвращается при отсутствующей или некорректной
	// конфигурации дня
	ErrConfigurationInvalid = errors.New("open_lottery_day: invalid day configuration")

	// ErrDateAlreadyOpened возвращается, когда сетка слотов на дату уже создана
	ErrDateAlreadyOpened = errors.New("open_lottery_day: date already opened")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("open_lottery_day: internal error")
)
