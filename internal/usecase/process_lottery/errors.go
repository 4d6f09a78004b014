package process_lottery

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("process_lottery: invalid input data")

	// ErrConfigurationInvalid возвращается при отсутствующей или некорректной
	// конфигурации операционного дня - прогон прерывается целиком
	ErrConfigurationInvalid = errors.New("process_lottery: invalid day configuration")

	// ErrNoSlotsForDate возвращается, когда на дату не открыты слоты
	ErrNoSlotsForDate = errors.New("process_lottery: no slots for date")

	// ErrAlreadyProcessed возвращается при повторном запуске розыгрыша на дату
	// без явного сброса - защита от двойного распределения емкости
	ErrAlreadyProcessed = errors.New("process_lottery: date already processed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("process_lottery: internal error")
)
