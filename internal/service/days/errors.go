package days

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("days.service: invalid input data")

	// ErrConfigNotFound возвращается, когда конфигурация дня не найдена
	ErrConfigNotFound = errors.New("days.service: day configuration not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("days.service: internal error")
)
