package restrictions

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("restrictions.service: invalid input data")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("restrictions.service: member not found")

	// ErrConfigNotFound возвращается, когда конфигурация дня не найдена
	ErrConfigNotFound = errors.New("restrictions.service: day configuration not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("restrictions.service: internal error")
)
