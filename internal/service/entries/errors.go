package entries

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("entries.service: invalid input data")

	// ErrEntryNotFound возвращается, когда заявка не найдена
	ErrEntryNotFound = errors.New("entries.service: entry not found")

	// ErrPermissionDenied возвращается, когда пользователь не имеет прав на операцию
	ErrPermissionDenied = errors.New("entries.service: permission denied")

	// ErrCannotCancel возвращается, когда заявка не может быть отменена
	// в текущем статусе
	ErrCannotCancel = errors.New("entries.service: entry cannot be cancelled")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("entries.service: internal error")
)
