package arrangements

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("arrangements.service: invalid input data")

	// ErrNoSlotsForDate возвращается, когда на дату нет сетки слотов
	ErrNoSlotsForDate = errors.New("arrangements.service: no slots for date")

	// ErrEntryNotFound возвращается, когда заявка не найдена в расстановке
	ErrEntryNotFound = errors.New("arrangements.service: entry not found in arrangement")

	// ErrSlotNotFound возвращается, когда слот не найден в расстановке
	ErrSlotNotFound = errors.New("arrangements.service: slot not found in arrangement")

	// ErrCapacityExceeded возвращается, когда перемещение нарушает емкость слота
	ErrCapacityExceeded = errors.New("arrangements.service: slot capacity exceeded")

	// ErrSameSlot возвращается при перестановке заявок из одного слота
	ErrSameSlot = errors.New("arrangements.service: entries share the same slot")

	// ErrNoChanges возвращается при коммите расстановки без изменений
	ErrNoChanges = errors.New("arrangements.service: no pending changes")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("arrangements.service: internal error")
)
