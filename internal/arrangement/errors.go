package arrangement

import "errors"

var (
	// ErrEntryNotFound возвращается при неизвестном ID заявки
	ErrEntryNotFound = errors.New("arrangement: entry not found")

	// ErrSlotNotFound возвращается при неизвестном ID слота
	ErrSlotNotFound = errors.New("arrangement: slot not found")

	// ErrCapacityExceeded возвращается, когда операция превысила бы емкость слота
	// Состояние модели при этом не изменяется
	ErrCapacityExceeded = errors.New("arrangement: slot capacity exceeded")

	// ErrSameSlot возвращается при попытке обменять содержимое слота с самим собой
	ErrSameSlot = errors.New("arrangement: cannot swap a slot with itself")
)
