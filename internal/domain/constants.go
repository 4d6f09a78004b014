package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes   = 10
	DefaultMaxOccupantsPerSlot   = 4
	DefaultWindowDurationMinutes = 60
)

// Business validation constants
const (
	MinSlotIntervalMinutes   = 5
	MaxSlotIntervalMinutes   = 60
	MinOccupantsPerSlot      = 1
	MaxOccupantsPerSlot      = 8
	MinWindowDurationMinutes = 15
	MaxWindowDurationMinutes = 240

	// MaxGroupHumans максимум людей в групповой заявке (организатор + участники),
	// гости и заглушки считаются сверх этого лимита
	MaxGroupHumans = 4
)

// Fairness score constants
const (
	// FairnessStep шаг изменения балла удачи за один розыгрыш
	FairnessStep = 1

	// FairnessFloor нижняя граница балла удачи
	FairnessFloor = -20

	// FairnessCeiling верхняя граница балла удачи
	FairnessCeiling = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveEntryStatuses статусы заявок, занимающих место в розыгрыше
// Используется для фильтрации при подсчете занятости слотов
var ActiveEntryStatuses = []EntryStatus{
	EntryStatusPending,
	EntryStatusProcessing,
	EntryStatusAssigned,
}

// ClampFairness ограничивает балл удачи допустимым диапазоном
func ClampFairness(score int) int {
	if score < FairnessFloor {
		return FairnessFloor
	}
	if score > FairnessCeiling {
		return FairnessCeiling
	}
	return score
}
