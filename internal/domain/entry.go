package domain

import "time"

// EntryStatus represents the status of a lottery entry
type EntryStatus string

const (
	EntryStatusPending    EntryStatus = "pending"
	EntryStatusProcessing EntryStatus = "processing"
	EntryStatusAssigned   EntryStatus = "assigned"
	EntryStatusCancelled  EntryStatus = "cancelled"
)

// EntryType represents the kind of a lottery entry
type EntryType string

const (
	EntryTypeIndividual EntryType = "individual"
	EntryTypeGroup      EntryType = "group"
)

// Entry represents a lottery entry for a single operating day
// Для индивидуальной заявки MemberIDs содержит только организатора,
// для групповой - организатора и до трех дополнительных участников
type Entry struct {
	ID          int64
	Type        EntryType
	OrganizerID int64
	LotteryDate time.Time

	// MemberIDs упорядоченный список участников, первым всегда идет организатор
	MemberIDs []int64

	// GuestIDs идентификаторы гостей (не участвуют в баллах удачи)
	GuestIDs []int64

	// GuestFillCount количество мест-заглушек без конкретного гостя
	GuestFillCount int

	PreferredWindow int
	AlternateWindow *int

	Status         EntryStatus
	SubmissionTime time.Time
	AssignedSlotID *int64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGroup returns true if the entry is a group entry
func (e *Entry) IsGroup() bool {
	return e.Type == EntryTypeGroup
}

// PartySize returns the number of occupants the entry consumes in a slot:
// members + guests + guest fills
func (e *Entry) PartySize() int {
	return len(e.MemberIDs) + len(e.GuestIDs) + e.GuestFillCount
}

// HasGuestsOrFills returns true if the entry carries guests or guest fills
func (e *Entry) HasGuestsOrFills() bool {
	return len(e.GuestIDs) > 0 || e.GuestFillCount > 0
}

// HasAlternate returns true if an alternate window preference is set
func (e *Entry) HasAlternate() bool {
	return e.AlternateWindow != nil
}

// IsActive returns true if the entry still occupies a place in the lottery
func (e *Entry) IsActive() bool {
	return e.Status != EntryStatusCancelled
}

// CanBeCancelled returns true if the entry can be cancelled
// Назначенную заявку сначала нужно снять со слота
func (e *Entry) CanBeCancelled() bool {
	return e.Status == EntryStatusPending
}

// IsAssigned returns true if the entry has a committed slot assignment
func (e *Entry) IsAssigned() bool {
	return e.Status == EntryStatusAssigned || e.AssignedSlotID != nil
}

// EntriesFilter фильтр для получения заявок
type EntriesFilter struct {
	LotteryDate      *time.Time   // Фильтр по дате розыгрыша (опционально)
	MemberID         *int64       // Заявки, где участвует конкретный член клуба (опционально)
	Status           *EntryStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool         // Включать ли отмененные заявки
}
