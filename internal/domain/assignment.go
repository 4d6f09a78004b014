package domain

import "time"

// AssignmentReason причина, по которой заявка получила (или не получила) слот
type AssignmentReason string

const (
	// ReasonPreferredMatch слот найден в предпочтительном окне
	ReasonPreferredMatch AssignmentReason = "preferred_match"

	// ReasonAlternateMatch слот найден в альтернативном окне
	ReasonAlternateMatch AssignmentReason = "alternate_match"

	// ReasonAllowedFallback слот вне обоих окон, но в незапрещенном окне
	ReasonAllowedFallback AssignmentReason = "allowed_fallback"

	// ReasonRestrictionViolation окна закрыты правилами; слот либо не назначен,
	// либо назначен в закрытое окно за неимением другой емкости
	ReasonRestrictionViolation AssignmentReason = "restriction_violation"

	// ReasonNoCapacity емкости не хватило, ограничения ни при чем
	ReasonNoCapacity AssignmentReason = "no_capacity"
)

// AssignmentLogEntry неизменяемая запись аудита по одной обработанной заявке
// Создается один раз за прогон движка и больше не модифицируется
type AssignmentLogEntry struct {
	ID          int64
	RunID       string // идентификатор прогона (uuid)
	LotteryDate time.Time
	EntryID     int64
	EntryType   EntryType
	Reason      AssignmentReason

	FinalSlotID *int64

	FairnessBefore int
	FairnessAfter  int

	ViolatedRestrictions []string

	CreatedAt time.Time
}

// FairnessScore текущий балл удачи члена клуба
// Балл уменьшается, когда предпочтение было удовлетворено, и растет иначе;
// при распределении заявки с меньшим баллом обрабатываются первыми
type FairnessScore struct {
	MemberID  int64
	Score     int
	UpdatedAt time.Time
}
