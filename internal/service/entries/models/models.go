package models

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// Request модели

// GetDayEntriesRequest запрос на получение заявок на дату
type GetDayEntriesRequest struct {
	Date             time.Time `json:"date"`
	Status           *string   `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool      `json:"includeCancelled,omitempty"` // Включать отмененные заявки
}

// GetMemberEntriesRequest запрос на получение заявок члена клуба
type GetMemberEntriesRequest struct {
	MemberID         int64   `json:"memberId"`
	Status           *string `json:"status,omitempty"`
	IncludeCancelled bool    `json:"includeCancelled,omitempty"`
}

// Response модели

// EntryResponse ответ с данными заявки
type EntryResponse struct {
	ID              int64     `json:"id"`
	Type            string    `json:"type"`
	OrganizerID     int64     `json:"organizerId"`
	Date            string    `json:"date"`
	MemberIDs       []int64   `json:"memberIds"`
	GuestIDs        []int64   `json:"guestIds,omitempty"`
	GuestFillCount  int       `json:"guestFillCount,omitempty"`
	PartySize       int       `json:"partySize"`
	PreferredWindow int       `json:"preferredWindow"`
	AlternateWindow *int      `json:"alternateWindow,omitempty"`
	Status          string    `json:"status"`
	SubmissionTime  time.Time `json:"submissionTime"`
	AssignedSlotID  *int64    `json:"assignedSlotId,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// EntryListResponse ответ со списком заявок
type EntryListResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int              `json:"total"`
}

// FromDomainEntry конвертирует domain заявку в response модель
func FromDomainEntry(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		Type:            string(e.Type),
		OrganizerID:     e.OrganizerID,
		Date:            e.LotteryDate.Format(domain.DateFormat),
		MemberIDs:       e.MemberIDs,
		GuestIDs:        e.GuestIDs,
		GuestFillCount:  e.GuestFillCount,
		PartySize:       e.PartySize(),
		PreferredWindow: e.PreferredWindow,
		AlternateWindow: e.AlternateWindow,
		Status:          string(e.Status),
		SubmissionTime:  e.SubmissionTime,
		AssignedSlotID:  e.AssignedSlotID,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// FromDomainEntries конвертирует список domain заявок в response модель
func FromDomainEntries(entries []*domain.Entry) *EntryListResponse {
	resp := &EntryListResponse{
		Entries: make([]*EntryResponse, 0, len(entries)),
		Total:   len(entries),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, FromDomainEntry(e))
	}
	return resp
}

// ToDomainEntryStatus конвертирует строку в domain.EntryStatus
func ToDomainEntryStatus(s string) (domain.EntryStatus, error) {
	switch domain.EntryStatus(s) {
	case domain.EntryStatusPending, domain.EntryStatusProcessing,
		domain.EntryStatusAssigned, domain.EntryStatusCancelled:
		return domain.EntryStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
