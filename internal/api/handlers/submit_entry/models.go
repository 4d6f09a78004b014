package submit_entry

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	submitEntry "github.com/fairwaylab/GC-LotteryService/internal/usecase/submit_entry"
)

// SubmitEntryRequest HTTP request model
type SubmitEntryRequest struct {
	Date                string  `json:"date"` // "2026-05-14"
	AdditionalMemberIDs []int64 `json:"additionalMemberIds,omitempty"`
	GuestIDs            []int64 `json:"guestIds,omitempty"`
	GuestFillCount      int     `json:"guestFillCount,omitempty"`
	PreferredWindow     int     `json:"preferredWindow"`
	AlternateWindow     *int    `json:"alternateWindow,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// EntryResponse HTTP response model
type EntryResponse struct {
	ID              int64                    `json:"id"`
	Type            string                   `json:"type"`
	OrganizerID     int64                    `json:"organizerId"`
	Date            string                   `json:"date"`
	MemberIDs       []int64                  `json:"memberIds"`
	GuestIDs        []int64                  `json:"guestIds,omitempty"`
	GuestFillCount  int                      `json:"guestFillCount,omitempty"`
	PartySize       int                      `json:"partySize"`
	PreferredWindow int                      `json:"preferredWindow"`
	AlternateWindow *int                     `json:"alternateWindow,omitempty"`
	Status          string                   `json:"status"`
	SubmissionTime  string                   `json:"submissionTime"`
	Notes           *string                  `json:"notes,omitempty"`
	FrequencyChecks []FrequencyCheckResponse `json:"frequencyChecks,omitempty"`
	CreatedAt       string                   `json:"createdAt"`
	UpdatedAt       string                   `json:"updatedAt"`
}

// FrequencyCheckResponse превышение лимита частоты одним участником
type FrequencyCheckResponse struct {
	MemberID   int64  `json:"memberId"`
	RuleName   string `json:"ruleName"`
	MaxCount   int    `json:"maxCount"`
	Counted    int    `json:"counted"`
	PeriodDays int    `json:"periodDays"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitEntryRequest) ToUseCaseRequest(organizerID int64) (*submitEntry.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &submitEntry.Request{
		OrganizerID:         organizerID,
		Date:                date,
		AdditionalMemberIDs: r.AdditionalMemberIDs,
		GuestIDs:            r.GuestIDs,
		GuestFillCount:      r.GuestFillCount,
		PreferredWindow:     r.PreferredWindow,
		AlternateWindow:     r.AlternateWindow,
		Notes:               r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitEntry.Response) *EntryResponse {
	out := &EntryResponse{
		ID:              resp.ID,
		Type:            resp.Type,
		OrganizerID:     resp.OrganizerID,
		Date:            resp.Date.Format(domain.DateFormat),
		MemberIDs:       resp.MemberIDs,
		GuestIDs:        resp.GuestIDs,
		GuestFillCount:  resp.GuestFillCount,
		PartySize:       resp.PartySize,
		PreferredWindow: resp.PreferredWindow,
		AlternateWindow: resp.AlternateWindow,
		Status:          resp.Status,
		SubmissionTime:  resp.SubmissionTime.Format(time.RFC3339),
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, check := range resp.FrequencyChecks {
		out.FrequencyChecks = append(out.FrequencyChecks, FrequencyCheckResponse{
			MemberID:   check.MemberID,
			RuleName:   check.RuleName,
			MaxCount:   check.MaxCount,
			Counted:    check.Counted,
			PeriodDays: check.PeriodDays,
		})
	}

	return out
}
