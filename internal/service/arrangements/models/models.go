package models

import (
	"github.com/fairwaylab/GC-LotteryService/internal/arrangement"
)

// Request модели

// MoveEntryRequest запрос на перемещение заявки в другой слот
// TargetSlotID == nil означает перенос в пул нераспределенных
type MoveEntryRequest struct {
	EntryID      int64  `json:"entryId"`
	TargetSlotID *int64 `json:"targetSlotId,omitempty"`
}

// SwapEntriesRequest запрос на перестановку двух заявок местами
type SwapEntriesRequest struct {
	EntryIDA int64 `json:"entryIdA"`
	EntryIDB int64 `json:"entryIdB"`
}

// SwapSlotContentsRequest запрос на обмен содержимым двух слотов
type SwapSlotContentsRequest struct {
	SlotIDA int64 `json:"slotIdA"`
	SlotIDB int64 `json:"slotIdB"`
}

// Response модели

// OccupantResponse заявка в составе слота или пула
type OccupantResponse struct {
	EntryID   int64 `json:"entryId"`
	IsGroup   bool  `json:"isGroup"`
	PartySize int   `json:"partySize"`
}

// SlotViewResponse снимок слота с занимающими
type SlotViewResponse struct {
	SlotID        int64              `json:"slotId"`
	StartTime     string             `json:"startTime"`
	MaxOccupants  int                `json:"maxOccupants"`
	OccupiedSpots int                `json:"occupiedSpots"`
	Occupants     []OccupantResponse `json:"occupants"`
}

// ArrangementResponse снимок расстановки целиком
type ArrangementResponse struct {
	Date       string             `json:"date"`
	Slots      []SlotViewResponse `json:"slots"`
	Unassigned []OccupantResponse `json:"unassigned"`
	HasChanges bool               `json:"hasChanges"`
}

// PendingChangeResponse одно отложенное изменение расстановки
type PendingChangeResponse struct {
	EntryID   int64  `json:"entryId"`
	IsGroup   bool   `json:"isGroup"`
	NewSlotID *int64 `json:"newSlotId,omitempty"`
}

// CommitResponse результат коммита расстановки
type CommitResponse struct {
	Date    string                  `json:"date"`
	Applied []PendingChangeResponse `json:"applied"`
}

// FromModel строит снимок расстановки из in-memory модели
func FromModel(date string, m *arrangement.Model) *ArrangementResponse {
	slots := m.Slots()
	resp := &ArrangementResponse{
		Date:       date,
		Slots:      make([]SlotViewResponse, 0, len(slots)),
		Unassigned: fromOccupants(m.Unassigned()),
		HasChanges: m.HasChanges(),
	}

	for i := range slots {
		view := &slots[i]
		resp.Slots = append(resp.Slots, SlotViewResponse{
			SlotID:        view.SlotID,
			StartTime:     view.StartTime.String(),
			MaxOccupants:  view.MaxOccupants,
			OccupiedSpots: view.OccupiedSpots(),
			Occupants:     fromOccupants(view.Occupants),
		})
	}

	return resp
}

// FromPendingChanges конвертирует diff модели в response модель
func FromPendingChanges(date string, changes []arrangement.PendingChange) *CommitResponse {
	resp := &CommitResponse{
		Date:    date,
		Applied: make([]PendingChangeResponse, 0, len(changes)),
	}
	for _, c := range changes {
		resp.Applied = append(resp.Applied, PendingChangeResponse{
			EntryID:   c.EntryID,
			IsGroup:   c.IsGroup,
			NewSlotID: c.NewSlotID,
		})
	}
	return resp
}

func fromOccupants(occupants []arrangement.Occupant) []OccupantResponse {
	out := make([]OccupantResponse, 0, len(occupants))
	for _, o := range occupants {
		out = append(out, OccupantResponse{
			EntryID:   o.EntryID,
			IsGroup:   o.IsGroup,
			PartySize: o.PartySize,
		})
	}
	return out
}
