package process_lottery

import (
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	processLottery "github.com/fairwaylab/GC-LotteryService/internal/usecase/process_lottery"
)

// ProcessLotteryResponse HTTP response model
type ProcessLotteryResponse struct {
	RunID           string               `json:"runId"`
	Date            string               `json:"date"`
	AssignedCount   int                  `json:"assignedCount"`
	UnassignedCount int                  `json:"unassignedCount"`
	Log             []AssignmentLogEntry `json:"log"`
	UpdatedFairness map[int64]int        `json:"updatedFairness"`
}

// AssignmentLogEntry запись журнала по одной заявке
type AssignmentLogEntry struct {
	EntryID              int64    `json:"entryId"`
	EntryType            string   `json:"entryType"`
	Reason               string   `json:"reason"`
	FinalSlotID          *int64   `json:"finalSlotId,omitempty"`
	FairnessBefore       int      `json:"fairnessBefore"`
	FairnessAfter        int      `json:"fairnessAfter"`
	ViolatedRestrictions []string `json:"violatedRestrictions,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *processLottery.Response) *ProcessLotteryResponse {
	out := &ProcessLotteryResponse{
		RunID:           resp.RunID,
		Date:            resp.Date.Format(domain.DateFormat),
		AssignedCount:   resp.AssignedCount,
		UnassignedCount: resp.UnassignedCount,
		Log:             make([]AssignmentLogEntry, 0, len(resp.Log)),
		UpdatedFairness: resp.UpdatedFairness,
	}

	for _, entry := range resp.Log {
		out.Log = append(out.Log, AssignmentLogEntry{
			EntryID:              entry.EntryID,
			EntryType:            string(entry.EntryType),
			Reason:               string(entry.Reason),
			FinalSlotID:          entry.FinalSlotID,
			FairnessBefore:       entry.FairnessBefore,
			FairnessAfter:        entry.FairnessAfter,
			ViolatedRestrictions: entry.ViolatedRestrictions,
		})
	}

	return out
}
