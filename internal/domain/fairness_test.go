package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fairnessWindows() []PreferenceWindow {
	return []PreferenceWindow{
		{Index: 0, StartMinutes: 7 * 60, EndMinutes: 8 * 60},
		{Index: 1, StartMinutes: 8 * 60, EndMinutes: 9 * 60},
	}
}

func TestComputeFairnessUpdates(t *testing.T) {
	t.Parallel()

	t.Run("preferred match decrements, miss increments", func(t *testing.T) {
		entries := []*Entry{
			{ID: 1, MemberIDs: []int64{10}, PreferredWindow: 0, Status: EntryStatusAssigned},
			{ID: 2, MemberIDs: []int64{20}, PreferredWindow: 0, Status: EntryStatusAssigned},
		}
		// Заявка 1 попала в предпочтительное окно, заявка 2 - нет
		starts := map[int64]int{1: 7*60 + 10, 2: 8*60 + 10}

		updated := ComputeFairnessUpdates(entries, starts, fairnessWindows(), map[int64]int{})
		require.Equal(t, -1, updated[10])
		require.Equal(t, 1, updated[20])
	})

	t.Run("all group members updated", func(t *testing.T) {
		entries := []*Entry{
			{ID: 1, MemberIDs: []int64{10, 11, 12}, PreferredWindow: 1, Status: EntryStatusAssigned},
		}
		starts := map[int64]int{1: 8 * 60}

		updated := ComputeFairnessUpdates(entries, starts, fairnessWindows(),
			map[int64]int{10: 5, 11: 0, 12: -3})
		require.Equal(t, 4, updated[10])
		require.Equal(t, -1, updated[11])
		require.Equal(t, -4, updated[12])
	})

	t.Run("unassigned entries leave scores untouched", func(t *testing.T) {
		entries := []*Entry{
			{ID: 1, MemberIDs: []int64{10}, PreferredWindow: 0, Status: EntryStatusPending},
		}

		updated := ComputeFairnessUpdates(entries, map[int64]int{}, fairnessWindows(),
			map[int64]int{10: 3})
		require.Empty(t, updated)
	})

	t.Run("cancelled entries are skipped", func(t *testing.T) {
		entries := []*Entry{
			{ID: 1, MemberIDs: []int64{10}, PreferredWindow: 0, Status: EntryStatusCancelled},
		}
		starts := map[int64]int{1: 7 * 60}

		updated := ComputeFairnessUpdates(entries, starts, fairnessWindows(), map[int64]int{})
		require.Empty(t, updated)
	})

	t.Run("scores clamp at bounds", func(t *testing.T) {
		entries := []*Entry{
			{ID: 1, MemberIDs: []int64{10}, PreferredWindow: 0, Status: EntryStatusAssigned},
			{ID: 2, MemberIDs: []int64{20}, PreferredWindow: 0, Status: EntryStatusAssigned},
		}
		starts := map[int64]int{1: 7 * 60, 2: 8 * 60}

		updated := ComputeFairnessUpdates(entries, starts, fairnessWindows(),
			map[int64]int{10: FairnessFloor, 20: FairnessCeiling})
		require.Equal(t, FairnessFloor, updated[10])
		require.Equal(t, FairnessCeiling, updated[20])
	})
}

func TestClampFairness(t *testing.T) {
	t.Parallel()

	require.Equal(t, FairnessFloor, ClampFairness(FairnessFloor-5))
	require.Equal(t, FairnessCeiling, ClampFairness(FairnessCeiling+5))
	require.Equal(t, 0, ClampFairness(0))
}
