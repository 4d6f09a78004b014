package arrangement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

func testSlot(id int64, start string, maxOccupants int) domain.Slot {
	return domain.Slot{
		ID:           id,
		LotteryDate:  time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString(start),
		MaxOccupants: maxOccupants,
	}
}

func testEntry(id int64, partySize int, slotID *int64) *domain.Entry {
	members := make([]int64, 0, partySize)
	for i := 0; i < partySize; i++ {
		members = append(members, id*100+int64(i))
	}
	entryType := domain.EntryTypeIndividual
	if partySize > 1 {
		entryType = domain.EntryTypeGroup
	}
	status := domain.EntryStatusProcessing
	if slotID != nil {
		status = domain.EntryStatusAssigned
	}
	return &domain.Entry{
		ID:             id,
		Type:           entryType,
		OrganizerID:    id * 100,
		LotteryDate:    time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		MemberIDs:      members,
		Status:         status,
		AssignedSlotID: slotID,
	}
}

func slotID(id int64) *int64 {
	return &id
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	t.Run("builds slots, assignments and unassigned pool", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{
				testEntry(10, 2, slotID(1)),
				testEntry(11, 1, nil),
			},
		)
		require.NoError(t, err)

		views := m.Slots()
		require.Len(t, views, 2)
		require.Equal(t, int64(1), views[0].SlotID)
		require.Len(t, views[0].Occupants, 1)
		require.Equal(t, int64(10), views[0].Occupants[0].EntryID)
		require.Equal(t, 2, views[0].OccupiedSpots())
		require.Empty(t, views[1].Occupants)

		pool := m.Unassigned()
		require.Len(t, pool, 1)
		require.Equal(t, int64(11), pool[0].EntryID)
		require.False(t, m.HasChanges())
	})

	t.Run("skips cancelled entries", func(t *testing.T) {
		t.Parallel()

		cancelled := testEntry(10, 1, nil)
		cancelled.Status = domain.EntryStatusCancelled

		m, err := NewModel([]domain.Slot{testSlot(1, "07:00", 4)}, []*domain.Entry{cancelled})
		require.NoError(t, err)
		require.Empty(t, m.Unassigned())
	})

	t.Run("rejects assignment to unknown slot", func(t *testing.T) {
		t.Parallel()

		_, err := NewModel([]domain.Slot{testSlot(1, "07:00", 4)}, []*domain.Entry{testEntry(10, 1, slotID(99))})
		require.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestModelMoveEntry(t *testing.T) {
	t.Parallel()

	t.Run("moves entry between slots", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{testEntry(10, 2, slotID(1))},
		)
		require.NoError(t, err)

		require.NoError(t, m.MoveEntry(10, slotID(2)))

		views := m.Slots()
		require.Empty(t, views[0].Occupants)
		require.Len(t, views[1].Occupants, 1)
		require.True(t, m.HasChanges())
	})

	t.Run("moves entry to unassigned pool", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4)},
			[]*domain.Entry{testEntry(10, 2, slotID(1))},
		)
		require.NoError(t, err)

		require.NoError(t, m.MoveEntry(10, nil))
		require.Empty(t, m.Slots()[0].Occupants)
		require.Len(t, m.Unassigned(), 1)
	})

	t.Run("rejects move over capacity and keeps state", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{
				testEntry(10, 3, slotID(1)),
				testEntry(11, 2, slotID(2)),
			},
		)
		require.NoError(t, err)

		err = m.MoveEntry(10, slotID(2))
		require.ErrorIs(t, err, ErrCapacityExceeded)

		views := m.Slots()
		require.Len(t, views[0].Occupants, 1)
		require.Len(t, views[1].Occupants, 1)
		require.False(t, m.HasChanges())
	})

	t.Run("move within the same slot ignores own size", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4)},
			[]*domain.Entry{testEntry(10, 4, slotID(1))},
		)
		require.NoError(t, err)

		require.NoError(t, m.MoveEntry(10, slotID(1)))
		require.False(t, m.HasChanges())
	})

	t.Run("unknown entry", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel([]domain.Slot{testSlot(1, "07:00", 4)}, nil)
		require.NoError(t, err)
		require.ErrorIs(t, m.MoveEntry(99, nil), ErrEntryNotFound)
	})

	t.Run("unknown target slot", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4)},
			[]*domain.Entry{testEntry(10, 1, nil)},
		)
		require.NoError(t, err)
		require.ErrorIs(t, m.MoveEntry(10, slotID(99)), ErrSlotNotFound)
	})
}

func TestModelSwapEntries(t *testing.T) {
	t.Parallel()

	t.Run("swaps placements of two entries", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{
				testEntry(10, 2, slotID(1)),
				testEntry(11, 3, slotID(2)),
			},
		)
		require.NoError(t, err)

		require.NoError(t, m.SwapEntries(10, 11))

		views := m.Slots()
		require.Equal(t, int64(11), views[0].Occupants[0].EntryID)
		require.Equal(t, int64(10), views[1].Occupants[0].EntryID)
	})

	t.Run("swap with pool entry", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4)},
			[]*domain.Entry{
				testEntry(10, 2, slotID(1)),
				testEntry(11, 3, nil),
			},
		)
		require.NoError(t, err)

		require.NoError(t, m.SwapEntries(10, 11))
		require.Equal(t, int64(11), m.Slots()[0].Occupants[0].EntryID)
		require.Equal(t, int64(10), m.Unassigned()[0].EntryID)
	})

	t.Run("rejects swap that would not fit and keeps state", func(t *testing.T) {
		t.Parallel()

		// Слот 1: заявки 10 (2) и 12 (2), слот 2: заявка 11 (3).
		// После обмена 10<->11 слот 1 держал бы 2+3=5 из 4
		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{
				testEntry(10, 2, slotID(1)),
				testEntry(12, 2, slotID(1)),
				testEntry(11, 3, slotID(2)),
			},
		)
		require.NoError(t, err)

		err = m.SwapEntries(10, 11)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		require.False(t, m.HasChanges())
	})

	t.Run("unknown entry", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4)},
			[]*domain.Entry{testEntry(10, 1, nil)},
		)
		require.NoError(t, err)
		require.ErrorIs(t, m.SwapEntries(10, 99), ErrEntryNotFound)
	})
}

func TestModelSwapSlotContents(t *testing.T) {
	t.Parallel()

	t.Run("exchanges full contents", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{
				testEntry(10, 2, slotID(1)),
				testEntry(11, 2, slotID(1)),
				testEntry(12, 3, slotID(2)),
			},
		)
		require.NoError(t, err)

		require.NoError(t, m.SwapSlotContents(1, 2))

		views := m.Slots()
		require.Len(t, views[0].Occupants, 1)
		require.Equal(t, int64(12), views[0].Occupants[0].EntryID)
		require.Len(t, views[1].Occupants, 2)
	})

	t.Run("rejects overflow and keeps state", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 2)},
			[]*domain.Entry{
				testEntry(10, 2, slotID(1)),
				testEntry(11, 2, slotID(1)),
				testEntry(12, 1, slotID(2)),
			},
		)
		require.NoError(t, err)

		err = m.SwapSlotContents(1, 2)
		require.ErrorIs(t, err, ErrCapacityExceeded)
		require.False(t, m.HasChanges())
	})

	t.Run("same slot", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel([]domain.Slot{testSlot(1, "07:00", 4)}, nil)
		require.NoError(t, err)
		require.ErrorIs(t, m.SwapSlotContents(1, 1), ErrSameSlot)
	})

	t.Run("unknown slot", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel([]domain.Slot{testSlot(1, "07:00", 4)}, nil)
		require.NoError(t, err)
		require.ErrorIs(t, m.SwapSlotContents(1, 99), ErrSlotNotFound)
	})
}

func TestModelDiff(t *testing.T) {
	t.Parallel()

	t.Run("no changes yields empty diff", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4)},
			[]*domain.Entry{testEntry(10, 1, slotID(1))},
		)
		require.NoError(t, err)
		require.Empty(t, m.Diff())
	})

	t.Run("diff sorted by entry ID with nil for pool moves", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{
				testEntry(12, 1, slotID(1)),
				testEntry(10, 1, slotID(1)),
				testEntry(11, 1, nil),
			},
		)
		require.NoError(t, err)

		require.NoError(t, m.MoveEntry(12, nil))
		require.NoError(t, m.MoveEntry(11, slotID(2)))

		changes := m.Diff()
		require.Len(t, changes, 2)
		require.Equal(t, int64(11), changes[0].EntryID)
		require.NotNil(t, changes[0].NewSlotID)
		require.Equal(t, int64(2), *changes[0].NewSlotID)
		require.Equal(t, int64(12), changes[1].EntryID)
		require.Nil(t, changes[1].NewSlotID)
	})

	t.Run("entry moved back to original place drops out of diff", func(t *testing.T) {
		t.Parallel()

		m, err := NewModel(
			[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
			[]*domain.Entry{testEntry(10, 1, slotID(1))},
		)
		require.NoError(t, err)

		require.NoError(t, m.MoveEntry(10, slotID(2)))
		require.True(t, m.HasChanges())

		require.NoError(t, m.MoveEntry(10, slotID(1)))
		require.Empty(t, m.Diff())
		require.False(t, m.HasChanges())
	})
}

func TestModelReset(t *testing.T) {
	t.Parallel()

	m, err := NewModel(
		[]domain.Slot{testSlot(1, "07:00", 4), testSlot(2, "07:10", 4)},
		[]*domain.Entry{
			testEntry(10, 2, slotID(1)),
			testEntry(11, 1, nil),
		},
	)
	require.NoError(t, err)

	require.NoError(t, m.MoveEntry(10, slotID(2)))
	require.NoError(t, m.MoveEntry(11, slotID(1)))
	require.True(t, m.HasChanges())

	m.Reset()

	require.False(t, m.HasChanges())
	require.Empty(t, m.Diff())

	views := m.Slots()
	require.Len(t, views[0].Occupants, 1)
	require.Equal(t, int64(10), views[0].Occupants[0].EntryID)
	require.Empty(t, views[1].Occupants)
	require.Len(t, m.Unassigned(), 1)
	require.Equal(t, int64(11), m.Unassigned()[0].EntryID)
}
