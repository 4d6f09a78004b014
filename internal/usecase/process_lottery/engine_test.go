package process_lottery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/ptr"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

var engineDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

// Два окна по два часа: [07:00, 09:00) и [09:00, 11:00)
func engineWindows() []domain.PreferenceWindow {
	return domain.ComputeWindows(&domain.DayConfig{
		OpenTime:              types.TimeString("07:00"),
		CloseTime:             types.TimeString("11:00"),
		SlotIntervalMinutes:   60,
		MaxOccupantsPerSlot:   4,
		WindowDurationMinutes: 120,
	})
}

func engineSlots(maxOccupants int, starts ...string) []*domain.Slot {
	slots := make([]*domain.Slot, 0, len(starts))
	for i, start := range starts {
		slots = append(slots, &domain.Slot{
			ID:           int64(i + 1),
			LotteryDate:  engineDate,
			StartTime:    types.TimeString(start),
			MaxOccupants: maxOccupants,
		})
	}
	return slots
}

func engineEntry(id int64, memberIDs []int64, preferred int, alternate *int, submittedAt time.Time) *domain.Entry {
	entryType := domain.EntryTypeIndividual
	if len(memberIDs) > 1 {
		entryType = domain.EntryTypeGroup
	}
	return &domain.Entry{
		ID:              id,
		Type:            entryType,
		OrganizerID:     memberIDs[0],
		LotteryDate:     engineDate,
		MemberIDs:       memberIDs,
		PreferredWindow: preferred,
		AlternateWindow: alternate,
		Status:          domain.EntryStatusProcessing,
		SubmissionTime:  submittedAt,
	}
}

func baseInput(entries []*domain.Entry, slots []*domain.Slot) engineInput {
	classes := make(map[int64]string)
	for _, e := range entries {
		for _, memberID := range e.MemberIDs {
			classes[memberID] = "full"
		}
	}
	return engineInput{
		runID:         "run-1",
		date:          engineDate,
		entries:       entries,
		slots:         slots,
		windows:       engineWindows(),
		rules:         nil,
		fairness:      map[int64]int{},
		memberClasses: classes,
	}
}

func assignedSlot(t *testing.T, result *engineResult, entryID int64) int64 {
	t.Helper()
	slotID, ok := result.assignments[entryID]
	require.True(t, ok)
	require.NotNil(t, slotID)
	return *slotID
}

func logFor(t *testing.T, result *engineResult, entryID int64) domain.AssignmentLogEntry {
	t.Helper()
	for _, logEntry := range result.logEntries {
		if logEntry.EntryID == entryID {
			return logEntry
		}
	}
	t.Fatalf("no log entry for entry %d", entryID)
	return domain.AssignmentLogEntry{}
}

func TestRunEnginePreferredMatch(t *testing.T) {
	t.Parallel()

	entries := []*domain.Entry{
		engineEntry(1, []int64{100}, 0, nil, engineDate),
	}
	result := runEngine(baseInput(entries, engineSlots(4, "07:00", "08:00", "09:00", "10:00")))

	// Самый ранний слот предпочтительного окна
	require.Equal(t, int64(1), assignedSlot(t, result, 1))
	require.Equal(t, domain.ReasonPreferredMatch, logFor(t, result, 1).Reason)
}

func TestRunEnginePriorityOrder(t *testing.T) {
	t.Parallel()

	t.Run("lower fairness wins the contested slot", func(t *testing.T) {
		t.Parallel()

		// Единственный слот окна 0 вмещает одну группу из трех
		entries := []*domain.Entry{
			engineEntry(1, []int64{100, 101, 102}, 0, nil, engineDate),
			engineEntry(2, []int64{200, 201, 202}, 0, nil, engineDate),
		}
		in := baseInput(entries, engineSlots(4, "07:00", "09:00"))
		in.fairness = map[int64]int{100: 5, 200: -3}

		result := runEngine(in)

		require.Equal(t, int64(1), assignedSlot(t, result, 2))
		require.Equal(t, int64(2), assignedSlot(t, result, 1))
		require.Equal(t, domain.ReasonPreferredMatch, logFor(t, result, 2).Reason)
		require.NotEqual(t, domain.ReasonPreferredMatch, logFor(t, result, 1).Reason)
	})

	t.Run("group fairness is the minimum among its members", func(t *testing.T) {
		t.Parallel()

		entries := []*domain.Entry{
			engineEntry(1, []int64{100}, 0, nil, engineDate),
			engineEntry(2, []int64{200, 201}, 0, nil, engineDate),
		}
		in := baseInput(entries, engineSlots(2, "07:00", "09:00"))
		// Организатор группы имеет высокий балл, но участник 201 тянет группу вперед
		in.fairness = map[int64]int{100: 0, 200: 10, 201: -5}

		result := runEngine(in)
		require.Equal(t, int64(1), assignedSlot(t, result, 2))
	})

	t.Run("equal fairness breaks by submission time then entry ID", func(t *testing.T) {
		t.Parallel()

		earlier := engineDate.Add(-time.Hour)
		entries := []*domain.Entry{
			engineEntry(3, []int64{300}, 0, nil, engineDate),
			engineEntry(2, []int64{200}, 0, nil, engineDate),
			engineEntry(1, []int64{100}, 0, nil, earlier),
		}
		in := baseInput(entries, engineSlots(1, "07:00", "08:00", "09:00"))

		result := runEngine(in)

		// Заявка 1 подана раньше, заявки 2 и 3 равны и упорядочены по ID
		require.Equal(t, int64(1), assignedSlot(t, result, 1))
		require.Equal(t, int64(2), assignedSlot(t, result, 2))
		require.Equal(t, int64(3), assignedSlot(t, result, 3))
	})
}

func TestRunEngineAlternateAndFallback(t *testing.T) {
	t.Parallel()

	t.Run("alternate window when preferred is full", func(t *testing.T) {
		t.Parallel()

		entries := []*domain.Entry{
			engineEntry(1, []int64{100, 101, 102, 103}, 0, nil, engineDate),
			engineEntry(2, []int64{200}, 0, ptr.Ptr(1), engineDate.Add(time.Minute)),
		}
		result := runEngine(baseInput(entries, engineSlots(4, "07:00", "09:00")))

		require.Equal(t, int64(1), assignedSlot(t, result, 1))
		require.Equal(t, int64(2), assignedSlot(t, result, 2))
		require.Equal(t, domain.ReasonAlternateMatch, logFor(t, result, 2).Reason)
	})

	t.Run("fallback picks the slot nearest to the preferred midpoint", func(t *testing.T) {
		t.Parallel()

		// Окно 0 занято целиком, альтернативы нет. Середина окна 0 - 08:00.
		// Из оставшихся слотов 09:00 ближе к 08:00, чем 10:00
		entries := []*domain.Entry{
			engineEntry(1, []int64{100, 101, 102, 103}, 0, nil, engineDate),
			engineEntry(2, []int64{200, 201, 202, 203}, 0, nil, engineDate.Add(time.Minute)),
			engineEntry(3, []int64{300}, 0, nil, engineDate.Add(2*time.Minute)),
		}
		slots := engineSlots(4, "07:00", "08:00", "09:00", "10:00")
		result := runEngine(baseInput(entries, slots))

		require.Equal(t, int64(3), assignedSlot(t, result, 3))
		require.Equal(t, domain.ReasonAllowedFallback, logFor(t, result, 3).Reason)
	})

	t.Run("no capacity anywhere", func(t *testing.T) {
		t.Parallel()

		entries := []*domain.Entry{
			engineEntry(1, []int64{100, 101, 102, 103}, 0, nil, engineDate),
			engineEntry(2, []int64{200}, 0, nil, engineDate.Add(time.Minute)),
		}
		result := runEngine(baseInput(entries, engineSlots(4, "07:00")))

		require.Nil(t, result.assignments[2])
		require.Equal(t, domain.ReasonNoCapacity, logFor(t, result, 2).Reason)
	})
}

func TestRunEngineRestrictions(t *testing.T) {
	t.Parallel()

	morningClosedForJuniors := domain.RestrictionRule{
		ID:               1,
		Category:         domain.RuleCategoryMemberClass,
		Name:             "juniors after nine",
		AppliesToClasses: []string{"junior"},
		WindowScope:      []int{0},
		IsActive:         true,
	}

	t.Run("restricted preferred window falls back to an open one", func(t *testing.T) {
		t.Parallel()

		entries := []*domain.Entry{
			engineEntry(1, []int64{100}, 0, nil, engineDate),
		}
		in := baseInput(entries, engineSlots(4, "07:00", "09:00"))
		in.rules = []domain.RestrictionRule{morningClosedForJuniors}
		in.memberClasses = map[int64]string{100: "junior"}

		result := runEngine(in)

		require.Equal(t, int64(2), assignedSlot(t, result, 1))
		require.Equal(t, domain.ReasonAllowedFallback, logFor(t, result, 1).Reason)
	})

	t.Run("placement into a restricted window is recorded as a violation", func(t *testing.T) {
		t.Parallel()

		// Открытое окно 1 занято, свободны только слоты закрытого окна 0
		entries := []*domain.Entry{
			engineEntry(1, []int64{200, 201, 202, 203}, 1, nil, engineDate),
			engineEntry(2, []int64{100}, 1, nil, engineDate.Add(time.Minute)),
		}
		in := baseInput(entries, engineSlots(4, "07:00", "09:00"))
		in.rules = []domain.RestrictionRule{morningClosedForJuniors}
		in.memberClasses = map[int64]string{100: "junior", 200: "full", 201: "full", 202: "full", 203: "full"}

		result := runEngine(in)

		require.Equal(t, int64(1), assignedSlot(t, result, 2))
		entryLog := logFor(t, result, 2)
		require.Equal(t, domain.ReasonRestrictionViolation, entryLog.Reason)
		require.Len(t, entryLog.ViolatedRestrictions, 1)
		require.Contains(t, entryLog.ViolatedRestrictions[0], "juniors after nine")
	})

	t.Run("guest parties bypass no-guest rules", func(t *testing.T) {
		t.Parallel()

		rule := morningClosedForJuniors
		rule.RequiresNoGuests = true

		guestEntry := engineEntry(1, []int64{100}, 0, nil, engineDate)
		guestEntry.GuestIDs = []int64{9001}

		in := baseInput([]*domain.Entry{guestEntry}, engineSlots(4, "07:00", "09:00"))
		in.rules = []domain.RestrictionRule{rule}
		in.memberClasses = map[int64]string{100: "junior"}

		result := runEngine(in)
		require.Equal(t, int64(1), assignedSlot(t, result, 1))
		require.Equal(t, domain.ReasonPreferredMatch, logFor(t, result, 1).Reason)
	})
}

func TestRunEngineCapacityInvariant(t *testing.T) {
	t.Parallel()

	// Много заявок разного размера против тесной сетки
	entries := []*domain.Entry{
		engineEntry(1, []int64{100, 101, 102}, 0, nil, engineDate),
		engineEntry(2, []int64{200, 201}, 0, ptr.Ptr(1), engineDate.Add(time.Minute)),
		engineEntry(3, []int64{300, 301, 302}, 0, nil, engineDate.Add(2*time.Minute)),
		engineEntry(4, []int64{400}, 1, nil, engineDate.Add(3*time.Minute)),
		engineEntry(5, []int64{500, 501}, 1, nil, engineDate.Add(4*time.Minute)),
	}
	slots := engineSlots(4, "07:00", "09:00")
	result := runEngine(baseInput(entries, slots))

	occupied := make(map[int64]int)
	for _, e := range entries {
		if slotID := result.assignments[e.ID]; slotID != nil {
			occupied[*slotID] += e.PartySize()
		}
	}
	for _, s := range slots {
		require.LessOrEqual(t, occupied[s.ID], s.MaxOccupants, "slot %d over capacity", s.ID)
	}
}

func TestRunEngineFairnessAndLog(t *testing.T) {
	t.Parallel()

	// Заявка 1 попадает в предпочтительное окно, заявка 2 вытесняется в другое
	entries := []*domain.Entry{
		engineEntry(1, []int64{100, 101}, 0, nil, engineDate),
		engineEntry(2, []int64{200}, 0, nil, engineDate.Add(time.Minute)),
	}
	in := baseInput(entries, engineSlots(2, "07:00", "09:00"))
	in.fairness = map[int64]int{100: 3, 101: 0, 200: 0}

	result := runEngine(in)

	require.Equal(t, int64(1), assignedSlot(t, result, 1))
	require.Equal(t, int64(2), assignedSlot(t, result, 2))

	require.Equal(t, 2, result.updatedFairness[100])
	require.Equal(t, -1, result.updatedFairness[101])
	require.Equal(t, 1, result.updatedFairness[200])

	logOne := logFor(t, result, 1)
	require.Equal(t, 0, logOne.FairnessBefore) // минимум по группе
	require.Equal(t, 2, logOne.FairnessAfter)  // балл организатора после пересчета

	logTwo := logFor(t, result, 2)
	require.Equal(t, 0, logTwo.FairnessBefore)
	require.Equal(t, 1, logTwo.FairnessAfter)
	require.Equal(t, "run-1", logTwo.RunID)
}

func TestRunEngineDeterminism(t *testing.T) {
	t.Parallel()

	build := func() engineInput {
		entries := []*domain.Entry{
			engineEntry(1, []int64{100, 101}, 0, nil, engineDate),
			engineEntry(2, []int64{200}, 1, ptr.Ptr(0), engineDate.Add(time.Minute)),
			engineEntry(3, []int64{300, 301, 302}, 0, nil, engineDate.Add(2*time.Minute)),
		}
		in := baseInput(entries, engineSlots(4, "07:00", "08:00", "09:00", "10:00"))
		in.fairness = map[int64]int{100: 1, 200: -2, 300: 0}
		return in
	}

	first := runEngine(build())
	second := runEngine(build())

	require.Equal(t, first.assignments, second.assignments)
	require.Equal(t, first.updatedFairness, second.updatedFairness)
	require.Equal(t, first.logEntries, second.logEntries)
}
