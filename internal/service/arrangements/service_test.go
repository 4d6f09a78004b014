package arrangements

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	entryRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

var testDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

// fakeStore in-memory хранилище заявок и слотов, применяющее назначения к себе
type fakeStore struct {
	slots   []*domain.Slot
	entries map[int64]*domain.Entry
}

func (f *fakeStore) GetWithFilter(_ context.Context, _ domain.EntriesFilter) ([]*domain.Entry, error) {
	result := make([]*domain.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeStore) ApplyAssignments(_ context.Context, updates []entryRepo.AssignmentUpdate) error {
	for _, u := range updates {
		e := f.entries[u.EntryID]
		e.AssignedSlotID = u.SlotID
		e.Status = u.Status
	}
	return nil
}

func (f *fakeStore) GetByDate(_ context.Context, _ time.Time) ([]*domain.Slot, error) {
	return f.slots, nil
}

// occupancy суммарный размер заявок, закоммиченных в слот
func (f *fakeStore) occupancy(slotID int64) int {
	total := 0
	for _, e := range f.entries {
		if e.IsActive() && e.AssignedSlotID != nil && *e.AssignedSlotID == slotID {
			total += e.PartySize()
		}
	}
	return total
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func storeEntry(id int64, partySize int, slotID *int64) *domain.Entry {
	members := make([]int64, 0, partySize)
	for i := 0; i < partySize; i++ {
		members = append(members, id*100+int64(i))
	}
	entryType := domain.EntryTypeIndividual
	if partySize > 1 {
		entryType = domain.EntryTypeGroup
	}
	status := domain.EntryStatusPending
	if slotID != nil {
		status = domain.EntryStatusAssigned
	}
	return &domain.Entry{
		ID:             id,
		Type:           entryType,
		OrganizerID:    id * 100,
		LotteryDate:    testDate,
		MemberIDs:      members,
		Status:         status,
		AssignedSlotID: slotID,
	}
}

func newFixture(entries ...*domain.Entry) (*Service, *fakeStore) {
	store := &fakeStore{
		slots: []*domain.Slot{
			{ID: 1, LotteryDate: testDate, StartTime: types.TimeString("07:00"), MaxOccupants: 4},
			{ID: 2, LotteryDate: testDate, StartTime: types.TimeString("07:10"), MaxOccupants: 4},
		},
		entries: make(map[int64]*domain.Entry),
	}
	for _, e := range entries {
		store.entries[e.ID] = e
	}
	return NewService(store, store, fakeTxManager{}, nopLogger{}), store
}

func TestServiceMoveAndCommit(t *testing.T) {
	t.Parallel()

	ref := int64(1)
	svc, store := newFixture(
		storeEntry(10, 2, &ref),
		storeEntry(11, 1, nil),
	)

	_, err := svc.MoveEntry(context.Background(), testDate, &models.MoveEntryRequest{
		EntryID:      11,
		TargetSlotID: &ref,
	})
	require.NoError(t, err)

	resp, err := svc.Commit(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, resp.Applied, 1)

	require.NotNil(t, store.entries[11].AssignedSlotID)
	require.Equal(t, int64(1), *store.entries[11].AssignedSlotID)
	require.Equal(t, domain.EntryStatusAssigned, store.entries[11].Status)

	// Сессия закрыта: повторный коммит без изменений отклоняется
	_, err = svc.Commit(context.Background(), testDate)
	require.ErrorIs(t, err, ErrNoChanges)
}

func TestServiceCommitWithoutSession(t *testing.T) {
	t.Parallel()

	svc, _ := newFixture(storeEntry(10, 1, nil))
	_, err := svc.Commit(context.Background(), testDate)
	require.ErrorIs(t, err, ErrNoChanges)
}

func TestServiceInvalidateDropsStaleSession(t *testing.T) {
	t.Parallel()

	// Сессия открывается до розыгрыша: обе заявки по 4 человека не распределены
	svc, store := newFixture(
		storeEntry(10, 4, nil),
		storeEntry(20, 4, nil),
	)

	_, err := svc.GetArrangement(context.Background(), testDate)
	require.NoError(t, err)

	// Розыгрыш занимает слот 1 заявкой 20 за спиной у сессии
	slotOne := int64(1)
	require.NoError(t, store.ApplyAssignments(context.Background(), []entryRepo.AssignmentUpdate{
		{EntryID: 20, SlotID: &slotOne, Status: domain.EntryStatusAssigned},
	}))

	svc.Invalidate(testDate)

	// Перестроенная сессия видит заполненный слот и отклоняет перемещение
	_, err = svc.MoveEntry(context.Background(), testDate, &models.MoveEntryRequest{
		EntryID:      10,
		TargetSlotID: &slotOne,
	})
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// В слоте по-прежнему не больше его емкости
	require.LessOrEqual(t, store.occupancy(1), 4)

	_, err = svc.Commit(context.Background(), testDate)
	require.ErrorIs(t, err, ErrNoChanges)
}

func TestServiceInvalidateWithoutSession(t *testing.T) {
	t.Parallel()

	svc, _ := newFixture(storeEntry(10, 1, nil))
	svc.Invalidate(testDate)

	_, err := svc.GetArrangement(context.Background(), testDate)
	require.NoError(t, err)
}

func TestServiceResetDiscardsPendingChanges(t *testing.T) {
	t.Parallel()

	ref := int64(2)
	svc, _ := newFixture(storeEntry(10, 1, nil))

	_, err := svc.MoveEntry(context.Background(), testDate, &models.MoveEntryRequest{
		EntryID:      10,
		TargetSlotID: &ref,
	})
	require.NoError(t, err)

	_, err = svc.Reset(context.Background(), testDate)
	require.NoError(t, err)

	_, err = svc.Commit(context.Background(), testDate)
	require.ErrorIs(t, err, ErrNoChanges)
}
