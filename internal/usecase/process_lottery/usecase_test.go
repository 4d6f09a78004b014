package process_lottery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	entryStorage "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	configStorage "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	"github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

var ucDate = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

// fakeEntryRepo отдает подготовленные списки заявок по очереди вызовов,
// последний список повторяется. Позволяет различать предварительное
// и транзакционное чтение
type fakeEntryRepo struct {
	reads   [][]*domain.Entry
	call    int
	applied []entryStorage.AssignmentUpdate
}

func (f *fakeEntryRepo) GetWithFilter(_ context.Context, _ domain.EntriesFilter) ([]*domain.Entry, error) {
	idx := f.call
	if idx >= len(f.reads) {
		idx = len(f.reads) - 1
	}
	f.call++
	return f.reads[idx], nil
}

func (f *fakeEntryRepo) ApplyAssignments(_ context.Context, updates []entryStorage.AssignmentUpdate) error {
	f.applied = append(f.applied, updates...)
	return nil
}

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (f *fakeSlotRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.Slot, error) {
	return f.slots, nil
}

type fakeRuleRepo struct {
	rules []domain.RestrictionRule
}

func (f *fakeRuleRepo) GetActiveRules(_ context.Context) ([]domain.RestrictionRule, error) {
	return f.rules, nil
}

type fakeFairnessRepo struct {
	scores   map[int64]int
	upserted map[int64]int
}

func (f *fakeFairnessRepo) GetScores(_ context.Context, _ []int64) (map[int64]int, error) {
	return f.scores, nil
}

func (f *fakeFairnessRepo) UpsertScores(_ context.Context, scores map[int64]int) error {
	f.upserted = scores
	return nil
}

type fakeConfigRepo struct {
	cfg *domain.DayConfig
	err error
}

func (f *fakeConfigRepo) Get(_ context.Context) (*domain.DayConfig, error) {
	return f.cfg, f.err
}

type fakeLogRepo struct {
	stored []domain.AssignmentLogEntry
}

func (f *fakeLogRepo) CreateBatch(_ context.Context, logEntries []domain.AssignmentLogEntry) error {
	f.stored = append(f.stored, logEntries...)
	return nil
}

type fakeMemberClient struct {
	members map[int64]*memberservice.Member
	calls   [][]int64
}

func (f *fakeMemberClient) GetMembers(_ context.Context, memberIDs []int64) (map[int64]*memberservice.Member, error) {
	f.calls = append(f.calls, memberIDs)
	result := make(map[int64]*memberservice.Member)
	for _, id := range memberIDs {
		if m, ok := f.members[id]; ok {
			result[id] = m
		}
	}
	return result, nil
}

type fakeSessions struct {
	invalidated []time.Time
}

func (f *fakeSessions) Invalidate(date time.Time) {
	f.invalidated = append(f.invalidated, date)
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLog struct{}

func (nopLog) Info(string, ...interface{})  {}
func (nopLog) Warn(string, ...interface{})  {}
func (nopLog) Error(string, ...interface{}) {}

type lotteryFixture struct {
	entries  *fakeEntryRepo
	slots    *fakeSlotRepo
	rules    *fakeRuleRepo
	fairness *fakeFairnessRepo
	config   *fakeConfigRepo
	logRepo  *fakeLogRepo
	members  *fakeMemberClient
	sessions *fakeSessions
}

func newLotteryFixture(entries ...*domain.Entry) *lotteryFixture {
	return &lotteryFixture{
		entries: &fakeEntryRepo{reads: [][]*domain.Entry{entries}},
		slots: &fakeSlotRepo{slots: []*domain.Slot{
			{ID: 1, LotteryDate: ucDate, StartTime: types.TimeString("07:00"), MaxOccupants: 4},
			{ID: 2, LotteryDate: ucDate, StartTime: types.TimeString("09:00"), MaxOccupants: 4},
		}},
		rules:    &fakeRuleRepo{},
		fairness: &fakeFairnessRepo{scores: map[int64]int{}},
		config: &fakeConfigRepo{cfg: &domain.DayConfig{
			OpenTime:              types.TimeString("07:00"),
			CloseTime:             types.TimeString("11:00"),
			SlotIntervalMinutes:   60,
			MaxOccupantsPerSlot:   4,
			WindowDurationMinutes: 120,
		}},
		logRepo:  &fakeLogRepo{},
		members:  &fakeMemberClient{members: map[int64]*memberservice.Member{}},
		sessions: &fakeSessions{},
	}
}

func (f *lotteryFixture) useCase() *UseCase {
	return NewUseCase(
		f.entries, f.slots, f.rules, f.fairness, f.config, f.logRepo,
		f.members, fakeTx{}, f.sessions, nopLog{},
	)
}

func (f *lotteryFixture) addMember(id int64, class string) {
	f.members.members[id] = &memberservice.Member{ID: id, Class: class}
}

func ucEntry(id int64, memberIDs []int64, preferred int) *domain.Entry {
	entryType := domain.EntryTypeIndividual
	if len(memberIDs) > 1 {
		entryType = domain.EntryTypeGroup
	}
	return &domain.Entry{
		ID:              id,
		Type:            entryType,
		OrganizerID:     memberIDs[0],
		LotteryDate:     ucDate,
		MemberIDs:       memberIDs,
		PreferredWindow: preferred,
		Status:          domain.EntryStatusPending,
		SubmissionTime:  ucDate.Add(time.Duration(id) * time.Minute),
	}
}

func TestExecuteRejectsSecondRun(t *testing.T) {
	t.Parallel()

	processed := ucEntry(1, []int64{100}, 0)
	processed.Status = domain.EntryStatusAssigned
	slotOne := int64(1)
	processed.AssignedSlotID = &slotOne

	fx := newLotteryFixture(processed, ucEntry(2, []int64{200}, 0))
	fx.addMember(100, "full")
	fx.addMember(200, "full")

	_, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1, Date: ucDate})
	require.ErrorIs(t, err, ErrAlreadyProcessed)

	require.Empty(t, fx.entries.applied)
	require.Empty(t, fx.logRepo.stored)
	require.Empty(t, fx.sessions.invalidated)
}

func TestExecuteFailFast(t *testing.T) {
	t.Parallel()

	t.Run("zero date", func(t *testing.T) {
		t.Parallel()

		fx := newLotteryFixture()
		_, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing day config", func(t *testing.T) {
		t.Parallel()

		fx := newLotteryFixture()
		fx.config.cfg = nil
		fx.config.err = configStorage.ErrConfigNotFound

		_, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1, Date: ucDate})
		require.ErrorIs(t, err, ErrConfigurationInvalid)
	})

	t.Run("config producing no windows", func(t *testing.T) {
		t.Parallel()

		fx := newLotteryFixture()
		fx.config.cfg.OpenTime = types.TimeString("11:00")
		fx.config.cfg.CloseTime = types.TimeString("07:00")

		_, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1, Date: ucDate})
		require.ErrorIs(t, err, ErrConfigurationInvalid)
	})

	t.Run("no slots for date", func(t *testing.T) {
		t.Parallel()

		fx := newLotteryFixture(ucEntry(1, []int64{100}, 0))
		fx.addMember(100, "full")
		fx.slots.slots = nil

		_, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1, Date: ucDate})
		require.ErrorIs(t, err, ErrNoSlotsForDate)
		require.Empty(t, fx.entries.applied)
	})
}

func TestExecuteAssignsAndKeepsUnplacedPending(t *testing.T) {
	t.Parallel()

	// Две группы по четыре претендуют на оба слота, третьей заявке места нет
	fx := newLotteryFixture(
		ucEntry(1, []int64{100, 101, 102, 103}, 0),
		ucEntry(2, []int64{200, 201, 202, 203}, 0),
		ucEntry(3, []int64{300}, 0),
	)
	for _, id := range []int64{100, 101, 102, 103, 200, 201, 202, 203, 300} {
		fx.addMember(id, "full")
	}

	resp, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1, Date: ucDate})
	require.NoError(t, err)

	require.Equal(t, 2, resp.AssignedCount)
	require.Equal(t, 1, resp.UnassignedCount)
	require.Nil(t, resp.Assignments[3])

	// Неразмещенная заявка не попадает в обновления и остается pending
	require.Len(t, fx.entries.applied, 2)
	for _, u := range fx.entries.applied {
		require.NotEqual(t, int64(3), u.EntryID)
		require.Equal(t, domain.EntryStatusAssigned, u.Status)
		require.NotNil(t, u.SlotID)
	}

	// Журнал пишется по всем заявкам, баллы сохранены, сессия расстановки закрыта
	require.Len(t, fx.logRepo.stored, 3)
	require.NotEmpty(t, fx.fairness.upserted)
	require.Equal(t, []time.Time{ucDate}, fx.sessions.invalidated)
}

func TestExecuteFetchesProfilesForLateEntries(t *testing.T) {
	t.Parallel()

	early := ucEntry(1, []int64{100}, 0)
	late := ucEntry(2, []int64{200}, 0)

	// Заявка 2 появляется между предварительным и транзакционным чтением
	fx := newLotteryFixture()
	fx.entries.reads = [][]*domain.Entry{
		{early},
		{early, late},
	}
	fx.addMember(100, "full")
	fx.addMember(200, "junior")
	fx.rules.rules = []domain.RestrictionRule{{
		ID:               1,
		Category:         domain.RuleCategoryMemberClass,
		Name:             "юниоры только после девяти",
		AppliesToClasses: []string{"junior"},
		WindowScope:      []int{0},
		IsActive:         true,
	}}

	resp, err := fx.useCase().Execute(context.Background(), &Request{OperatorID: 1, Date: ucDate})
	require.NoError(t, err)

	// Недостающий профиль дочитан внутри транзакции
	require.Len(t, fx.members.calls, 2)
	require.Equal(t, []int64{200}, fx.members.calls[1])

	// Класс поздней заявки учтен: закрытое окно 0 обойдено через fallback
	require.Equal(t, 2, resp.AssignedCount)
	require.NotNil(t, resp.Assignments[2])
	require.Equal(t, int64(2), *resp.Assignments[2])

	for _, logEntry := range resp.Log {
		if logEntry.EntryID == 2 {
			require.Equal(t, domain.ReasonAllowedFallback, logEntry.Reason)
		}
	}
}
