package arrangement

import (
	"fmt"
	"sort"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

// Occupant заявка в составе слота или пула нераспределенных
type Occupant struct {
	EntryID   int64
	IsGroup   bool
	PartySize int
}

// SlotView снимок одного слота с его текущими занимающими
type SlotView struct {
	SlotID       int64
	StartTime    types.TimeString
	MaxOccupants int
	Occupants    []Occupant
}

// OccupiedSpots суммарный размер всех заявок в слоте
func (v *SlotView) OccupiedSpots() int {
	total := 0
	for _, o := range v.Occupants {
		total += o.PartySize
	}
	return total
}

// PendingChange отложенное изменение расстановки одной заявки
// NewSlotID == nil означает перенос в пул нераспределенных
type PendingChange struct {
	EntryID   int64
	IsGroup   bool
	NewSlotID *int64
}

// Model редактируемая in-memory проекция расстановки по слотам.
//
// Модель рассчитана на одного редактора: все операции синхронны, проверяют
// емкость до применения и при ошибке оставляют состояние нетронутым.
// Изменения накапливаются как diff относительно исходного снимка и
// применяются к хранилищу одним батчем.
type Model struct {
	slotOrder []int64
	slots     map[int64]*slotState
	entries   map[int64]*entryState

	// original исходное размещение entry -> slot (nil = пул)
	original map[int64]*int64
}

type slotState struct {
	slot      domain.Slot
	occupants []int64 // entry IDs в порядке добавления
}

type entryState struct {
	occupant Occupant
	slotID   *int64 // nil = пул нераспределенных
}

// NewModel строит модель из зафиксированного состояния дня:
// слоты с назначенными заявками плюс пул нераспределенных активных заявок
func NewModel(slots []domain.Slot, entries []*domain.Entry) (*Model, error) {
	m := &Model{
		slotOrder: make([]int64, 0, len(slots)),
		slots:     make(map[int64]*slotState, len(slots)),
		entries:   make(map[int64]*entryState),
		original:  make(map[int64]*int64),
	}

	for _, s := range slots {
		m.slotOrder = append(m.slotOrder, s.ID)
		m.slots[s.ID] = &slotState{slot: s}
	}

	for _, e := range entries {
		if !e.IsActive() {
			continue
		}

		state := &entryState{
			occupant: Occupant{
				EntryID:   e.ID,
				IsGroup:   e.IsGroup(),
				PartySize: e.PartySize(),
			},
		}

		if e.AssignedSlotID != nil {
			slot, ok := m.slots[*e.AssignedSlotID]
			if !ok {
				return nil, fmt.Errorf("%w: entry %d references slot %d", ErrSlotNotFound, e.ID, *e.AssignedSlotID)
			}
			slotID := *e.AssignedSlotID
			state.slotID = &slotID
			slot.occupants = append(slot.occupants, e.ID)
		}

		m.entries[e.ID] = state
		m.original[e.ID] = copySlotID(state.slotID)
	}

	return m, nil
}

// MoveEntry перемещает заявку в указанный слот (nil = пул нераспределенных).
// Возвращает ErrCapacityExceeded, если заявка не помещается в целевой слот
func (m *Model) MoveEntry(entryID int64, targetSlotID *int64) error {
	entry, ok := m.entries[entryID]
	if !ok {
		return fmt.Errorf("%w: entry %d", ErrEntryNotFound, entryID)
	}

	if targetSlotID != nil {
		target, ok := m.slots[*targetSlotID]
		if !ok {
			return fmt.Errorf("%w: slot %d", ErrSlotNotFound, *targetSlotID)
		}

		// Занятость цели без самой перемещаемой заявки
		occupied := m.occupiedSpots(*targetSlotID, entryID)
		if occupied+entry.occupant.PartySize > target.slot.MaxOccupants {
			return fmt.Errorf("%w: slot %d holds %d of %d, party of %d does not fit",
				ErrCapacityExceeded, *targetSlotID, occupied, target.slot.MaxOccupants, entry.occupant.PartySize)
		}
	}

	m.detach(entryID)
	m.attach(entryID, targetSlotID)
	return nil
}

// SwapEntries меняет местами размещение двух заявок.
// Емкость проверяется для состояния ПОСЛЕ гипотетического обмена;
// при ошибке ни одна из заявок не перемещается
func (m *Model) SwapEntries(entryIDA, entryIDB int64) error {
	a, ok := m.entries[entryIDA]
	if !ok {
		return fmt.Errorf("%w: entry %d", ErrEntryNotFound, entryIDA)
	}
	b, ok := m.entries[entryIDB]
	if !ok {
		return fmt.Errorf("%w: entry %d", ErrEntryNotFound, entryIDB)
	}

	slotA := copySlotID(a.slotID)
	slotB := copySlotID(b.slotID)

	// Проверяем каждую сторону: занятость без обеих заявок + размер приходящей
	if err := m.checkSwapSide(slotA, entryIDA, entryIDB, b.occupant.PartySize); err != nil {
		return err
	}
	if err := m.checkSwapSide(slotB, entryIDA, entryIDB, a.occupant.PartySize); err != nil {
		return err
	}

	m.detach(entryIDA)
	m.detach(entryIDB)
	m.attach(entryIDA, slotB)
	m.attach(entryIDB, slotA)
	return nil
}

// SwapSlotContents обменивает полное содержимое двух слотов одной операцией.
// Если суммарные размеры не помещаются в емкость другой стороны,
// состояние остается нетронутым
func (m *Model) SwapSlotContents(slotIDA, slotIDB int64) error {
	if slotIDA == slotIDB {
		return ErrSameSlot
	}

	a, ok := m.slots[slotIDA]
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrSlotNotFound, slotIDA)
	}
	b, ok := m.slots[slotIDB]
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrSlotNotFound, slotIDB)
	}

	sizeA := m.occupiedSpots(slotIDA, 0)
	sizeB := m.occupiedSpots(slotIDB, 0)

	if sizeA > b.slot.MaxOccupants {
		return fmt.Errorf("%w: contents of slot %d (%d spots) do not fit into slot %d (capacity %d)",
			ErrCapacityExceeded, slotIDA, sizeA, slotIDB, b.slot.MaxOccupants)
	}
	if sizeB > a.slot.MaxOccupants {
		return fmt.Errorf("%w: contents of slot %d (%d spots) do not fit into slot %d (capacity %d)",
			ErrCapacityExceeded, slotIDB, sizeB, slotIDA, a.slot.MaxOccupants)
	}

	occupantsA := append([]int64(nil), a.occupants...)
	occupantsB := append([]int64(nil), b.occupants...)

	for _, entryID := range occupantsA {
		m.detach(entryID)
	}
	for _, entryID := range occupantsB {
		m.detach(entryID)
	}
	for _, entryID := range occupantsA {
		m.attach(entryID, &slotIDB)
	}
	for _, entryID := range occupantsB {
		m.attach(entryID, &slotIDA)
	}
	return nil
}

// Diff возвращает отложенные изменения относительно исходного снимка.
// Заявки, вернувшиеся на исходное место, в diff не попадают.
// Результат отсортирован по ID заявки для детерминированного батч-коммита
func (m *Model) Diff() []PendingChange {
	changes := make([]PendingChange, 0)
	for entryID, entry := range m.entries {
		if sameSlotID(entry.slotID, m.original[entryID]) {
			continue
		}
		changes = append(changes, PendingChange{
			EntryID:   entryID,
			IsGroup:   entry.occupant.IsGroup,
			NewSlotID: copySlotID(entry.slotID),
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].EntryID < changes[j].EntryID
	})
	return changes
}

// HasChanges проверяет, есть ли несохраненные изменения
func (m *Model) HasChanges() bool {
	for entryID, entry := range m.entries {
		if !sameSlotID(entry.slotID, m.original[entryID]) {
			return true
		}
	}
	return false
}

// Reset отбрасывает все отложенные изменения, восстанавливая исходный снимок
func (m *Model) Reset() {
	for _, slot := range m.slots {
		slot.occupants = slot.occupants[:0]
	}
	for entryID, entry := range m.entries {
		entry.slotID = copySlotID(m.original[entryID])
		if entry.slotID != nil {
			slot := m.slots[*entry.slotID]
			slot.occupants = append(slot.occupants, entryID)
		}
	}
}

// Slots возвращает снимок всех слотов с занимающими, в порядке создания слотов
func (m *Model) Slots() []SlotView {
	views := make([]SlotView, 0, len(m.slotOrder))
	for _, slotID := range m.slotOrder {
		state := m.slots[slotID]
		view := SlotView{
			SlotID:       slotID,
			StartTime:    state.slot.StartTime,
			MaxOccupants: state.slot.MaxOccupants,
			Occupants:    make([]Occupant, 0, len(state.occupants)),
		}
		for _, entryID := range state.occupants {
			view.Occupants = append(view.Occupants, m.entries[entryID].occupant)
		}
		views = append(views, view)
	}
	return views
}

// Unassigned возвращает пул нераспределенных заявок, отсортированный по ID
func (m *Model) Unassigned() []Occupant {
	pool := make([]Occupant, 0)
	for _, entry := range m.entries {
		if entry.slotID == nil {
			pool = append(pool, entry.occupant)
		}
	}
	sort.Slice(pool, func(i, j int) bool {
		return pool[i].EntryID < pool[j].EntryID
	})
	return pool
}

// occupiedSpots суммарный размер заявок в слоте, не считая excludeEntryID
func (m *Model) occupiedSpots(slotID int64, excludeEntryID int64) int {
	state := m.slots[slotID]
	total := 0
	for _, entryID := range state.occupants {
		if entryID == excludeEntryID {
			continue
		}
		total += m.entries[entryID].occupant.PartySize
	}
	return total
}

// checkSwapSide проверяет емкость одной стороны обмена:
// занятость слота без обеих участвующих заявок плюс размер приходящей
func (m *Model) checkSwapSide(slotID *int64, entryIDA, entryIDB int64, incomingSize int) error {
	if slotID == nil {
		return nil
	}
	state := m.slots[*slotID]

	occupied := 0
	for _, entryID := range state.occupants {
		if entryID == entryIDA || entryID == entryIDB {
			continue
		}
		occupied += m.entries[entryID].occupant.PartySize
	}

	if occupied+incomingSize > state.slot.MaxOccupants {
		return fmt.Errorf("%w: slot %d would hold %d of %d after swap",
			ErrCapacityExceeded, *slotID, occupied+incomingSize, state.slot.MaxOccupants)
	}
	return nil
}

func (m *Model) detach(entryID int64) {
	entry := m.entries[entryID]
	if entry.slotID == nil {
		return
	}
	slot := m.slots[*entry.slotID]
	for i, id := range slot.occupants {
		if id == entryID {
			slot.occupants = append(slot.occupants[:i], slot.occupants[i+1:]...)
			break
		}
	}
	entry.slotID = nil
}

func (m *Model) attach(entryID int64, slotID *int64) {
	entry := m.entries[entryID]
	entry.slotID = copySlotID(slotID)
	if slotID != nil {
		slot := m.slots[*slotID]
		slot.occupants = append(slot.occupants, entryID)
	}
}

func copySlotID(slotID *int64) *int64 {
	if slotID == nil {
		return nil
	}
	id := *slotID
	return &id
}

func sameSlotID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
