package arrangements

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/arrangement"
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	entryRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
)

// Service сервис ручной корректировки расстановки по слотам.
//
// Для каждой даты держит одну in-memory сессию редактирования поверх
// зафиксированного состояния дня. Изменения накапливаются в модели
// и применяются к хранилищу одним коммитом
type Service struct {
	entryRepo EntryRepository
	slotRepo  SlotRepository
	txManager TransactionManager
	logger    Logger

	mu       sync.Mutex
	sessions map[string]*arrangement.Model // ключ - дата YYYY-MM-DD
}

// NewService создает новый экземпляр сервиса расстановок
func NewService(
	entryRepo EntryRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		entryRepo: entryRepo,
		slotRepo:  slotRepo,
		txManager: txManager,
		logger:    logger,
		sessions:  make(map[string]*arrangement.Model),
	}
}

// GetArrangement возвращает текущую расстановку на дату
// Если сессия редактирования еще не открыта, открывает ее
func (s *Service) GetArrangement(ctx context.Context, date time.Time) (*models.ArrangementResponse, error) {
	s.logger.Info("GetArrangement: date=%s", date.Format(domain.DateFormat))

	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.sessionLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	return models.FromModel(date.Format(domain.DateFormat), model), nil
}

// MoveEntry перемещает заявку в другой слот или в пул нераспределенных
func (s *Service) MoveEntry(ctx context.Context, date time.Time, req *models.MoveEntryRequest) (*models.ArrangementResponse, error) {
	s.logger.Info("MoveEntry: date=%s, entry=%d, target=%v",
		date.Format(domain.DateFormat), req.EntryID, req.TargetSlotID)

	if req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.sessionLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := model.MoveEntry(req.EntryID, req.TargetSlotID); err != nil {
		s.logger.Warn("MoveEntry: rejected for entry=%d: %v", req.EntryID, err)
		return nil, mapModelError(err)
	}

	return models.FromModel(date.Format(domain.DateFormat), model), nil
}

// SwapEntries меняет местами две заявки
func (s *Service) SwapEntries(ctx context.Context, date time.Time, req *models.SwapEntriesRequest) (*models.ArrangementResponse, error) {
	s.logger.Info("SwapEntries: date=%s, a=%d, b=%d",
		date.Format(domain.DateFormat), req.EntryIDA, req.EntryIDB)

	if req.EntryIDA <= 0 || req.EntryIDB <= 0 {
		return nil, fmt.Errorf("%w: entry IDs must be positive", ErrInvalidInput)
	}
	if req.EntryIDA == req.EntryIDB {
		return nil, fmt.Errorf("%w: entry IDs must differ", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.sessionLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := model.SwapEntries(req.EntryIDA, req.EntryIDB); err != nil {
		s.logger.Warn("SwapEntries: rejected for entries %d, %d: %v", req.EntryIDA, req.EntryIDB, err)
		return nil, mapModelError(err)
	}

	return models.FromModel(date.Format(domain.DateFormat), model), nil
}

// SwapSlotContents обменивает содержимое двух слотов целиком
func (s *Service) SwapSlotContents(ctx context.Context, date time.Time, req *models.SwapSlotContentsRequest) (*models.ArrangementResponse, error) {
	s.logger.Info("SwapSlotContents: date=%s, a=%d, b=%d",
		date.Format(domain.DateFormat), req.SlotIDA, req.SlotIDB)

	if req.SlotIDA <= 0 || req.SlotIDB <= 0 {
		return nil, fmt.Errorf("%w: slot IDs must be positive", ErrInvalidInput)
	}
	if req.SlotIDA == req.SlotIDB {
		return nil, fmt.Errorf("%w: slot IDs must differ", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.sessionLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := model.SwapSlotContents(req.SlotIDA, req.SlotIDB); err != nil {
		s.logger.Warn("SwapSlotContents: rejected for slots %d, %d: %v", req.SlotIDA, req.SlotIDB, err)
		return nil, mapModelError(err)
	}

	return models.FromModel(date.Format(domain.DateFormat), model), nil
}

// Reset откатывает все несохраненные изменения сессии к исходному состоянию
func (s *Service) Reset(ctx context.Context, date time.Time) (*models.ArrangementResponse, error) {
	s.logger.Info("Reset: date=%s", date.Format(domain.DateFormat))

	s.mu.Lock()
	defer s.mu.Unlock()

	model, err := s.sessionLocked(ctx, date)
	if err != nil {
		return nil, err
	}

	model.Reset()
	return models.FromModel(date.Format(domain.DateFormat), model), nil
}

// Invalidate закрывает сессию редактирования даты, отбрасывая несохраненные
// изменения. Вызывается после розыгрыша или сброса даты: снимок сессии больше
// не соответствует хранилищу, и коммит поверх него нарушил бы емкость слотов.
// Следующее чтение построит модель заново из актуального состояния
func (s *Service) Invalidate(date time.Time) {
	dateStr := date.Format(domain.DateFormat)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[dateStr]; !ok {
		return
	}
	delete(s.sessions, dateStr)
	s.logger.Info("Invalidate: dropped arrangement session for date=%s", dateStr)
}

// Commit применяет накопленные изменения расстановки к хранилищу одним
// батчем и закрывает сессию редактирования
func (s *Service) Commit(ctx context.Context, date time.Time) (*models.CommitResponse, error) {
	dateStr := date.Format(domain.DateFormat)
	s.logger.Info("Commit: date=%s", dateStr)

	s.mu.Lock()
	defer s.mu.Unlock()

	model, ok := s.sessions[dateStr]
	if !ok {
		return nil, ErrNoChanges
	}

	changes := model.Diff()
	if len(changes) == 0 {
		return nil, ErrNoChanges
	}

	updates := make([]entryRepo.AssignmentUpdate, 0, len(changes))
	for _, c := range changes {
		status := domain.EntryStatusAssigned
		if c.NewSlotID == nil {
			status = domain.EntryStatusPending
		}
		updates = append(updates, entryRepo.AssignmentUpdate{
			EntryID: c.EntryID,
			SlotID:  c.NewSlotID,
			Status:  status,
		})
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.entryRepo.ApplyAssignments(txCtx, updates); err != nil {
			s.logger.Error("Commit: failed to apply assignments: %v", err)
			return fmt.Errorf("%w: Commit - failed to apply assignments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сессия закрывается: следующее чтение построит модель заново из хранилища
	delete(s.sessions, dateStr)

	s.logger.Info("Commit: applied %d changes for date=%s", len(changes), dateStr)
	return models.FromPendingChanges(dateStr, changes), nil
}

// sessionLocked возвращает открытую сессию для даты или строит новую
// из текущего состояния хранилища. Вызывается под s.mu
func (s *Service) sessionLocked(ctx context.Context, date time.Time) (*arrangement.Model, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateStr := date.Format(domain.DateFormat)
	if model, ok := s.sessions[dateStr]; ok {
		return model, nil
	}

	slots, err := s.slotRepo.GetByDate(ctx, date)
	if err != nil {
		s.logger.Error("sessionLocked: failed to get slots for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}
	if len(slots) == 0 {
		s.logger.Warn("sessionLocked: no slots for date=%s", dateStr)
		return nil, ErrNoSlotsForDate
	}

	entries, err := s.entryRepo.GetWithFilter(ctx, domain.EntriesFilter{LotteryDate: &date})
	if err != nil {
		s.logger.Error("sessionLocked: failed to get entries for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to get entries: %v", ErrInternal, err)
	}

	slotValues := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		slotValues = append(slotValues, *slot)
	}

	model, err := arrangement.NewModel(slotValues, entries)
	if err != nil {
		s.logger.Error("sessionLocked: failed to build model for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: failed to build arrangement: %v", ErrInternal, err)
	}

	s.sessions[dateStr] = model
	return model, nil
}

// mapModelError конвертирует ошибки in-memory модели в ошибки сервиса
func mapModelError(err error) error {
	switch {
	case errors.Is(err, arrangement.ErrEntryNotFound):
		return fmt.Errorf("%w: %v", ErrEntryNotFound, err)
	case errors.Is(err, arrangement.ErrSlotNotFound):
		return fmt.Errorf("%w: %v", ErrSlotNotFound, err)
	case errors.Is(err, arrangement.ErrCapacityExceeded):
		return fmt.Errorf("%w: %v", ErrCapacityExceeded, err)
	case errors.Is(err, arrangement.ErrSameSlot):
		return fmt.Errorf("%w: %v", ErrSameSlot, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
