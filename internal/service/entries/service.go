package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	entryRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	"github.com/fairwaylab/GC-LotteryService/internal/service/entries/models"
)

// Service сервис для работы с заявками
type Service struct {
	entryRepo EntryRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	entryRepo EntryRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		entryRepo: entryRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID получает заявку по ID
// Пользователь видит только заявки, в которых состоит
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.EntryResponse, error) {
	s.logger.Info("GetByID: fetching entry id=%d for user=%d", id, userID)

	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, entryRepo.ErrEntryNotFound) {
			s.logger.Warn("GetByID: entry id=%d not found", id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isParticipant(entry, userID) {
		s.logger.Warn("GetByID: access denied for user=%d to entry id=%d", userID, id)
		return nil, ErrPermissionDenied
	}

	return models.FromDomainEntry(entry), nil
}

// GetDayEntries получает заявки на дату розыгрыша
// Опционально фильтрует по статусу
func (s *Service) GetDayEntries(ctx context.Context, req *models.GetDayEntriesRequest) (*models.EntryListResponse, error) {
	s.logger.Info("GetDayEntries: fetching entries for date=%s, status=%v",
		req.Date.Format(domain.DateFormat), req.Status)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	filter := domain.EntriesFilter{
		LotteryDate:      &req.Date,
		IncludeCancelled: req.IncludeCancelled,
	}
	if req.Status != nil {
		status, err := models.ToDomainEntryStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetDayEntries: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	entries, err := s.entryRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetDayEntries: repository error for date=%s: %v",
			req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetDayEntries - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntries(entries), nil
}

// GetMemberEntries получает заявки, в которых состоит член клуба
func (s *Service) GetMemberEntries(ctx context.Context, req *models.GetMemberEntriesRequest) (*models.EntryListResponse, error) {
	s.logger.Info("GetMemberEntries: fetching entries for member=%d, status=%v", req.MemberID, req.Status)

	if req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	filter := domain.EntriesFilter{
		MemberID:         &req.MemberID,
		IncludeCancelled: req.IncludeCancelled,
	}
	if req.Status != nil {
		status, err := models.ToDomainEntryStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetMemberEntries: invalid status=%s for member=%d", *req.Status, req.MemberID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	entries, err := s.entryRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMemberEntries: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberEntries - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntries(entries), nil
}

// Cancel отменяет заявку
// Отменить может только организатор, и только пока заявка в статусе pending
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Cancel: cancelling entry id=%d by user=%d", id, userID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		entry, err := s.entryRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, entryRepo.ErrEntryNotFound) {
				s.logger.Warn("Cancel: entry id=%d not found", id)
				return ErrEntryNotFound
			}
			s.logger.Error("Cancel: repository error for entry id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if entry.OrganizerID != userID {
			s.logger.Warn("Cancel: user=%d is not organizer of entry id=%d", userID, id)
			return ErrPermissionDenied
		}

		if !entry.CanBeCancelled() {
			s.logger.Warn("Cancel: entry id=%d in status %s cannot be cancelled", id, entry.Status)
			return fmt.Errorf("%w: entry in status %s", ErrCannotCancel, entry.Status)
		}

		if err := s.entryRepo.Cancel(txCtx, id); err != nil {
			if errors.Is(err, entryRepo.ErrCannotCancel) {
				return fmt.Errorf("%w: entry in status %s", ErrCannotCancel, entry.Status)
			}
			s.logger.Error("Cancel: failed to cancel entry id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: entry id=%d cancelled", id)
		return nil
	})
}

// isParticipant проверяет, состоит ли пользователь в заявке
func isParticipant(e *domain.Entry, userID int64) bool {
	for _, id := range e.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
