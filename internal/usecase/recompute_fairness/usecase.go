package recompute_fairness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	configRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	"github.com/fairwaylab/GC-LotteryService/pkg/ptr"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("recompute_fairness: invalid input data")

	// ErrConfigurationInvalid возвращается при отсутствующей конфигурации дня
	ErrConfigurationInvalid = errors.New("recompute_fairness: invalid day configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("recompute_fairness: internal error")
)

// Request модель запроса на пересчет баллов удачи
type Request struct {
	OperatorID int64
	Date       time.Time
}

// Response модель ответа с новыми баллами
type Response struct {
	Date          time.Time
	UpdatedScores map[int64]int
}

// UseCase use case пересчета баллов удачи по финальному размещению.
//
// Запускается после завершения ручной расстановки, отдельно от розыгрыша:
// баллы должны отражать то, что участники реально получили, а не первое
// предложение алгоритма
type UseCase struct {
	entryRepo    EntryRepository
	slotRepo     SlotRepository
	fairnessRepo FairnessRepository
	configRepo   ConfigRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entryRepo EntryRepository,
	slotRepo SlotRepository,
	fairnessRepo FairnessRepository,
	config ConfigRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		entryRepo:    entryRepo,
		slotRepo:     slotRepo,
		fairnessRepo: fairnessRepo,
		configRepo:   config,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет пересчет и сохраняет новые баллы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecomputeFairness: operator=%d, date=%s",
		req.OperatorID, req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigurationInvalid
		}
		return nil, fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
	}

	windows := domain.ComputeWindows(cfg)
	if len(windows) == 0 {
		return nil, ErrConfigurationInvalid
	}

	var updated map[int64]int

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		entries, err := uc.entryRepo.GetWithFilter(txCtx, domain.EntriesFilter{
			LotteryDate: ptr.Ptr(req.Date),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get entries: %v", ErrInternal, err)
		}

		slots, err := uc.slotRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		slotStarts := make(map[int64]int, len(slots))
		for _, s := range slots {
			startMinutes, err := s.StartMinutes()
			if err != nil {
				continue
			}
			slotStarts[s.ID] = startMinutes
		}

		// Минуты начала итоговых слотов по заявкам
		entryStarts := make(map[int64]int)
		memberIDs := make([]int64, 0)
		for _, e := range entries {
			if e.AssignedSlotID == nil {
				continue
			}
			startMinutes, ok := slotStarts[*e.AssignedSlotID]
			if !ok {
				continue
			}
			entryStarts[e.ID] = startMinutes
			memberIDs = append(memberIDs, e.MemberIDs...)
		}

		current, err := uc.fairnessRepo.GetScores(txCtx, memberIDs)
		if err != nil {
			return fmt.Errorf("%w: failed to get fairness scores: %v", ErrInternal, err)
		}

		updated = domain.ComputeFairnessUpdates(entries, entryStarts, windows, current)

		if err := uc.fairnessRepo.UpsertScores(txCtx, updated); err != nil {
			return fmt.Errorf("%w: failed to store fairness scores: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecomputeFairness: date %s, %d member scores updated",
		req.Date.Format(domain.DateFormat), len(updated))

	return &Response{Date: req.Date, UpdatedScores: updated}, nil
}
