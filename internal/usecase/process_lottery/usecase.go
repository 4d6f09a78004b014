package process_lottery

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	entryRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	configRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	"github.com/fairwaylab/GC-LotteryService/pkg/ptr"
)

// UseCase use case проведения розыгрыша на дату
type UseCase struct {
	entryRepo       EntryRepository
	slotRepo        SlotRepository
	restrictionRepo RestrictionRepository
	fairnessRepo    FairnessRepository
	configRepo      ConfigRepository
	logRepo         AssignmentLogRepository
	memberClient    MemberServiceClient
	txManager       TransactionManager
	arrangements    ArrangementSessions
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entries EntryRepository,
	slots SlotRepository,
	restrictions RestrictionRepository,
	fairness FairnessRepository,
	config ConfigRepository,
	log AssignmentLogRepository,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	arrangements ArrangementSessions,
	logger Logger,
) *UseCase {
	return &UseCase{
		entryRepo:       entries,
		slotRepo:        slots,
		restrictionRepo: restrictions,
		fairnessRepo:    fairness,
		configRepo:      config,
		logRepo:         log,
		memberClient:    memberClient,
		txManager:       txManager,
		arrangements:    arrangements,
		logger:          logger,
	}
}

// Execute проводит розыгрыш: один детерминированный проход по всем pending
// заявкам даты. Результат (назначения, журнал, баллы удачи) фиксируется
// в одной сериализуемой транзакции.
//
// Незавершенные размещения отдельных заявок не являются ошибками - они
// возвращаются в журнале с причиной. Прогон прерывается целиком только
// при некорректной конфигурации, отсутствии слотов или повторном запуске
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessLottery: operator=%d, date=%s",
		req.OperatorID, req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 1. Конфигурация дня и окна предпочтений
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("ProcessLottery: day config is missing")
			return nil, ErrConfigurationInvalid
		}
		uc.logger.Error("ProcessLottery: failed to get day config: %v", err)
		return nil, fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
	}

	windows := domain.ComputeWindows(cfg)
	if len(windows) == 0 {
		uc.logger.Warn("ProcessLottery: day config produces no windows (open=%s, close=%s)",
			cfg.OpenTime, cfg.CloseTime)
		return nil, ErrConfigurationInvalid
	}

	// 2. Предварительное чтение заявок для запроса профилей участников
	// Авторитетное чтение с блокировкой будет внутри транзакции
	preliminary, err := uc.entryRepo.GetWithFilter(ctx, domain.EntriesFilter{
		LotteryDate: ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("ProcessLottery: failed to list entries: %v", err)
		return nil, fmt.Errorf("%w: failed to list entries: %v", ErrInternal, err)
	}

	memberIDs := collectMemberIDs(preliminary)
	members, err := uc.memberClient.GetMembers(ctx, memberIDs)
	if err != nil {
		uc.logger.Error("ProcessLottery: failed to get member profiles: %v", err)
		return nil, fmt.Errorf("%w: failed to get member profiles: %v", ErrInternal, err)
	}

	memberClasses := make(map[int64]string, len(members))
	for id, m := range members {
		memberClasses[id] = m.Class
	}

	// 3. Правила ограничений
	rules, err := uc.restrictionRepo.GetActiveRules(ctx)
	if err != nil {
		uc.logger.Error("ProcessLottery: failed to get restriction rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get restriction rules: %v", ErrInternal, err)
	}

	runID := uuid.NewString()
	var response *Response

	// 4. Прогон движка и фиксация результата в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slots, err := uc.slotRepo.GetByDate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}
		if len(slots) == 0 {
			return ErrNoSlotsForDate
		}

		// Авторитетное чтение заявок с блокировкой FOR UPDATE
		entries, err := uc.entryRepo.GetWithFilter(txCtx, domain.EntriesFilter{
			LotteryDate: ptr.Ptr(req.Date),
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get entries: %v", ErrInternal, err)
		}

		// Защита от повторного прогона: дата считается обработанной,
		// если хоть одна заявка уже несет результат распределения
		pending := make([]*domain.Entry, 0, len(entries))
		for _, e := range entries {
			if e.IsAssigned() || e.Status == domain.EntryStatusProcessing {
				return ErrAlreadyProcessed
			}
			if e.Status == domain.EntryStatusPending {
				pending = append(pending, e)
			}
		}

		// Заявка могла появиться между предварительным и авторитетным чтением.
		// Без профиля класс участника неизвестен и правила к нему не применятся,
		// поэтому недостающие профили дочитываются здесь
		missing := missingMemberIDs(pending, memberClasses)
		if len(missing) > 0 {
			lateMembers, err := uc.memberClient.GetMembers(txCtx, missing)
			if err != nil {
				return fmt.Errorf("%w: failed to get member profiles: %v", ErrInternal, err)
			}
			for id, m := range lateMembers {
				memberClasses[id] = m.Class
			}
		}

		fairness, err := uc.fairnessRepo.GetScores(txCtx, collectMemberIDs(pending))
		if err != nil {
			return fmt.Errorf("%w: failed to get fairness scores: %v", ErrInternal, err)
		}

		result := runEngine(engineInput{
			runID:         runID,
			date:          req.Date,
			entries:       pending,
			slots:         slots,
			windows:       windows,
			rules:         rules,
			fairness:      fairness,
			memberClasses: memberClasses,
		})

		// Фиксируем назначения: размещенные заявки переходят в assigned,
		// неразмещенные остаются pending и решаются вручную через расстановку
		updates := make([]entryRepo.AssignmentUpdate, 0, len(pending))
		assignedCount := 0
		for _, e := range pending {
			slotID := result.assignments[e.ID]
			if slotID == nil {
				continue
			}
			assignedCount++
			updates = append(updates, entryRepo.AssignmentUpdate{
				EntryID: e.ID,
				SlotID:  slotID,
				Status:  domain.EntryStatusAssigned,
			})
		}

		if err := uc.entryRepo.ApplyAssignments(txCtx, updates); err != nil {
			return fmt.Errorf("%w: failed to apply assignments: %v", ErrInternal, err)
		}

		if err := uc.logRepo.CreateBatch(txCtx, result.logEntries); err != nil {
			return fmt.Errorf("%w: failed to store assignment log: %v", ErrInternal, err)
		}

		if err := uc.fairnessRepo.UpsertScores(txCtx, result.updatedFairness); err != nil {
			return fmt.Errorf("%w: failed to store fairness scores: %v", ErrInternal, err)
		}

		response = &Response{
			RunID:           runID,
			Date:            req.Date,
			Assignments:     result.assignments,
			Log:             result.logEntries,
			UpdatedFairness: result.updatedFairness,
			AssignedCount:   assignedCount,
			UnassignedCount: len(pending) - assignedCount,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	// Открытая сессия расстановки держит снимок до розыгрыша;
	// коммит поверх него переполнил бы слоты
	uc.arrangements.Invalidate(req.Date)

	uc.logger.Info("ProcessLottery: run %s completed for %s: %d assigned, %d unassigned",
		runID, req.Date.Format(domain.DateFormat), response.AssignedCount, response.UnassignedCount)

	return response, nil
}

// missingMemberIDs возвращает ID участников, для которых нет профиля
func missingMemberIDs(entries []*domain.Entry, memberClasses map[int64]string) []int64 {
	seen := make(map[int64]struct{})
	missing := make([]int64, 0)
	for _, e := range entries {
		for _, memberID := range e.MemberIDs {
			if _, ok := memberClasses[memberID]; ok {
				continue
			}
			if _, ok := seen[memberID]; ok {
				continue
			}
			seen[memberID] = struct{}{}
			missing = append(missing, memberID)
		}
	}
	return missing
}

// collectMemberIDs собирает уникальные ID участников всех заявок
func collectMemberIDs(entries []*domain.Entry) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, e := range entries {
		for _, memberID := range e.MemberIDs {
			if _, ok := seen[memberID]; ok {
				continue
			}
			seen[memberID] = struct{}{}
			ids = append(ids, memberID)
		}
	}
	return ids
}
