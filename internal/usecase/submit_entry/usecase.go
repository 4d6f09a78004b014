package submit_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	dayconfigRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	memberClient "github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
)

// UseCase use case для подачи заявки на розыгрыш
type UseCase struct {
	entryRepo       EntryRepository
	restrictionRepo RestrictionRepository
	configRepo      ConfigRepository
	memberClient    MemberServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entryRepo EntryRepository,
	restrictionRepo RestrictionRepository,
	configRepo ConfigRepository,
	memberClient MemberServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		entryRepo:       entryRepo,
		restrictionRepo: restrictionRepo,
		configRepo:      configRepo,
		memberClient:    memberClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подачи заявки
// Использует сериализуемую транзакцию, чтобы две конкурентные заявки
// одного участника на одну дату не прошли обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitEntry: organizer=%d, date=%s, members=%d, guests=%d, fills=%d, preferred=%d",
		req.OrganizerID, req.Date.Format(domain.DateFormat),
		1+len(req.AdditionalMemberIDs), len(req.GuestIDs), req.GuestFillCount, req.PreferredWindow)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitEntry: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата розыгрыша не может быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("SubmitEntry: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем профили всех участников заявки
	memberIDs := append([]int64{req.OrganizerID}, req.AdditionalMemberIDs...)
	members, err := uc.memberClient.GetMembers(ctx, memberIDs)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("SubmitEntry: some members not found: %v", memberIDs)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("SubmitEntry: failed to get members: %v", err)
		return nil, fmt.Errorf("%w: failed to get members: %v", ErrInternal, err)
	}

	partyClasses := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		partyClasses = append(partyClasses, members[id].Class)
	}

	// 4. Получаем активные правила ограничений
	rules, err := uc.restrictionRepo.GetActiveRules(ctx)
	if err != nil {
		uc.logger.Error("SubmitEntry: failed to get restriction rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get restriction rules: %v", ErrInternal, err)
	}

	var result *domain.Entry
	var frequencyChecks []FrequencyCheckResult

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем конфигурацию дня
		cfg, err := uc.configRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, dayconfigRepo.ErrConfigNotFound) {
				uc.logger.Warn("SubmitEntry: day configuration not found")
				return ErrConfigurationInvalid
			}
			uc.logger.Error("SubmitEntry: failed to get day config: %v", err)
			return fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
		}

		// 5.2. Валидация состава группы против лимитов конфигурации
		if err := validateParty(req, cfg); err != nil {
			uc.logger.Warn("SubmitEntry: party validation failed: %v", err)
			return err
		}

		// 5.3. Вычисляем окна дня и проверяем индексы
		windows := domain.ComputeWindows(cfg)
		if len(windows) == 0 {
			uc.logger.Warn("SubmitEntry: day configuration produces no windows")
			return ErrConfigurationInvalid
		}
		if err := validateWindows(req, windows); err != nil {
			uc.logger.Warn("SubmitEntry: window validation failed: %v", err)
			return err
		}

		// 5.4. Предпочтительное окно не должно быть закрыто правилами
		// для данного состава группы
		hasGuests := len(req.GuestIDs) > 0 || req.GuestFillCount > 0
		verdicts := domain.EvaluateRestrictions(windows, rules, partyClasses, hasGuests)
		if verdict := verdicts[req.PreferredWindow]; verdict.IsFullyRestricted {
			uc.logger.Warn("SubmitEntry: preferred window %d restricted: %v",
				req.PreferredWindow, verdict.Reasons)
			return fmt.Errorf("%w: %v", ErrWindowRestricted, verdict.Reasons)
		}

		// 5.5. Получаем все заявки на эту дату (FOR UPDATE внутри транзакции)
		existing, err := uc.entryRepo.GetWithFilter(txCtx, domain.EntriesFilter{
			LotteryDate: &req.Date,
		})
		if err != nil {
			uc.logger.Error("SubmitEntry: failed to get entries for date: %v", err)
			return fmt.Errorf("%w: failed to get entries: %v", ErrInternal, err)
		}

		// 5.6. Дата еще не разыграна
		for _, e := range existing {
			if e.Status == domain.EntryStatusProcessing || e.Status == domain.EntryStatusAssigned {
				uc.logger.Warn("SubmitEntry: date %s already processed", req.Date.Format(domain.DateFormat))
				return ErrDateAlreadyProcessed
			}
		}

		// 5.7. Ни один участник не состоит в другой активной заявке на эту дату
		inParty := make(map[int64]struct{}, len(memberIDs))
		for _, id := range memberIDs {
			inParty[id] = struct{}{}
		}
		for _, e := range existing {
			if !e.IsActive() {
				continue
			}
			for _, id := range e.MemberIDs {
				if _, ok := inParty[id]; ok {
					uc.logger.Warn("SubmitEntry: member id=%d already has entry id=%d for date %s",
						id, e.ID, req.Date.Format(domain.DateFormat))
					return fmt.Errorf("%w: member %d already in entry %d", ErrDuplicateEntry, id, e.ID)
				}
			}
		}

		// 5.8. Создаем заявку
		entryType := domain.EntryTypeIndividual
		if len(req.AdditionalMemberIDs) > 0 {
			entryType = domain.EntryTypeGroup
		}

		entry := &domain.Entry{
			Type:            entryType,
			OrganizerID:     req.OrganizerID,
			LotteryDate:     req.Date,
			MemberIDs:       memberIDs,
			GuestIDs:        req.GuestIDs,
			GuestFillCount:  req.GuestFillCount,
			PreferredWindow: req.PreferredWindow,
			AlternateWindow: req.AlternateWindow,
			Status:          domain.EntryStatusPending,
			SubmissionTime:  now,
			Notes:           req.Notes,
		}

		result, err = uc.entryRepo.Create(txCtx, entry)
		if err != nil {
			uc.logger.Error("SubmitEntry: failed to create entry: %v", err)
			return fmt.Errorf("%w: failed to create entry: %v", ErrInternal, err)
		}

		// 5.9. Проверяем frequency-правила для каждого участника.
		// Превышение не блокирует заявку, а возвращается как сигнал
		// для выставления платы
		frequencyChecks, err = uc.evaluateFrequency(txCtx, rules, memberIDs, req, partyClasses, hasGuests)
		if err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitEntry: created entry id=%d, type=%s, party=%d",
		result.ID, result.Type, result.PartySize())

	return buildResponse(result, frequencyChecks), nil
}

// evaluateFrequency прогоняет активные frequency-правила по каждому участнику
func (uc *UseCase) evaluateFrequency(
	ctx context.Context,
	rules []domain.RestrictionRule,
	memberIDs []int64,
	req *Request,
	partyClasses []string,
	hasGuests bool,
) ([]FrequencyCheckResult, error) {
	var results []FrequencyCheckResult

	for i := range rules {
		rule := &rules[i]
		if rule.Category != domain.RuleCategoryFrequency {
			continue
		}
		if !rule.AppliesToParty(partyClasses, hasGuests) {
			continue
		}
		if rule.PeriodDays == nil || rule.MaxCount == nil {
			continue
		}

		for _, memberID := range memberIDs {
			count, err := uc.entryRepo.CountMemberEntriesInPeriod(ctx, memberID, req.Date, *rule.PeriodDays)
			if err != nil {
				uc.logger.Error("SubmitEntry: failed to count entries for member id=%d: %v", memberID, err)
				return nil, fmt.Errorf("%w: failed to count member entries: %v", ErrInternal, err)
			}

			check := domain.EvaluateFrequencyRule(rule, count)
			if check == nil || !check.Exceeded {
				continue
			}

			uc.logger.Info("SubmitEntry: member id=%d exceeds rule %q: %d of %d in %d days",
				memberID, check.RuleName, check.Counted, check.MaxCount, check.PeriodDays)
			results = append(results, FrequencyCheckResult{
				MemberID:   memberID,
				RuleName:   check.RuleName,
				MaxCount:   check.MaxCount,
				Counted:    check.Counted,
				PeriodDays: check.PeriodDays,
			})
		}
	}

	return results, nil
}

func buildResponse(e *domain.Entry, checks []FrequencyCheckResult) *Response {
	return &Response{
		ID:              e.ID,
		Type:            string(e.Type),
		OrganizerID:     e.OrganizerID,
		Date:            e.LotteryDate,
		MemberIDs:       e.MemberIDs,
		GuestIDs:        e.GuestIDs,
		GuestFillCount:  e.GuestFillCount,
		PartySize:       e.PartySize(),
		PreferredWindow: e.PreferredWindow,
		AlternateWindow: e.AlternateWindow,
		Status:          string(e.Status),
		SubmissionTime:  e.SubmissionTime,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		FrequencyChecks: checks,
	}
}
