package restrictions

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	dayconfigRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	memberClient "github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
	"github.com/fairwaylab/GC-LotteryService/internal/service/restrictions/models"
)

// Service сервис оценки правил ограничений
type Service struct {
	restrictionRepo RestrictionRepository
	configRepo      ConfigRepository
	memberClient    MemberServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса ограничений
func NewService(
	restrictionRepo RestrictionRepository,
	configRepo ConfigRepository,
	memberClient MemberServiceClient,
	logger Logger,
) *Service {
	return &Service{
		restrictionRepo: restrictionRepo,
		configRepo:      configRepo,
		memberClient:    memberClient,
		logger:          logger,
	}
}

// Evaluate вычисляет вердикты допустимости окон дня для состава группы
// Используется фронтендом, чтобы показывать закрытые окна до подачи заявки
func (s *Service) Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluateResponse, error) {
	s.logger.Info("Evaluate: members=%v, guests=%d, fills=%d",
		req.MemberIDs, req.GuestCount, req.GuestFillCount)

	if len(req.MemberIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one member is required", ErrInvalidInput)
	}
	for _, id := range req.MemberIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: member IDs must be positive", ErrInvalidInput)
		}
	}
	if req.GuestCount < 0 || req.GuestFillCount < 0 {
		return nil, fmt.Errorf("%w: guest counts must be non-negative", ErrInvalidInput)
	}

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, dayconfigRepo.ErrConfigNotFound) {
			s.logger.Warn("Evaluate: day configuration not found")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Evaluate: failed to get day config: %v", err)
		return nil, fmt.Errorf("%w: Evaluate - failed to get day config: %v", ErrInternal, err)
	}

	members, err := s.memberClient.GetMembers(ctx, req.MemberIDs)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			s.logger.Warn("Evaluate: some members not found: %v", req.MemberIDs)
			return nil, ErrMemberNotFound
		}
		s.logger.Error("Evaluate: failed to get members: %v", err)
		return nil, fmt.Errorf("%w: Evaluate - failed to get members: %v", ErrInternal, err)
	}

	rules, err := s.restrictionRepo.GetActiveRules(ctx)
	if err != nil {
		s.logger.Error("Evaluate: failed to get restriction rules: %v", err)
		return nil, fmt.Errorf("%w: Evaluate - failed to get restriction rules: %v", ErrInternal, err)
	}

	partyClasses := make([]string, 0, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		partyClasses = append(partyClasses, members[id].Class)
	}
	hasGuests := req.GuestCount > 0 || req.GuestFillCount > 0

	windows := domain.ComputeWindows(cfg)
	verdicts := domain.EvaluateRestrictions(windows, rules, partyClasses, hasGuests)

	return models.FromDomainVerdicts(windows, verdicts), nil
}
