package days

import (
	"context"
	"errors"
	"fmt"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	dayconfigRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	"github.com/fairwaylab/GC-LotteryService/internal/service/days/models"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

// Service сервис для работы с конфигурацией операционного дня
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации дня
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetConfig получает действующую конфигурацию дня
func (s *Service) GetConfig(ctx context.Context) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching day configuration")

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, dayconfigRepo.ErrConfigNotFound) {
			s.logger.Warn("GetConfig: day configuration not found")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// UpdateConfig сохраняет новую конфигурацию дня
// Новая конфигурация действует на даты, открываемые после обновления;
// уже созданные сетки слотов не пересоздаются
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: open=%s, close=%s, interval=%d, occupants=%d, window=%d",
		req.OpenTime, req.CloseTime, req.SlotIntervalMinutes, req.MaxOccupantsPerSlot, req.WindowDurationMinutes)

	cfg, err := validateConfig(req)
	if err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("UpdateConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: saved configuration id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// GetWindows вычисляет окна предпочтений для действующей конфигурации
func (s *Service) GetWindows(ctx context.Context) (*models.WindowListResponse, error) {
	s.logger.Info("GetWindows: computing preference windows")

	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, dayconfigRepo.ErrConfigNotFound) {
			s.logger.Warn("GetWindows: day configuration not found")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetWindows: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWindows - repository error: %v", ErrInternal, err)
	}

	windows := domain.ComputeWindows(cfg)
	return models.FromDomainWindows(windows), nil
}

// validateConfig проверяет и конвертирует запрос в domain конфигурацию
func validateConfig(req *models.UpdateConfigRequest) (*domain.DayConfig, error) {
	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}

	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}

	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if req.SlotIntervalMinutes < domain.MinSlotIntervalMinutes ||
		req.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return nil, fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if req.MaxOccupantsPerSlot < domain.MinOccupantsPerSlot ||
		req.MaxOccupantsPerSlot > domain.MaxOccupantsPerSlot {
		return nil, fmt.Errorf("%w: maxOccupantsPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinOccupantsPerSlot, domain.MaxOccupantsPerSlot)
	}

	if req.WindowDurationMinutes < domain.MinWindowDurationMinutes ||
		req.WindowDurationMinutes > domain.MaxWindowDurationMinutes {
		return nil, fmt.Errorf("%w: windowDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinWindowDurationMinutes, domain.MaxWindowDurationMinutes)
	}

	return &domain.DayConfig{
		OpenTime:              openTime,
		CloseTime:             closeTime,
		SlotIntervalMinutes:   req.SlotIntervalMinutes,
		MaxOccupantsPerSlot:   req.MaxOccupantsPerSlot,
		WindowDurationMinutes: req.WindowDurationMinutes,
	}, nil
}
