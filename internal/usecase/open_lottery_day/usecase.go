package open_lottery_day

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	dayconfigRepo "github.com/fairwaylab/GC-LotteryService/internal/infra/storage/dayconfig"
	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

// UseCase use case для открытия дня розыгрыша: создает сетку слотов
// по конфигурации дня
type UseCase struct {
	slotRepo     SlotRepository
	configRepo   ConfigRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		configRepo:   configRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case открытия дня
// Сериализуемая транзакция гарантирует, что сетка на дату создается
// ровно один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OpenLotteryDay: operator=%d, date=%s",
		req.OperatorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.OperatorID <= 0 {
		return nil, fmt.Errorf("%w: operatorID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Дата не может быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("OpenLotteryDay: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var created []*domain.Slot
	var windows []domain.PreferenceWindow

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем конфигурацию дня
		cfg, err := uc.configRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, dayconfigRepo.ErrConfigNotFound) {
				uc.logger.Warn("OpenLotteryDay: day configuration not found")
				return ErrConfigurationInvalid
			}
			uc.logger.Error("OpenLotteryDay: failed to get day config: %v", err)
			return fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
		}

		// 3.2. Сетка на дату создается только один раз
		exists, err := uc.slotRepo.ExistsForDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("OpenLotteryDay: failed to check existing slots: %v", err)
			return fmt.Errorf("%w: failed to check existing slots: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("OpenLotteryDay: date %s already opened", req.Date.Format(domain.DateFormat))
			return ErrDateAlreadyOpened
		}

		// 3.3. Генерируем сетку слотов
		slots, err := generateSlotGrid(cfg, req.Date)
		if err != nil {
			uc.logger.Warn("OpenLotteryDay: invalid configuration: %v", err)
			return fmt.Errorf("%w: %v", ErrConfigurationInvalid, err)
		}
		if len(slots) == 0 {
			uc.logger.Warn("OpenLotteryDay: configuration produces no slots")
			return ErrConfigurationInvalid
		}

		windows = domain.ComputeWindows(cfg)
		if len(windows) == 0 {
			uc.logger.Warn("OpenLotteryDay: configuration produces no windows")
			return ErrConfigurationInvalid
		}

		created, err = uc.slotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			uc.logger.Error("OpenLotteryDay: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("OpenLotteryDay: opened date %s with %d slots, %d windows",
		req.Date.Format(domain.DateFormat), len(created), len(windows))

	return buildResponse(req.Date, created, windows), nil
}

// generateSlotGrid генерирует слоты от открытия до закрытия с фиксированным шагом
// Последний слот начинается строго раньше времени закрытия
func generateSlotGrid(cfg *domain.DayConfig, date time.Time) ([]*domain.Slot, error) {
	if cfg.SlotIntervalMinutes <= 0 {
		return nil, fmt.Errorf("slot interval must be positive, got %d", cfg.SlotIntervalMinutes)
	}
	if cfg.MaxOccupantsPerSlot <= 0 {
		return nil, fmt.Errorf("max occupants must be positive, got %d", cfg.MaxOccupantsPerSlot)
	}

	openMin, err := cfg.OpenTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid open time: %v", err)
	}
	closeMin, err := cfg.CloseTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid close time: %v", err)
	}
	if openMin >= closeMin {
		return nil, fmt.Errorf("open time %s must be before close time %s", cfg.OpenTime, cfg.CloseTime)
	}

	slots := make([]*domain.Slot, 0, (closeMin-openMin)/cfg.SlotIntervalMinutes)
	for start := openMin; start < closeMin; start += cfg.SlotIntervalMinutes {
		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		slots = append(slots, &domain.Slot{
			LotteryDate:  date,
			StartTime:    startTime,
			MaxOccupants: cfg.MaxOccupantsPerSlot,
		})
	}

	return slots, nil
}

func buildResponse(date time.Time, slots []*domain.Slot, windows []domain.PreferenceWindow) *Response {
	resp := &Response{
		Date:    date,
		Slots:   make([]SlotInfo, 0, len(slots)),
		Windows: make([]WindowInfo, 0, len(windows)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotInfo{
			ID:           s.ID,
			StartTime:    s.StartTime,
			MaxOccupants: s.MaxOccupants,
		})
	}
	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowInfo{
			Index:        w.Index,
			Label:        w.Label,
			StartMinutes: w.StartMinutes,
			EndMinutes:   w.EndMinutes,
		})
	}
	return resp
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
