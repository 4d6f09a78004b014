package reset_lottery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reset_lottery: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reset_lottery: internal error")
)

// Request модель запроса на сброс результатов розыгрыша
type Request struct {
	OperatorID int64
	Date       time.Time
}

// Response модель ответа со счетчиком сброшенных заявок
type Response struct {
	Date       time.Time
	ResetCount int64
}

// UseCase use case явного сброса результатов розыгрыша.
// Возвращает все обработанные заявки даты в pending и очищает назначения,
// после чего дату можно разыграть заново
type UseCase struct {
	entryRepo    EntryRepository
	txManager    TransactionManager
	arrangements ArrangementSessions
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	entryRepo EntryRepository,
	txManager TransactionManager,
	arrangements ArrangementSessions,
	logger Logger,
) *UseCase {
	return &UseCase{
		entryRepo:    entryRepo,
		txManager:    txManager,
		arrangements: arrangements,
		logger:       logger,
	}
}

// Execute выполняет сброс в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResetLottery: operator=%d, date=%s",
		req.OperatorID, req.Date.Format(domain.DateFormat))

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var resetCount int64
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		count, err := uc.entryRepo.ResetForDate(txCtx, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to reset entries: %v", ErrInternal, err)
		}
		resetCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Открытая сессия расстановки держит снимок до сброса
	uc.arrangements.Invalidate(req.Date)

	uc.logger.Info("ResetLottery: date %s reset, %d entries returned to pending",
		req.Date.Format(domain.DateFormat), resetCount)

	return &Response{Date: req.Date, ResetCount: resetCount}, nil
}
