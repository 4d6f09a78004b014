package recompute_fairness

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// EntryRepository интерфейс репозитория заявок
type EntryRepository interface {
	GetWithFilter(ctx context.Context, filter domain.EntriesFilter) ([]*domain.Entry, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
}

// FairnessRepository интерфейс репозитория баллов удачи
type FairnessRepository interface {
	GetScores(ctx context.Context, memberIDs []int64) (map[int64]int, error)
	UpsertScores(ctx context.Context, scores map[int64]int) error
}

// ConfigRepository интерфейс репозитория конфигурации дня
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.DayConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
