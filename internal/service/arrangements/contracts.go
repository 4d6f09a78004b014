package arrangements

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
)

// EntryRepository интерфейс репозитория заявок
type EntryRepository interface {
	GetWithFilter(ctx context.Context, filter domain.EntriesFilter) ([]*domain.Entry, error)
	ApplyAssignments(ctx context.Context, updates []entry.AssignmentUpdate) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Slot, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
