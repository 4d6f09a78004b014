package entries

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// EntryRepository интерфейс репозитория заявок
type EntryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)
	GetWithFilter(ctx context.Context, filter domain.EntriesFilter) ([]*domain.Entry, error)
	Cancel(ctx context.Context, id int64) error
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
