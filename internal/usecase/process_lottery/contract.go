package process_lottery

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/infra/storage/entry"
	"github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
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

// RestrictionRepository интерфейс репозитория правил ограничений
type RestrictionRepository interface {
	GetActiveRules(ctx context.Context) ([]domain.RestrictionRule, error)
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

// AssignmentLogRepository интерфейс репозитория журнала распределения
type AssignmentLogRepository interface {
	CreateBatch(ctx context.Context, logEntries []domain.AssignmentLogEntry) error
}

// MemberServiceClient интерфейс клиента для MemberService
type MemberServiceClient interface {
	GetMembers(ctx context.Context, memberIDs []int64) (map[int64]*memberservice.Member, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ArrangementSessions интерфейс сессий ручной корректировки расстановки
// Сессия даты закрывается после розыгрыша: ее снимок устарел
type ArrangementSessions interface {
	Invalidate(date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
