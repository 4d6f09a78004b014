package submit_entry

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
)

// EntryRepository интерфейс репозитория заявок
type EntryRepository interface {
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	GetWithFilter(ctx context.Context, filter domain.EntriesFilter) ([]*domain.Entry, error)
	CountMemberEntriesInPeriod(ctx context.Context, memberID int64, endDate time.Time, periodDays int) (int, error)
}

// RestrictionRepository интерфейс репозитория правил ограничений
type RestrictionRepository interface {
	GetActiveRules(ctx context.Context) ([]domain.RestrictionRule, error)
}

// ConfigRepository интерфейс репозитория конфигурации дня
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.DayConfig, error)
}

// MemberServiceClient интерфейс клиента для MemberService
type MemberServiceClient interface {
	GetMembers(ctx context.Context, memberIDs []int64) (map[int64]*memberservice.Member, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
