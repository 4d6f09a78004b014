package restrictions

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/internal/integrations/memberservice"
)

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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
