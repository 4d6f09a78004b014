package days

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации дня
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.DayConfig, error)
	Upsert(ctx context.Context, cfg *domain.DayConfig) (*domain.DayConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
