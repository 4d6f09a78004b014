package reset_lottery

import (
	"context"
	"time"
)

// EntryRepository интерфейс репозитория заявок
type EntryRepository interface {
	ResetForDate(ctx context.Context, date time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ArrangementSessions интерфейс сессий ручной корректировки расстановки
// Сессия даты закрывается после сброса: ее снимок устарел
type ArrangementSessions interface {
	Invalidate(date time.Time)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
