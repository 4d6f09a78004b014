package get_windows

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/days/models"
)

type DayService interface {
	GetWindows(ctx context.Context) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
