package get_day_config

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/days/models"
)

type DayService interface {
	GetConfig(ctx context.Context) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
