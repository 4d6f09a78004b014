package update_day_config

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/days/models"
)

type DayService interface {
	UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
