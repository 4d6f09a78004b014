package reset_arrangement

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
)

type ArrangementService interface {
	Reset(ctx context.Context, date time.Time) (*models.ArrangementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
