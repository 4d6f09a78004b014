package move_entry

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
)

type ArrangementService interface {
	MoveEntry(ctx context.Context, date time.Time, req *models.MoveEntryRequest) (*models.ArrangementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
