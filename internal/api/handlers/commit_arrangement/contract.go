package commit_arrangement

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
)

type ArrangementService interface {
	Commit(ctx context.Context, date time.Time) (*models.CommitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
