package get_entry

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/entries/models"
)

type EntryService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
