package get_day_entries

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/entries/models"
)

type EntryService interface {
	GetDayEntries(ctx context.Context, req *models.GetDayEntriesRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
