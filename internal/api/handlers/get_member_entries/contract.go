package get_member_entries

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/entries/models"
)

type EntryService interface {
	GetMemberEntries(ctx context.Context, req *models.GetMemberEntriesRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
