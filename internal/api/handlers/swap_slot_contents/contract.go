package swap_slot_contents

import (
	"context"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/service/arrangements/models"
)

type ArrangementService interface {
	SwapSlotContents(ctx context.Context, date time.Time, req *models.SwapSlotContentsRequest) (*models.ArrangementResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
