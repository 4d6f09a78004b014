package open_day

import (
	"context"

	openLotteryDay "github.com/fairwaylab/GC-LotteryService/internal/usecase/open_lottery_day"
)

type OpenLotteryDayUseCase interface {
	Execute(ctx context.Context, req *openLotteryDay.Request) (*openLotteryDay.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
