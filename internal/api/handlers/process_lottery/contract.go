package process_lottery

import (
	"context"

	processLottery "github.com/fairwaylab/GC-LotteryService/internal/usecase/process_lottery"
)

type ProcessLotteryUseCase interface {
	Execute(ctx context.Context, req *processLottery.Request) (*processLottery.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
