package reset_lottery

import (
	"context"

	resetLottery "github.com/fairwaylab/GC-LotteryService/internal/usecase/reset_lottery"
)

type ResetLotteryUseCase interface {
	Execute(ctx context.Context, req *resetLottery.Request) (*resetLottery.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
