package recompute_fairness

import (
	"context"

	recomputeFairness "github.com/fairwaylab/GC-LotteryService/internal/usecase/recompute_fairness"
)

type RecomputeFairnessUseCase interface {
	Execute(ctx context.Context, req *recomputeFairness.Request) (*recomputeFairness.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
