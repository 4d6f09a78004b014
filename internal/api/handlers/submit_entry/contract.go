package submit_entry

import (
	"context"

	submitEntry "github.com/fairwaylab/GC-LotteryService/internal/usecase/submit_entry"
)

type SubmitEntryUseCase interface {
	Execute(ctx context.Context, req *submitEntry.Request) (*submitEntry.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
