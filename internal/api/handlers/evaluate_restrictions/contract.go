package evaluate_restrictions

import (
	"context"

	"github.com/fairwaylab/GC-LotteryService/internal/service/restrictions/models"
)

type RestrictionService interface {
	Evaluate(ctx context.Context, req *models.EvaluateRequest) (*models.EvaluateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
