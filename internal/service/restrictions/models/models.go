package models

import (
	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// Request модели

// EvaluateRequest запрос на оценку допустимости окон для состава группы
type EvaluateRequest struct {
	MemberIDs      []int64 `json:"memberIds"`                // Участники, первым идет организатор
	GuestCount     int     `json:"guestCount,omitempty"`     // Количество гостей
	GuestFillCount int     `json:"guestFillCount,omitempty"` // Количество мест-заглушек
}

// Response модели

// WindowVerdictResponse вердикт допустимости одного окна
type WindowVerdictResponse struct {
	Index             int      `json:"index"`
	Label             string   `json:"label"`
	IsFullyRestricted bool     `json:"isFullyRestricted"`
	Reasons           []string `json:"reasons,omitempty"`
}

// EvaluateResponse вердикты допустимости всех окон дня
type EvaluateResponse struct {
	Verdicts []WindowVerdictResponse `json:"verdicts"`
}

// FromDomainVerdicts конвертирует вердикты окон в response модель
// Вердикты возвращаются в порядке окон
func FromDomainVerdicts(windows []domain.PreferenceWindow, verdicts map[int]domain.WindowVerdict) *EvaluateResponse {
	resp := &EvaluateResponse{
		Verdicts: make([]WindowVerdictResponse, 0, len(windows)),
	}
	for _, w := range windows {
		verdict := verdicts[w.Index]
		resp.Verdicts = append(resp.Verdicts, WindowVerdictResponse{
			Index:             w.Index,
			Label:             w.Label,
			IsFullyRestricted: verdict.IsFullyRestricted,
			Reasons:           verdict.Reasons,
		})
	}
	return resp
}
