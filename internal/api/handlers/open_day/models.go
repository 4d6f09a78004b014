package open_day

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	openLotteryDay "github.com/fairwaylab/GC-LotteryService/internal/usecase/open_lottery_day"
)

// OpenDayRequest HTTP request model
type OpenDayRequest struct {
	Date string `json:"date"` // "2026-05-14"
}

// OpenDayResponse HTTP response model
type OpenDayResponse struct {
	Date    string           `json:"date"`
	Slots   []SlotResponse   `json:"slots"`
	Windows []WindowResponse `json:"windows"`
}

// SlotResponse один слот созданной сетки
type SlotResponse struct {
	ID           int64  `json:"id"`
	StartTime    string `json:"startTime"`
	MaxOccupants int    `json:"maxOccupants"`
}

// WindowResponse одно окно предпочтений дня
type WindowResponse struct {
	Index        int    `json:"index"`
	Label        string `json:"label"`
	StartMinutes int    `json:"startMinutes"`
	EndMinutes   int    `json:"endMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *OpenDayRequest) ToUseCaseRequest(operatorID int64) (*openLotteryDay.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &openLotteryDay.Request{
		OperatorID: operatorID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *openLotteryDay.Response) *OpenDayResponse {
	out := &OpenDayResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Slots:   make([]SlotResponse, 0, len(resp.Slots)),
		Windows: make([]WindowResponse, 0, len(resp.Windows)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:           s.ID,
			StartTime:    s.StartTime.String(),
			MaxOccupants: s.MaxOccupants,
		})
	}

	for _, w := range resp.Windows {
		out.Windows = append(out.Windows, WindowResponse{
			Index:        w.Index,
			Label:        w.Label,
			StartMinutes: w.StartMinutes,
			EndMinutes:   w.EndMinutes,
		})
	}

	return out
}
