package open_lottery_day

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/pkg/types"
)

// Request модель запроса на открытие дня розыгрыша
type Request struct {
	OperatorID int64     // ID оператора клуба
	Date       time.Time // Дата розыгрыша (без времени)
}

// Response модель ответа с созданной сеткой слотов
type Response struct {
	Date    time.Time
	Slots   []SlotInfo
	Windows []WindowInfo
}

// SlotInfo информация об одном слоте сетки
type SlotInfo struct {
	ID           int64
	StartTime    types.TimeString
	MaxOccupants int
}

// WindowInfo информация об одном окне предпочтений
type WindowInfo struct {
	Index        int
	Label        string
	StartMinutes int
	EndMinutes   int
}
