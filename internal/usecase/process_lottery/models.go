package process_lottery

import (
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// Request модель запроса на проведение розыгрыша
type Request struct {
	OperatorID int64     // ID оператора (для логирования)
	Date       time.Time // Дата розыгрыша (без времени)
}

// Response модель ответа с результатом розыгрыша
type Response struct {
	RunID string    // Идентификатор прогона
	Date  time.Time // Дата розыгрыша

	// Assignments итоговое назначение: ID заявки -> ID слота (nil = не размещена)
	Assignments map[int64]*int64

	// Log журнал обработки по каждой заявке, в порядке обработки
	Log []domain.AssignmentLogEntry

	// UpdatedFairness новые баллы удачи участников назначенных заявок
	UpdatedFairness map[int64]int

	AssignedCount   int
	UnassignedCount int
}
