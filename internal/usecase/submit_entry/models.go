package submit_entry

import (
	"time"
)

// Request модель запроса на подачу заявки
// Заявка считается групповой, если указаны дополнительные участники
type Request struct {
	OrganizerID         int64     // ID организатора
	Date                time.Time // Дата розыгрыша (без времени)
	AdditionalMemberIDs []int64   // Дополнительные участники группы (без организатора)
	GuestIDs            []int64   // Гости
	GuestFillCount      int       // Места-заглушки под гостей без имени
	PreferredWindow     int       // Индекс предпочтительного окна
	AlternateWindow     *int      // Индекс альтернативного окна (опционально)
	Notes               *string   // Заметки (опционально)
}

// Response модель ответа с созданной заявкой
type Response struct {
	ID              int64
	Type            string
	OrganizerID     int64
	Date            time.Time
	MemberIDs       []int64
	GuestIDs        []int64
	GuestFillCount  int
	PartySize       int
	PreferredWindow int
	AlternateWindow *int
	Status          string
	SubmissionTime  time.Time
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// FrequencyChecks результаты проверки frequency-правил для участников.
	// Превышения не блокируют заявку - это сигнал для выставления платы
	FrequencyChecks []FrequencyCheckResult
}

// FrequencyCheckResult превышение частоты игр одним участником
type FrequencyCheckResult struct {
	MemberID   int64
	RuleName   string
	MaxCount   int
	Counted    int
	PeriodDays int
}
