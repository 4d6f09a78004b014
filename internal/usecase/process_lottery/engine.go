package process_lottery

import (
	"sort"
	"time"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
)

// engineInput полный снимок данных одного прогона
// Движок чист относительно входа: одинаковый вход дает одинаковый результат,
// что позволяет воспроизводить прогон для аудита
type engineInput struct {
	runID         string
	date          time.Time
	entries       []*domain.Entry
	slots         []*domain.Slot
	windows       []domain.PreferenceWindow
	rules         []domain.RestrictionRule
	fairness      map[int64]int    // member ID -> текущий балл удачи
	memberClasses map[int64]string // member ID -> класс членства
}

// engineResult результат прогона движка
type engineResult struct {
	assignments     map[int64]*int64
	logEntries      []domain.AssignmentLogEntry
	updatedFairness map[int64]int
}

// slotLedger локальный счетчик оставшейся емкости слота
// Живет только внутри одного прогона и наружу не отдается
type slotLedger struct {
	slot         *domain.Slot
	startMinutes int
	remaining    int
}

// prioritizedEntry заявка с предвычисленным составным ключом сортировки
// Ключ считается один раз до сортировки, чтобы порядок был строго тотальным
type prioritizedEntry struct {
	entry      *domain.Entry
	fairness   int
	submission time.Time
}

// runEngine выполняет один детерминированный проход распределения.
//
// Порядок обработки: по возрастанию балла удачи, затем по времени подачи,
// затем по ID заявки. Каждая заявка размещается целиком (группы не делятся):
// предпочтительное окно, затем альтернативное, затем fallback на ближайший
// по времени слот к середине предпочтительного окна (при равном расстоянии
// побеждает более ранний слот, затем меньший ID).
//
// Занятые места списываются с локального счетчика по мере размещения,
// поэтому порядок обработки напрямую определяет, кто выигрывает спорные слоты
func runEngine(in engineInput) *engineResult {
	ledgers := buildLedgers(in.slots)
	ordered := prioritize(in.entries, in.fairness)

	result := &engineResult{
		assignments:     make(map[int64]*int64, len(ordered)),
		logEntries:      make([]domain.AssignmentLogEntry, 0, len(ordered)),
		updatedFairness: make(map[int64]int),
	}

	assignedStarts := make(map[int64]int) // entry ID -> минута начала слота

	for _, pe := range ordered {
		e := pe.entry
		placement := placeEntry(e, ledgers, in)

		if placement.ledger != nil {
			placement.ledger.remaining -= e.PartySize()
			slotID := placement.ledger.slot.ID
			result.assignments[e.ID] = &slotID
			assignedStarts[e.ID] = placement.ledger.startMinutes
		} else {
			result.assignments[e.ID] = nil
		}

		result.logEntries = append(result.logEntries, domain.AssignmentLogEntry{
			RunID:                in.runID,
			LotteryDate:          in.date,
			EntryID:              e.ID,
			EntryType:            e.Type,
			Reason:               placement.reason,
			FinalSlotID:          result.assignments[e.ID],
			FairnessBefore:       pe.fairness,
			ViolatedRestrictions: placement.violations,
		})
	}

	result.updatedFairness = domain.ComputeFairnessUpdates(in.entries, assignedStarts, in.windows, in.fairness)

	// Балл "после" в журнале - балл организатора после пересчета
	for i := range result.logEntries {
		logEntry := &result.logEntries[i]
		organizerID := organizerOf(in.entries, logEntry.EntryID)
		if after, ok := result.updatedFairness[organizerID]; ok {
			logEntry.FairnessAfter = after
		} else {
			logEntry.FairnessAfter = in.fairness[organizerID]
		}
	}

	return result
}

type placement struct {
	ledger     *slotLedger
	reason     domain.AssignmentReason
	violations []string
}

// placeEntry подбирает слот для одной заявки, не изменяя счетчики
func placeEntry(e *domain.Entry, ledgers []*slotLedger, in engineInput) placement {
	partySize := e.PartySize()
	verdicts := domain.EvaluateRestrictions(in.windows, in.rules, partyClasses(e, in.memberClasses), e.HasGuestsOrFills())

	violations := make([]string, 0)

	// 1. Предпочтительное окно
	preferred := windowByIndex(in.windows, e.PreferredWindow)
	if preferred != nil {
		if verdict := verdicts[preferred.Index]; verdict.IsFullyRestricted {
			violations = append(violations, verdict.Reasons...)
		} else if ledger := findInWindow(ledgers, preferred, partySize); ledger != nil {
			return placement{ledger: ledger, reason: domain.ReasonPreferredMatch}
		}
	}

	// 2. Альтернативное окно
	if e.AlternateWindow != nil {
		if alternate := windowByIndex(in.windows, *e.AlternateWindow); alternate != nil {
			if verdict := verdicts[alternate.Index]; verdict.IsFullyRestricted {
				violations = append(violations, verdict.Reasons...)
			} else if ledger := findInWindow(ledgers, alternate, partySize); ledger != nil {
				return placement{ledger: ledger, reason: domain.ReasonAlternateMatch}
			}
		}
	}

	// 3. Fallback: любой слот в незапрещенном окне, ближайший к середине
	// предпочтительного окна
	midpoint := fallbackMidpoint(preferred, in.windows)
	if ledger := findFallback(ledgers, in.windows, verdicts, partySize, midpoint, false); ledger != nil {
		return placement{ledger: ledger, reason: domain.ReasonAllowedFallback}
	}

	// 4. Последняя возможность: слот в запрещенном окне
	// Размещение фиксируется как нарушение, а не как обычный fallback
	if ledger := findFallback(ledgers, in.windows, verdicts, partySize, midpoint, true); ledger != nil {
		return placement{
			ledger:     ledger,
			reason:     domain.ReasonRestrictionViolation,
			violations: collectAllViolations(verdicts),
		}
	}

	// 5. Разместить некуда. Различаем отказ из-за ограничений и чистое
	// исчерпание емкости - для вызывающей стороны это разные причины
	if len(violations) > 0 {
		return placement{reason: domain.ReasonRestrictionViolation, violations: violations}
	}
	return placement{reason: domain.ReasonNoCapacity}
}

// buildLedgers строит счетчики емкости, отсортированные по времени старта и ID
func buildLedgers(slots []*domain.Slot) []*slotLedger {
	ledgers := make([]*slotLedger, 0, len(slots))
	for _, s := range slots {
		startMinutes, err := s.StartMinutes()
		if err != nil {
			// Слот с нечитаемым временем не участвует в распределении
			continue
		}
		ledgers = append(ledgers, &slotLedger{
			slot:         s,
			startMinutes: startMinutes,
			remaining:    s.MaxOccupants,
		})
	}

	sort.Slice(ledgers, func(i, j int) bool {
		if ledgers[i].startMinutes != ledgers[j].startMinutes {
			return ledgers[i].startMinutes < ledgers[j].startMinutes
		}
		return ledgers[i].slot.ID < ledgers[j].slot.ID
	})

	return ledgers
}

// prioritize строит порядок обработки заявок.
// Составной ключ вычисляется заранее: балл удачи заявки (минимальный балл
// среди ее участников), время подачи, ID заявки
func prioritize(entries []*domain.Entry, fairness map[int64]int) []*prioritizedEntry {
	ordered := make([]*prioritizedEntry, 0, len(entries))
	for _, e := range entries {
		ordered = append(ordered, &prioritizedEntry{
			entry:      e,
			fairness:   entryFairness(e, fairness),
			submission: e.SubmissionTime,
		})
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].fairness != ordered[j].fairness {
			return ordered[i].fairness < ordered[j].fairness
		}
		if !ordered[i].submission.Equal(ordered[j].submission) {
			return ordered[i].submission.Before(ordered[j].submission)
		}
		return ordered[i].entry.ID < ordered[j].entry.ID
	})

	return ordered
}

// entryFairness балл удачи заявки - минимальный балл среди ее участников
func entryFairness(e *domain.Entry, fairness map[int64]int) int {
	best := 0
	for i, memberID := range e.MemberIDs {
		score := fairness[memberID]
		if i == 0 || score < best {
			best = score
		}
	}
	return best
}

// findInWindow ищет самый ранний слот окна с достаточной оставшейся емкостью
func findInWindow(ledgers []*slotLedger, w *domain.PreferenceWindow, partySize int) *slotLedger {
	for _, ledger := range ledgers {
		if !w.Contains(ledger.startMinutes) {
			continue
		}
		if ledger.remaining >= partySize {
			return ledger
		}
	}
	return nil
}

// findFallback ищет fallback-слот с достаточной емкостью.
// restricted=false рассматривает только слоты незапрещенных окон,
// restricted=true - только слоты запрещенных.
// Выбирается слот с минимальным расстоянием до midpoint; при равенстве
// побеждает более ранний старт, затем меньший ID (ledgers уже так отсортированы)
func findFallback(
	ledgers []*slotLedger,
	windows []domain.PreferenceWindow,
	verdicts map[int]domain.WindowVerdict,
	partySize int,
	midpoint int,
	restricted bool,
) *slotLedger {
	var best *slotLedger
	bestDistance := 0

	for _, ledger := range ledgers {
		if ledger.remaining < partySize {
			continue
		}

		w := domain.FindWindowForMinutes(windows, ledger.startMinutes)
		if w == nil {
			// Слот вне операционного интервала окон не рассматриваем
			continue
		}
		if verdicts[w.Index].IsFullyRestricted != restricted {
			continue
		}

		distance := ledger.startMinutes - midpoint
		if distance < 0 {
			distance = -distance
		}

		if best == nil || distance < bestDistance {
			best = ledger
			bestDistance = distance
		}
	}

	return best
}

// fallbackMidpoint середина предпочтительного окна; если предпочтительное
// окно не существует в текущей конфигурации, берется середина дня
func fallbackMidpoint(preferred *domain.PreferenceWindow, windows []domain.PreferenceWindow) int {
	if preferred != nil {
		return preferred.MidpointMinutes()
	}
	if len(windows) == 0 {
		return 0
	}
	return (windows[0].StartMinutes + windows[len(windows)-1].EndMinutes) / 2
}

func windowByIndex(windows []domain.PreferenceWindow, index int) *domain.PreferenceWindow {
	for i := range windows {
		if windows[i].Index == index {
			return &windows[i]
		}
	}
	return nil
}

func partyClasses(e *domain.Entry, memberClasses map[int64]string) []string {
	classes := make([]string, 0, len(e.MemberIDs))
	for _, memberID := range e.MemberIDs {
		if class, ok := memberClasses[memberID]; ok {
			classes = append(classes, class)
		}
	}
	return classes
}

func collectAllViolations(verdicts map[int]domain.WindowVerdict) []string {
	indices := make([]int, 0, len(verdicts))
	for idx := range verdicts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	violations := make([]string, 0)
	for _, idx := range indices {
		violations = append(violations, verdicts[idx].Reasons...)
	}
	return violations
}

func organizerOf(entries []*domain.Entry, entryID int64) int64 {
	for _, e := range entries {
		if e.ID == entryID {
			return e.OrganizerID
		}
	}
	return 0
}
