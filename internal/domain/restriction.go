package domain

import (
	"fmt"
	"time"
)

// RuleCategory represents the kind of a restriction rule
type RuleCategory string

const (
	// RuleCategoryMemberClass ограничивает выбор окон для определенных классов членства
	RuleCategoryMemberClass RuleCategory = "member_class"

	// RuleCategoryFrequency лимит частоты игр за период
	// Не блокирует выбор окна: превышение фиксируется при чек-ине как платный сигнал
	RuleCategoryFrequency RuleCategory = "frequency"
)

// RestrictionRule правило ограничений, задаваемое администрацией клуба
// Ядро читает правила, но никогда их не изменяет
//
// AppliesToAll и ScopeAllWindows заданы отдельными флагами, чтобы
// "применяется ко всем" не путалось с "применяется к пустому множеству"
type RestrictionRule struct {
	ID       int64
	Category RuleCategory
	Name     string

	// AppliesToAll true = правило действует на все классы членства
	AppliesToAll     bool
	AppliesToClasses []string

	// ScopeAllWindows true = правило закрывает все окна дня
	ScopeAllWindows bool
	WindowScope     []int

	// RequiresNoGuests true = правило действует только на заявки без гостей
	// Заявки с гостями или заглушками обходят такие правила: гостевые брони
	// распределяются из отдельного пула по политике клуба
	RequiresNoGuests bool

	// Для правил frequency
	MaxCount   *int
	PeriodDays *int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesToParty проверяет применимость правила к составу группы
func (r *RestrictionRule) AppliesToParty(partyClasses []string, hasGuestsOrFills bool) bool {
	if !r.IsActive {
		return false
	}

	// Гостевые заявки обходят правила, требующие отсутствия гостей
	if r.RequiresNoGuests && hasGuestsOrFills {
		return false
	}

	if r.AppliesToAll {
		return true
	}

	for _, class := range partyClasses {
		for _, applies := range r.AppliesToClasses {
			if class == applies {
				return true
			}
		}
	}
	return false
}

// RestrictsWindow проверяет, закрывает ли правило окно с указанным индексом
func (r *RestrictionRule) RestrictsWindow(windowIndex int) bool {
	if r.ScopeAllWindows {
		return true
	}
	for _, idx := range r.WindowScope {
		if idx == windowIndex {
			return true
		}
	}
	return false
}

// WindowVerdict вердикт допустимости одного окна для конкретного состава группы
type WindowVerdict struct {
	IsFullyRestricted bool
	Reasons           []string
}

// EvaluateRestrictions вычисляет вердикты допустимости окон для состава группы.
//
// Применяются только активные правила категории member_class; правила frequency
// оцениваются отдельно при чек-ине (см. EvaluateFrequencyRule). Причины от
// нескольких правил накапливаются, чтобы вызывающая сторона могла показать
// все основания сразу.
//
// Чистая функция: при изменении состава группы вызывается заново.
func EvaluateRestrictions(
	windows []PreferenceWindow,
	rules []RestrictionRule,
	partyClasses []string,
	hasGuestsOrFills bool,
) map[int]WindowVerdict {
	verdicts := make(map[int]WindowVerdict, len(windows))
	for _, w := range windows {
		verdicts[w.Index] = WindowVerdict{}
	}

	for i := range rules {
		rule := &rules[i]

		if rule.Category != RuleCategoryMemberClass {
			continue
		}
		if !rule.AppliesToParty(partyClasses, hasGuestsOrFills) {
			continue
		}

		for _, w := range windows {
			if !rule.RestrictsWindow(w.Index) {
				continue
			}
			verdict := verdicts[w.Index]
			verdict.IsFullyRestricted = true
			verdict.Reasons = append(verdict.Reasons, restrictionReason(rule, &w))
			verdicts[w.Index] = verdict
		}
	}

	return verdicts
}

// FrequencyCheck результат проверки частоты игр при чек-ине
// Превышение не блокирует бронь, а фиксируется для выставления платы
type FrequencyCheck struct {
	RuleID     int64
	RuleName   string
	MaxCount   int
	Counted    int
	Exceeded   bool
	PeriodDays int
}

// EvaluateFrequencyRule проверяет скользящий счетчик игр члена клуба против
// правила frequency. entriesInPeriod - количество заявок члена за PeriodDays
// включая текущую
func EvaluateFrequencyRule(rule *RestrictionRule, entriesInPeriod int) *FrequencyCheck {
	if rule.Category != RuleCategoryFrequency || !rule.IsActive {
		return nil
	}
	if rule.MaxCount == nil || rule.PeriodDays == nil {
		return nil
	}

	return &FrequencyCheck{
		RuleID:     rule.ID,
		RuleName:   rule.Name,
		MaxCount:   *rule.MaxCount,
		Counted:    entriesInPeriod,
		Exceeded:   entriesInPeriod > *rule.MaxCount,
		PeriodDays: *rule.PeriodDays,
	}
}

func restrictionReason(rule *RestrictionRule, w *PreferenceWindow) string {
	return fmt.Sprintf("rule %q restricts window %d (%s) for this party", rule.Name, w.Index, w.Label)
}
