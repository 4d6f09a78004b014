package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fairwaylab/GC-LotteryService/pkg/ptr"
)

func twoWindows() []PreferenceWindow {
	return []PreferenceWindow{
		{Index: 0, Label: "07:00-08:00", StartMinutes: 7 * 60, EndMinutes: 8 * 60},
		{Index: 1, Label: "08:00-09:00", StartMinutes: 8 * 60, EndMinutes: 9 * 60},
	}
}

func TestRuleAppliesToParty(t *testing.T) {
	t.Parallel()

	t.Run("inactive rule never applies", func(t *testing.T) {
		rule := RestrictionRule{AppliesToAll: true, IsActive: false}
		require.False(t, rule.AppliesToParty([]string{"standard"}, false))
	})

	t.Run("applies to all classes", func(t *testing.T) {
		rule := RestrictionRule{AppliesToAll: true, IsActive: true}
		require.True(t, rule.AppliesToParty([]string{"premium"}, false))
	})

	t.Run("applies when any member class matches", func(t *testing.T) {
		rule := RestrictionRule{AppliesToClasses: []string{"junior"}, IsActive: true}
		require.True(t, rule.AppliesToParty([]string{"standard", "junior"}, false))
		require.False(t, rule.AppliesToParty([]string{"standard", "premium"}, false))
	})

	t.Run("guest parties bypass no-guest rules", func(t *testing.T) {
		rule := RestrictionRule{AppliesToAll: true, RequiresNoGuests: true, IsActive: true}
		require.True(t, rule.AppliesToParty([]string{"standard"}, false))
		require.False(t, rule.AppliesToParty([]string{"standard"}, true))
	})

	t.Run("explicit empty class list applies to nobody", func(t *testing.T) {
		rule := RestrictionRule{AppliesToClasses: []string{}, IsActive: true}
		require.False(t, rule.AppliesToParty([]string{"standard"}, false))
	})
}

func TestRuleRestrictsWindow(t *testing.T) {
	t.Parallel()

	scoped := RestrictionRule{WindowScope: []int{0, 2}}
	require.True(t, scoped.RestrictsWindow(0))
	require.False(t, scoped.RestrictsWindow(1))
	require.True(t, scoped.RestrictsWindow(2))

	all := RestrictionRule{ScopeAllWindows: true}
	require.True(t, all.RestrictsWindow(0))
	require.True(t, all.RestrictsWindow(99))
}

func TestEvaluateRestrictions(t *testing.T) {
	t.Parallel()

	t.Run("no rules leaves all windows open", func(t *testing.T) {
		verdicts := EvaluateRestrictions(twoWindows(), nil, []string{"standard"}, false)
		require.Len(t, verdicts, 2)
		require.False(t, verdicts[0].IsFullyRestricted)
		require.False(t, verdicts[1].IsFullyRestricted)
	})

	t.Run("class rule closes scoped window", func(t *testing.T) {
		rules := []RestrictionRule{
			{
				ID:               1,
				Category:         RuleCategoryMemberClass,
				Name:             "юниоры только после 8",
				AppliesToClasses: []string{"junior"},
				WindowScope:      []int{0},
				IsActive:         true,
			},
		}

		verdicts := EvaluateRestrictions(twoWindows(), rules, []string{"junior"}, false)
		require.True(t, verdicts[0].IsFullyRestricted)
		require.Len(t, verdicts[0].Reasons, 1)
		require.False(t, verdicts[1].IsFullyRestricted)

		// Другой класс не затронут
		verdicts = EvaluateRestrictions(twoWindows(), rules, []string{"premium"}, false)
		require.False(t, verdicts[0].IsFullyRestricted)
	})

	t.Run("reasons accumulate across rules", func(t *testing.T) {
		rules := []RestrictionRule{
			{
				ID:           1,
				Category:     RuleCategoryMemberClass,
				Name:         "правило А",
				AppliesToAll: true,
				WindowScope:  []int{0},
				IsActive:     true,
			},
			{
				ID:           2,
				Category:     RuleCategoryMemberClass,
				Name:         "правило Б",
				AppliesToAll: true,
				WindowScope:  []int{0, 1},
				IsActive:     true,
			},
		}

		verdicts := EvaluateRestrictions(twoWindows(), rules, []string{"standard"}, false)
		require.True(t, verdicts[0].IsFullyRestricted)
		require.Len(t, verdicts[0].Reasons, 2)
		require.True(t, verdicts[1].IsFullyRestricted)
		require.Len(t, verdicts[1].Reasons, 1)
	})

	t.Run("guest party bypasses no-guest rule", func(t *testing.T) {
		rules := []RestrictionRule{
			{
				ID:               1,
				Category:         RuleCategoryMemberClass,
				Name:             "без гостей в утренние окна",
				AppliesToAll:     true,
				RequiresNoGuests: true,
				WindowScope:      []int{0},
				IsActive:         true,
			},
		}

		verdicts := EvaluateRestrictions(twoWindows(), rules, []string{"standard"}, true)
		require.False(t, verdicts[0].IsFullyRestricted)

		verdicts = EvaluateRestrictions(twoWindows(), rules, []string{"standard"}, false)
		require.True(t, verdicts[0].IsFullyRestricted)
	})

	t.Run("frequency rules do not close windows", func(t *testing.T) {
		rules := []RestrictionRule{
			{
				ID:              1,
				Category:        RuleCategoryFrequency,
				Name:            "лимит игр",
				AppliesToAll:    true,
				ScopeAllWindows: true,
				MaxCount:        ptr.Ptr(2),
				PeriodDays:      ptr.Ptr(7),
				IsActive:        true,
			},
		}

		verdicts := EvaluateRestrictions(twoWindows(), rules, []string{"standard"}, false)
		require.False(t, verdicts[0].IsFullyRestricted)
		require.False(t, verdicts[1].IsFullyRestricted)
	})
}

func TestEvaluateFrequencyRule(t *testing.T) {
	t.Parallel()

	rule := RestrictionRule{
		ID:         7,
		Category:   RuleCategoryFrequency,
		Name:       "не больше двух игр в неделю",
		MaxCount:   ptr.Ptr(2),
		PeriodDays: ptr.Ptr(7),
		IsActive:   true,
	}

	check := EvaluateFrequencyRule(&rule, 2)
	require.NotNil(t, check)
	require.False(t, check.Exceeded)

	check = EvaluateFrequencyRule(&rule, 3)
	require.NotNil(t, check)
	require.True(t, check.Exceeded)
	require.Equal(t, 3, check.Counted)
	require.Equal(t, 2, check.MaxCount)

	// Правило другой категории не оценивается
	classRule := RestrictionRule{Category: RuleCategoryMemberClass, IsActive: true}
	require.Nil(t, EvaluateFrequencyRule(&classRule, 5))

	// Неактивное правило не оценивается
	inactive := rule
	inactive.IsActive = false
	require.Nil(t, EvaluateFrequencyRule(&inactive, 5))
}
