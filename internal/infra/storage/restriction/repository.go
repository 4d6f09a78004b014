package restriction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/dbmetrics"
	"github.com/fairwaylab/GC-LotteryService/pkg/psqlbuilder"
)

// Repository read-only репозиторий правил ограничений
// Правила задаются конфигурационной подсистемой клуба; ядро их только читает
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveRules получает все активные правила ограничений
func (r *Repository) GetActiveRules(ctx context.Context) ([]domain.RestrictionRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"category",
		"name",
		"applies_to_all",
		"applies_to_classes",
		"scope_all_windows",
		"window_scope",
		"requires_no_guests",
		"max_count",
		"period_days",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("restriction_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.RestrictionRule, 0)
	for rows.Next() {
		var rule domain.RestrictionRule
		var classes pq.StringArray
		var windowScope pq.Int64Array
		var maxCount, periodDays sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.Category,
			&rule.Name,
			&rule.AppliesToAll,
			&classes,
			&rule.ScopeAllWindows,
			&windowScope,
			&rule.RequiresNoGuests,
			&maxCount,
			&periodDays,
			&rule.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveRules - scan rule: %v", ErrScanRow, err)
		}

		rule.AppliesToClasses = []string(classes)
		rule.WindowScope = make([]int, 0, len(windowScope))
		for _, idx := range windowScope {
			rule.WindowScope = append(rule.WindowScope, int(idx))
		}
		if maxCount.Valid {
			count := int(maxCount.Int64)
			rule.MaxCount = &count
		}
		if periodDays.Valid {
			days := int(periodDays.Int64)
			rule.PeriodDays = &days
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
