package dayconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/dbmetrics"
	"github.com/fairwaylab/GC-LotteryService/pkg/psqlbuilder"
)

// Repository репозиторий конфигурации операционного дня
// Клуб держит одну действующую конфигурацию; история изменений не хранится
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает действующую конфигурацию дня
func (r *Repository) Get(ctx context.Context) (*domain.DayConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"open_time",
		"close_time",
		"slot_interval_minutes",
		"max_occupants_per_slot",
		"window_duration_minutes",
		"created_at",
		"updated_at",
	).
		From("day_configs").
		OrderBy("id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.DayConfig
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.SlotIntervalMinutes,
		&cfg.MaxOccupantsPerSlot,
		&cfg.WindowDurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

// Upsert сохраняет конфигурацию дня, заменяя предыдущую
func (r *Repository) Upsert(ctx context.Context, cfg *domain.DayConfig) (*domain.DayConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("day_configs").
		Columns(
			"open_time",
			"close_time",
			"slot_interval_minutes",
			"max_occupants_per_slot",
			"window_duration_minutes",
		).
		Values(
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.SlotIntervalMinutes,
			cfg.MaxOccupantsPerSlot,
			cfg.WindowDurationMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time
	return cfg, nil
}
