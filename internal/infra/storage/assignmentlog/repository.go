package assignmentlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fairwaylab/GC-LotteryService/internal/domain"
	"github.com/fairwaylab/GC-LotteryService/pkg/dbmetrics"
	"github.com/fairwaylab/GC-LotteryService/pkg/psqlbuilder"
)

// Repository репозиторий журнала распределения
// Записи создаются один раз за прогон движка и никогда не изменяются
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет все записи журнала одного прогона
func (r *Repository) CreateBatch(ctx context.Context, logEntries []domain.AssignmentLogEntry) error {
	if len(logEntries) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("assignment_log").
		Columns(
			"run_id",
			"lottery_date",
			"entry_id",
			"entry_type",
			"reason",
			"final_slot_id",
			"fairness_before",
			"fairness_after",
			"violated_restrictions",
		)
	for _, logEntry := range logEntries {
		insertBuilder = insertBuilder.Values(
			logEntry.RunID,
			logEntry.LotteryDate,
			logEntry.EntryID,
			logEntry.EntryType,
			logEntry.Reason,
			logEntry.FinalSlotID,
			logEntry.FairnessBefore,
			logEntry.FairnessAfter,
			pq.Array(logEntry.ViolatedRestrictions),
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByDate получает журнал распределения по дате розыгрыша
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]domain.AssignmentLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"run_id",
		"lottery_date",
		"entry_id",
		"entry_type",
		"reason",
		"final_slot_id",
		"fairness_before",
		"fairness_after",
		"violated_restrictions",
		"created_at",
	).
		From("assignment_log").
		Where(squirrel.Eq{"lottery_date": date}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	logEntries := make([]domain.AssignmentLogEntry, 0)
	for rows.Next() {
		var logEntry domain.AssignmentLogEntry
		var finalSlotID sql.NullInt64
		var violated pq.StringArray
		var createdAt sql.NullTime

		err := rows.Scan(
			&logEntry.ID,
			&logEntry.RunID,
			&logEntry.LotteryDate,
			&logEntry.EntryID,
			&logEntry.EntryType,
			&logEntry.Reason,
			&finalSlotID,
			&logEntry.FairnessBefore,
			&logEntry.FairnessAfter,
			&violated,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan log entry: %v", ErrScanRow, err)
		}

		if finalSlotID.Valid {
			slotID := finalSlotID.Int64
			logEntry.FinalSlotID = &slotID
		}
		logEntry.ViolatedRestrictions = []string(violated)
		logEntry.CreatedAt = createdAt.Time

		logEntries = append(logEntries, logEntry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return logEntries, nil
}
