package entry

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

var entryColumns = []string{
	"id",
	"type",
	"organizer_id",
	"lottery_date",
	"member_ids",
	"guest_ids",
	"guest_fill_count",
	"preferred_window",
	"alternate_window",
	"status",
	"submission_time",
	"assigned_slot_id",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками розыгрыша
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("lottery_entries").
		Columns(
			"type",
			"organizer_id",
			"lottery_date",
			"member_ids",
			"guest_ids",
			"guest_fill_count",
			"preferred_window",
			"alternate_window",
			"status",
			"submission_time",
			"notes",
		).
		Values(
			e.Type,
			e.OrganizerID,
			e.LotteryDate,
			pq.Array(e.MemberIDs),
			pq.Array(e.GuestIDs),
			e.GuestFillCount,
			e.PreferredWindow,
			e.AlternateWindow,
			e.Status,
			e.SubmissionTime,
			e.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&e.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time
	e.UpdatedAt = updatedAt.Time

	return e, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("lottery_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEntryNotFound
	}
	return entries[0], nil
}

// GetWithFilter получает заявки с гибкой фильтрацией по дате, участнику и статусу.
//
// Внутри транзакции при фильтре по конкретной дате добавляет FOR UPDATE:
// обработка розыгрыша и создание заявок зависят от согласованного чтения
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.EntriesFilter) ([]*domain.Entry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("lottery_entries")

	if filter.LotteryDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"lottery_date": *filter.LotteryDate})
	}

	// Участник входит в заявку, если его ID есть в массиве member_ids
	if filter.MemberID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("? = ANY(member_ids)", *filter.MemberID))
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.EntryStatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("submission_time ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.LotteryDate != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// AssignmentUpdate обновление назначения одной заявки
type AssignmentUpdate struct {
	EntryID int64
	SlotID  *int64
	Status  domain.EntryStatus
}

// ApplyAssignments применяет пакет обновлений назначений
// Вызывается только внутри транзакции (коммит результата движка или расстановки)
func (r *Repository) ApplyAssignments(ctx context.Context, updates []AssignmentUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, u := range updates {
		query, args, err := psqlbuilder.Update("lottery_entries").
			Set("assigned_slot_id", u.SlotID).
			Set("status", u.Status).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": u.EntryID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ApplyAssignments - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: ApplyAssignments - execute update: %v", ErrExecQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: ApplyAssignments - rows affected: %v", ErrExecQuery, err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: ApplyAssignments - entry id=%d", ErrEntryNotFound, u.EntryID)
		}
	}

	return nil
}

// Cancel отменяет заявку
// Отменить можно только заявку в статусе pending; отмена терминальна
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lottery_entries").
		Set("status", domain.EntryStatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.EntryStatusPending,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		// Либо заявки нет, либо она уже не pending
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrCannotCancel
	}

	return nil
}

// ResetForDate возвращает все обработанные заявки даты в статус pending
// и очищает назначенные слоты. Используется перед повторным розыгрышем
func (r *Repository) ResetForDate(ctx context.Context, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("lottery_entries").
		Set("status", domain.EntryStatusPending).
		Set("assigned_slot_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"lottery_date": date,
			"status":       []string{string(domain.EntryStatusProcessing), string(domain.EntryStatusAssigned)},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: ResetForDate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ResetForDate - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ResetForDate - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// CountMemberEntriesInPeriod считает заявки члена клуба за скользящий период
// periodDays дней, заканчивающийся датой endDate включительно.
// Используется для frequency-правил при чек-ине (платный сигнал, не блокировка)
func (r *Repository) CountMemberEntriesInPeriod(ctx context.Context, memberID int64, endDate time.Time, periodDays int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	startDate := endDate.AddDate(0, 0, -periodDays+1)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("lottery_entries").
		Where(squirrel.Expr("? = ANY(member_ids)", memberID)).
		Where(squirrel.GtOrEq{"lottery_date": startDate}).
		Where(squirrel.LtOrEq{"lottery_date": endDate}).
		Where(squirrel.NotEq{"status": string(domain.EntryStatusCancelled)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountMemberEntriesInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountMemberEntriesInPeriod - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// scanEntries сканирует строки результата в список заявок
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.Entry, error) {
	entries := make([]*domain.Entry, 0)

	for rows.Next() {
		var e domain.Entry
		var memberIDs, guestIDs pq.Int64Array
		var alternateWindow sql.NullInt64
		var assignedSlotID sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.Type,
			&e.OrganizerID,
			&e.LotteryDate,
			&memberIDs,
			&guestIDs,
			&e.GuestFillCount,
			&e.PreferredWindow,
			&alternateWindow,
			&e.Status,
			&e.SubmissionTime,
			&assignedSlotID,
			&e.Notes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries: %v", ErrScanRow, err)
		}

		e.MemberIDs = []int64(memberIDs)
		e.GuestIDs = []int64(guestIDs)
		if alternateWindow.Valid {
			window := int(alternateWindow.Int64)
			e.AlternateWindow = &window
		}
		if assignedSlotID.Valid {
			slotID := assignedSlotID.Int64
			e.AssignedSlotID = &slotID
		}
		e.CreatedAt = createdAt.Time
		e.UpdatedAt = updatedAt.Time

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
