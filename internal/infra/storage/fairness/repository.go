package fairness

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/fairwaylab/GC-LotteryService/pkg/dbmetrics"
	"github.com/fairwaylab/GC-LotteryService/pkg/psqlbuilder"
)

// Repository репозиторий баллов удачи
// Балл отсутствующего в таблице члена клуба считается нулевым
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория баллов удачи
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetScores получает баллы удачи указанных членов клуба
// Для членов без записи возвращается 0
func (r *Repository) GetScores(ctx context.Context, memberIDs []int64) (map[int64]int, error) {
	scores := make(map[int64]int, len(memberIDs))
	for _, id := range memberIDs {
		scores[id] = 0
	}
	if len(memberIDs) == 0 {
		return scores, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("member_id", "score").
		From("fairness_scores").
		Where(squirrel.Expr("member_id = ANY(?)", pq.Array(memberIDs))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetScores - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetScores - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID int64
		var score int
		if err := rows.Scan(&memberID, &score); err != nil {
			return nil, fmt.Errorf("%w: GetScores - scan score: %v", ErrScanRow, err)
		}
		scores[memberID] = score
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetScores - rows error: %v", ErrScanRow, err)
	}

	return scores, nil
}

// UpsertScores сохраняет обновленные баллы удачи батчем
// Порядок обновлений детерминирован (по member_id), чтобы избежать взаимных блокировок
func (r *Repository) UpsertScores(ctx context.Context, scores map[int64]int) error {
	if len(scores) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	memberIDs := make([]int64, 0, len(scores))
	for memberID := range scores {
		memberIDs = append(memberIDs, memberID)
	}
	sort.Slice(memberIDs, func(i, j int) bool { return memberIDs[i] < memberIDs[j] })

	insertBuilder := psqlbuilder.Insert("fairness_scores").
		Columns("member_id", "score")
	for _, memberID := range memberIDs {
		insertBuilder = insertBuilder.Values(memberID, scores[memberID])
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (member_id) DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertScores - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertScores - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
