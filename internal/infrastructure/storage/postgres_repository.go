package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"SEOScorer/internal/domain"
	"SEOScorer/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository reads historical article performance and persists
// learned weight tables.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.SampleSource = (*PostgresRepository)(nil)
var _ ports.WeightStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FetchSamples loads every (checklist, avg_position) pair recorded for the
// workspace. Rows with a NULL position are still returned; the learner
// discards them as invalid.
func (r *PostgresRepository) FetchSamples(ctx context.Context, workspaceID uuid.UUID) ([]domain.TrainingSample, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := psql.
		Select("seo_checklist", "avg_position").
		From("article_performance").
		Where(sq.Eq{"workspace_id": workspaceID}).
		Where(sq.NotEq{"seo_checklist": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build samples query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []domain.TrainingSample
	for rows.Next() {
		var (
			rawChecklist []byte
			avgPosition  sql.NullFloat64
		)
		if err := rows.Scan(&rawChecklist, &avgPosition); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}

		sample := domain.TrainingSample{Checklist: decodeChecklist(rawChecklist)}
		if avgPosition.Valid {
			position := avgPosition.Float64
			sample.AvgPosition = &position
		}
		samples = append(samples, sample)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return samples, nil
}

// SaveWeights upserts the workspace's learned weight table.
func (r *PostgresRepository) SaveWeights(ctx context.Context, workspaceID uuid.UUID, weights domain.WeightTable) error {
	if r.db == nil {
		return nil
	}

	body, err := json.Marshal(weights)
	if err != nil {
		return fmt.Errorf("marshal weights: %w", err)
	}

	query, args, err := psql.
		Insert("workspace_weights").
		Columns("workspace_id", "weights").
		Values(workspaceID, body).
		Suffix(`ON CONFLICT (workspace_id) DO UPDATE
                SET weights = EXCLUDED.weights,
                    updated_at = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build weights upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert weights: %w", err)
	}

	return nil
}

// LoadWeights returns the workspace's stored table, or an empty table when
// none has been persisted yet.
func (r *PostgresRepository) LoadWeights(ctx context.Context, workspaceID uuid.UUID) (domain.WeightTable, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := psql.
		Select("weights").
		From("workspace_weights").
		Where(sq.Eq{"workspace_id": workspaceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build weights query: %w", err)
	}

	var body []byte
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query weights: %w", err)
	}

	var weights domain.WeightTable
	if err := json.Unmarshal(body, &weights); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}

	return weights, nil
}

// ListWorkspaces returns every workspace with recorded performance data.
func (r *PostgresRepository) ListWorkspaces(ctx context.Context) ([]uuid.UUID, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := psql.
		Select("DISTINCT workspace_id").
		From("article_performance").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build workspaces query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan workspace id: %w", err)
		}
		workspaces = append(workspaces, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return workspaces, nil
}

// decodeChecklist tolerates booleans and numbers in stored checklists; a
// positive number counts as passing, anything unreadable as failing.
func decodeChecklist(raw []byte) map[string]bool {
	if len(raw) == 0 {
		return nil
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}

	checklist := make(map[string]bool, len(values))
	for name, value := range values {
		switch v := value.(type) {
		case bool:
			checklist[name] = v
		case float64:
			checklist[name] = v > 0
		default:
			checklist[name] = false
		}
	}
	return checklist
}
