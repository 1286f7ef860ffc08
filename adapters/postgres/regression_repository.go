package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"goregress/domain/core"
	"goregress/domain/regression"
	"goregress/ports"

	"github.com/jmoiron/sqlx"
)

// regressionRepository implements the RegressionRepository interface
type regressionRepository struct {
	db *sqlx.DB
}

// NewRegressionRepository creates a new regression-result repository
func NewRegressionRepository(db *sqlx.DB) ports.RegressionRepository {
	return &regressionRepository{db: db}
}

const regressionColumns = `id, project_id, spec, result, created_at`

// GetBySpec returns the stored record whose spec matches exactly, or nil
// when this spec has not been computed before.
func (r *regressionRepository) GetBySpec(ctx context.Context, projectID core.ID, spec []byte) (*regression.Record, error) {
	query := `SELECT ` + regressionColumns + `
		FROM regressions WHERE project_id = $1 AND spec = $2::jsonb`

	var rec regression.Record
	if err := r.db.GetContext(ctx, &rec, query, projectID, spec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up regression by spec: %w", err)
	}
	return &rec, nil
}

func (r *regressionRepository) GetByID(ctx context.Context, projectID, id core.ID) (*regression.Record, error) {
	query := `SELECT ` + regressionColumns + `
		FROM regressions WHERE project_id = $1 AND id = $2`

	var rec regression.Record
	if err := r.db.GetContext(ctx, &rec, query, projectID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: regression %s", core.ErrRegressionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get regression %s: %w", id, err)
	}
	return &rec, nil
}

func (r *regressionRepository) Delete(ctx context.Context, projectID, id core.ID) error {
	query := `DELETE FROM regressions WHERE project_id = $1 AND id = $2`

	if _, err := r.db.ExecContext(ctx, query, projectID, id); err != nil {
		return fmt.Errorf("failed to delete regression %s: %w", id, err)
	}
	return nil
}

func (r *regressionRepository) Insert(ctx context.Context, rec *regression.Record) error {
	query := `INSERT INTO regressions (id, project_id, spec, result, created_at)
		VALUES ($1, $2, $3::jsonb, $4::jsonb, $5)`

	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.ProjectID, []byte(rec.Spec), []byte(rec.Result), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert regression %s: %w", rec.ID, err)
	}
	return nil
}
