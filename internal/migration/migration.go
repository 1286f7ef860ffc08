package migration

import (
	"context"

	"goregress/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createDatasetsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create datasets table")
	}

	if err := r.createFieldPropertiesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create field_properties table")
	}

	if err := r.createRegressionsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create regressions table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createDatasetsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL,
			title VARCHAR(255) NOT NULL DEFAULT '',
			file_path TEXT NOT NULL,
			file_type VARCHAR(10),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createFieldPropertiesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS field_properties (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL,
			dataset_id UUID NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			general_type VARCHAR(20) NOT NULL,
			is_unique BOOLEAN NOT NULL DEFAULT false,
			ordinal INTEGER NOT NULL DEFAULT 0,
			UNIQUE (dataset_id, name)
		)
	`)
	return err
}

func (r *MigrationRunner) createRegressionsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS regressions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			project_id UUID NOT NULL,
			spec JSONB NOT NULL,
			result JSONB NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_datasets_project ON datasets(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_field_properties_dataset ON field_properties(project_id, dataset_id)`,
		`CREATE INDEX IF NOT EXISTS idx_regressions_project ON regressions(project_id)`,
		`CREATE INDEX IF NOT EXISTS idx_regressions_spec ON regressions(project_id, spec)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
