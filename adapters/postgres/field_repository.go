package postgres

import (
	"context"
	"fmt"

	"goregress/domain/core"
	"goregress/domain/field"
	"goregress/ports"

	"github.com/jmoiron/sqlx"
)

// fieldRepository implements the FieldRepository interface
type fieldRepository struct {
	db *sqlx.DB
}

// NewFieldRepository creates a new field-metadata repository
func NewFieldRepository(db *sqlx.DB) ports.FieldRepository {
	return &fieldRepository{db: db}
}

// ListFields returns the field metadata recorded for a dataset, in the order
// the dataset's columns were profiled.
func (r *fieldRepository) ListFields(ctx context.Context, projectID, datasetID core.ID) ([]field.Field, error) {
	query := `SELECT name, general_type, is_unique
		FROM field_properties
		WHERE project_id = $1 AND dataset_id = $2
		ORDER BY ordinal`

	rows, err := r.db.QueryContext(ctx, query, projectID, datasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list field properties: %w", err)
	}
	defer rows.Close()

	var fields []field.Field
	for rows.Next() {
		var name, generalType string
		var isUnique bool
		if err := rows.Scan(&name, &generalType, &isUnique); err != nil {
			return nil, fmt.Errorf("failed to scan field properties row: %w", err)
		}
		gt, err := field.ParseGeneralType(generalType)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, field.Field{Name: name, GeneralType: gt, IsUnique: isUnique})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read field properties: %w", err)
	}
	return fields, nil
}
