package ports

import (
	"context"

	"goregress/domain/core"
	"goregress/domain/field"
)

// FieldRepository loads the field metadata records known for a dataset.
type FieldRepository interface {
	ListFields(ctx context.Context, projectID, datasetID core.ID) ([]field.Field, error)
}
