package ports

import (
	"context"

	"goregress/domain/core"
	"goregress/domain/regression"
)

// RegressionRepository persists computed regression results. One record per
// distinct (project, spec); the service deletes a prior record for the same
// spec before inserting the new one.
type RegressionRepository interface {
	// GetBySpec returns the stored record for an identical spec, or nil when
	// none exists.
	GetBySpec(ctx context.Context, projectID core.ID, spec []byte) (*regression.Record, error)
	GetByID(ctx context.Context, projectID, id core.ID) (*regression.Record, error)
	Delete(ctx context.Context, projectID, id core.ID) error
	Insert(ctx context.Context, rec *regression.Record) error
}
