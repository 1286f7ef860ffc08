package ports

import (
	"context"

	"goregress/domain/core"
	"goregress/domain/frame"
)

// FrameLoader materializes a dataset's tabular data.
type FrameLoader interface {
	Load(ctx context.Context, projectID, datasetID core.ID) (*frame.Frame, error)
}
