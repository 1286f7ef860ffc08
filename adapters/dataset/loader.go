package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"goregress/domain/core"
	"goregress/domain/frame"
	"goregress/ports"

	"github.com/jmoiron/sqlx"
)

// Record is a row of the datasets table: where a project's uploaded
// data lives on disk and how to parse it.
type Record struct {
	ID        core.ID   `db:"id"`
	ProjectID core.ID   `db:"project_id"`
	Title     string    `db:"title"`
	FilePath  string    `db:"file_path"`
	FileType  string    `db:"file_type"`
	CreatedAt time.Time `db:"created_at"`
}

// Loader resolves a dataset record through the database and reads the
// backing file into a frame.
type Loader struct {
	db *sqlx.DB
}

// NewLoader creates a dataset-backed frame loader.
func NewLoader(db *sqlx.DB) ports.FrameLoader {
	return &Loader{db: db}
}

func (l *Loader) Load(ctx context.Context, projectID, datasetID core.ID) (*frame.Frame, error) {
	query := `SELECT id, project_id, title, file_path, COALESCE(file_type, '') AS file_type, created_at
		FROM datasets WHERE id = $1 AND project_id = $2`

	var rec Record
	if err := l.db.GetContext(ctx, &rec, query, datasetID, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: dataset %s", core.ErrDatasetNotFound, datasetID)
		}
		return nil, fmt.Errorf("failed to resolve dataset %s: %w", datasetID, err)
	}

	return ReadFile(rec.FilePath, rec.FileType)
}

// ReadFile parses a CSV or XLSX file into a frame. When fileType is
// empty the file extension decides.
func ReadFile(path, fileType string) (*frame.Frame, error) {
	if fileType == "" {
		fileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	switch fileType {
	case "csv", "tsv":
		return readCSV(path, fileType)
	case "xlsx":
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset file type: %q", fileType)
	}
}
