package regression

import (
	"encoding/json"
	"time"

	"goregress/domain/core"
)

// Record is one persisted regression result, keyed by (project, spec). A new
// run for an identical spec replaces the prior record rather than merging.
type Record struct {
	ID        core.ID         `json:"id" db:"id"`
	ProjectID core.ID         `json:"project_id" db:"project_id"`
	Spec      json.RawMessage `json:"spec" db:"spec"`
	Result    json.RawMessage `json:"result" db:"result"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
