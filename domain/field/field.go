package field

import (
	"fmt"
)

// GeneralType is a field's coarse measurement classification, used to pick a
// regression family. Stored with the same single-letter codes the metadata
// profiler emits.
type GeneralType string

const (
	Quantitative GeneralType = "q"
	Categorical  GeneralType = "c"
	Temporal     GeneralType = "t"
)

// ParseGeneralType accepts both the short metadata codes and the spelled-out
// names used in API payloads.
func ParseGeneralType(s string) (GeneralType, error) {
	switch s {
	case "q", "quantitative":
		return Quantitative, nil
	case "c", "categorical":
		return Categorical, nil
	case "t", "temporal":
		return Temporal, nil
	}
	return "", fmt.Errorf("unknown general type %q", s)
}

// Field identifies a dataset column. Immutable for the duration of a request.
type Field struct {
	Name        string      `json:"name"`
	GeneralType GeneralType `json:"general_type"`
	IsUnique    bool        `json:"is_unique"`
}

// Names returns the field names in order.
func Names(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
