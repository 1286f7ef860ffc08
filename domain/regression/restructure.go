package regression

import (
	"strings"
)

// SplitParameterName parses the categorical encoding out of a design-matrix
// parameter name: "department[T.Engineering]" -> ("department",
// "Engineering", true); a plain field name returns (name, "", false).
func SplitParameterName(name string) (base, level string, ok bool) {
	i := strings.Index(name, "[")
	if i < 0 || !strings.HasSuffix(name, "]") {
		return name, "", false
	}
	base = name[:i]
	level = strings.TrimSuffix(name[i+1:], "]")
	level = strings.TrimPrefix(level, "T.")
	return base, level, true
}

// Restructure pivots the per-statistic-type mappings into one record per
// parameter and aggregates categorical level values under their base field.
// It iterates paramOrder (the design matrix's own column ordering) rather
// than the unordered statistic maps, so the output and the level aggregation
// order are deterministic. Pure function: calling it twice on the same input
// yields identical output.
func Restructure(stats RawStats, paramOrder []string) ([]FieldProperties, map[string][]string) {
	props := make([]FieldProperties, 0, len(paramOrder))
	categorical := make(map[string][]string)

	for _, name := range paramOrder {
		fp := FieldProperties{
			Field:         name,
			BaseField:     name,
			PValue:        stats.PValues[name],
			TValue:        stats.TValues[name],
			Coefficient:   stats.Coefficients[name],
			StandardError: stats.StandardErrors[name],
		}
		if ci, ok := stats.ConfIntervals[name]; ok {
			interval := ci
			fp.ConfInt = &interval
		}
		if base, level, ok := SplitParameterName(name); ok {
			fp.BaseField = base
			value := level
			fp.ValueField = &value
			categorical[base] = append(categorical[base], level)
		}
		props = append(props, fp)
	}

	return props, categorical
}
