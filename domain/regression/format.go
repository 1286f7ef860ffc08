package regression

import (
	"goregress/domain/field"
)

// Format assembles the final response from the candidate outcomes.
//
// The field->levels index is seeded with every independent field name mapped
// to nil, so the original request's field ordering survives even for fields
// absent from every candidate model. Failed or no-op candidates still emit an
// entry (with an empty regression block) so num_columns always equals the
// number of candidate specifications.
func Format(outcomes []ModelOutcome, independent []field.Field, considered [][]field.Field) *FinalResult {
	fieldOrder := field.Names(independent)
	fieldValues := make(map[string][]string, len(fieldOrder))
	for _, name := range fieldOrder {
		fieldValues[name] = nil
	}

	result := &FinalResult{
		RegressionsByColumn: make([]ColumnRegression, 0, len(outcomes)),
		NumColumns:          len(outcomes),
	}

	for i, out := range outcomes {
		entry := ColumnRegression{}
		if i < len(considered) {
			entry.RegressedFields = field.Names(considered[i])
		}

		if out.Result != nil {
			for name, values := range out.Result.CategoricalFieldValues {
				fieldValues[name] = values
			}
			constants := out.Result.Constants
			entry.Regression = RegressionBlock{
				Constants:         &constants,
				PropertiesByField: out.Result.PropertiesByField,
			}
			if out.Result.Residuals != nil {
				entry.Regression.Stats = FitDiagnostics(out.Result.Residuals)
			}
			entry.ColumnProperties = out.Result.ModelStats
		}

		result.RegressionsByColumn = append(result.RegressionsByColumn, entry)
	}

	result.Fields = make([]FieldValues, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		result.Fields = append(result.Fields, FieldValues{Name: name, Values: fieldValues[name]})
	}

	return result
}
