package field

import (
	"fmt"

	"goregress/domain/core"
)

// Resolution maps the requested variable names onto field metadata records.
// Unmatched carries any independent-variable names that did not resolve so
// callers can surface typos instead of silently swallowing them.
type Resolution struct {
	Dependent   Field
	Independent []Field
	Unmatched   []string
}

// Resolve looks up the dependent and independent variables in the project's
// known fields. An unresolvable dependent variable is an error: the pipeline
// must never regress against a missing response column.
//
// When no independent variables are requested, every field is selected except
// the dependent variable itself and uniquely-valued categorical fields (row
// identifiers carry no regression signal).
func Resolve(dependentName string, independentNames []string, all []Field) (*Resolution, error) {
	byName := make(map[string]Field, len(all))
	for _, f := range all {
		byName[f.Name] = f
	}

	dep, ok := byName[dependentName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownDependentField, dependentName)
	}

	res := &Resolution{Dependent: dep}

	if len(independentNames) > 0 {
		for _, name := range independentNames {
			f, ok := byName[name]
			if !ok {
				res.Unmatched = append(res.Unmatched, name)
				continue
			}
			res.Independent = append(res.Independent, f)
		}
		return res, nil
	}

	for _, f := range all {
		if f.Name == dependentName {
			continue
		}
		if f.GeneralType == Categorical && f.IsUnique {
			continue
		}
		res.Independent = append(res.Independent, f)
	}
	return res, nil
}
