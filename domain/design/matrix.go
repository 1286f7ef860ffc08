package design

import (
	"fmt"
	"sort"

	"goregress/domain/core"
	"goregress/domain/field"
	"goregress/domain/frame"

	"gonum.org/v1/gonum/mat"
)

// InterceptName is the parameter name of the intercept column.
const InterceptName = "Intercept"

// Matrix is the numeric predictor matrix X and response vector Y built from a
// model specification and a frame. Categorical predictors are expanded into
// one indicator column per non-reference level; the reference level (the
// lexicographically first) is absorbed into the intercept.
type Matrix struct {
	// Names holds one parameter name per column of X, intercept first.
	// Indicator columns are named base[T.level].
	Names []string
	X     *mat.Dense
	Y     []float64
	// Levels maps each categorical term to its non-reference levels in
	// column order.
	Levels map[string][]string
	// ResponseLevels is set when the dependent field is categorical: the
	// sorted level names whose indices encode Y.
	ResponseLevels []string
}

// ParamNames returns the non-intercept parameter names in column order.
func (m *Matrix) ParamNames() []string {
	out := make([]string, 0, len(m.Names)-1)
	for _, name := range m.Names {
		if name == InterceptName {
			continue
		}
		out = append(out, name)
	}
	return out
}

// EncodeLevelName renders the indicator-column name for a categorical level.
func EncodeLevelName(base, level string) string {
	return fmt.Sprintf("%s[T.%s]", base, level)
}

// Build expands a dependent field and an ordered set of terms against a frame.
// Column ordering is deterministic: intercept, then terms in specification
// order, categorical levels sorted lexicographically within a term.
func Build(f *frame.Frame, dependent field.Field, terms []field.Field) (*Matrix, error) {
	n := f.RowCount()
	if n == 0 {
		return nil, fmt.Errorf("%w: frame has no rows", core.ErrInsufficientData)
	}

	y, responseLevels, err := buildResponse(f, dependent)
	if err != nil {
		return nil, err
	}

	names := []string{InterceptName}
	columns := [][]float64{ones(n)}
	levels := make(map[string][]string)

	for _, term := range terms {
		if !f.HasColumn(term.Name) {
			return nil, core.NewDesignMatrixError(term.Name, "not present in dataframe")
		}
		switch term.GeneralType {
		case field.Categorical:
			termLevels, indicators, err := expandCategorical(f, term.Name)
			if err != nil {
				return nil, err
			}
			levels[term.Name] = termLevels
			for i, level := range termLevels {
				names = append(names, EncodeLevelName(term.Name, level))
				columns = append(columns, indicators[i])
			}
		case field.Temporal:
			col, err := f.Temporal(term.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrDesignMatrix, err)
			}
			names = append(names, term.Name)
			columns = append(columns, col)
		default:
			col, err := f.Numeric(term.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", core.ErrDesignMatrix, err)
			}
			names = append(names, term.Name)
			columns = append(columns, col)
		}
	}

	x := mat.NewDense(n, len(columns), nil)
	for j, col := range columns {
		x.SetCol(j, col)
	}

	return &Matrix{
		Names:          names,
		X:              x,
		Y:              y,
		Levels:         levels,
		ResponseLevels: responseLevels,
	}, nil
}

func buildResponse(f *frame.Frame, dependent field.Field) ([]float64, []string, error) {
	if !f.HasColumn(dependent.Name) {
		return nil, nil, core.NewDesignMatrixError(dependent.Name, "not present in dataframe")
	}
	switch dependent.GeneralType {
	case field.Categorical:
		raw, err := f.Strings(dependent.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", core.ErrDesignMatrix, err)
		}
		levels := sortedDistinct(raw)
		if len(levels) < 2 {
			return nil, nil, core.NewDesignMatrixError(dependent.Name, "has fewer than two levels")
		}
		codes := make(map[string]float64, len(levels))
		for i, level := range levels {
			codes[level] = float64(i)
		}
		y := make([]float64, len(raw))
		for i, cell := range raw {
			y[i] = codes[cell]
		}
		return y, levels, nil
	case field.Temporal:
		y, err := f.Temporal(dependent.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", core.ErrDesignMatrix, err)
		}
		return y, nil, nil
	default:
		y, err := f.Numeric(dependent.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", core.ErrDesignMatrix, err)
		}
		return y, nil, nil
	}
}

// expandCategorical returns the non-reference levels of a column and one
// indicator vector per level.
func expandCategorical(f *frame.Frame, name string) ([]string, [][]float64, error) {
	raw, err := f.Strings(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", core.ErrDesignMatrix, err)
	}
	levels := sortedDistinct(raw)
	if len(levels) < 2 {
		return nil, nil, core.NewDesignMatrixError(name, "has fewer than two levels")
	}

	// First sorted level is the reference and gets no column.
	encoded := levels[1:]
	indicators := make([][]float64, len(encoded))
	for i, level := range encoded {
		col := make([]float64, len(raw))
		for r, cell := range raw {
			if cell == level {
				col[r] = 1
			}
		}
		indicators[i] = col
	}
	return encoded, indicators, nil
}

func sortedDistinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func ones(n int) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = 1
	}
	return col
}
