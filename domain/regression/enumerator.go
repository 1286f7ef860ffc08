package regression

import (
	"fmt"

	"goregress/domain/field"
)

// FullModelEnumerator produces a single candidate regressing the dependent
// variable on every independent field.
type FullModelEnumerator struct{}

func (FullModelEnumerator) Enumerate(dep field.Field, indep []field.Field) ([][]field.Field, []ModelSpec, error) {
	terms := make([]field.Field, len(indep))
	copy(terms, indep)
	considered := [][]field.Field{terms}
	specs := []ModelSpec{{Dependent: dep, Terms: terms}}
	return considered, specs, nil
}

// AllSubsetsEnumerator produces one candidate model per non-empty subset of
// the independent fields, in deterministic order: smaller subsets first,
// ties broken by field position. MaxVars bounds the combinatorial blowup.
type AllSubsetsEnumerator struct {
	MaxVars int
}

func (e AllSubsetsEnumerator) Enumerate(dep field.Field, indep []field.Field) ([][]field.Field, []ModelSpec, error) {
	n := len(indep)
	if n == 0 {
		return nil, nil, fmt.Errorf("no independent fields to enumerate")
	}
	maxVars := e.MaxVars
	if maxVars <= 0 {
		maxVars = 8
	}
	if n > maxVars {
		return nil, nil, fmt.Errorf("%d independent fields exceed the all-subsets limit of %d", n, maxVars)
	}

	var considered [][]field.Field
	var specs []ModelSpec
	for size := 1; size <= n; size++ {
		for mask := 1; mask < 1<<n; mask++ {
			if popcount(mask) != size {
				continue
			}
			var subset []field.Field
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					subset = append(subset, indep[i])
				}
			}
			considered = append(considered, subset)
			specs = append(specs, ModelSpec{Dependent: dep, Terms: subset})
		}
	}
	return considered, specs, nil
}

func popcount(v int) int {
	count := 0
	for v != 0 {
		v &= v - 1
		count++
	}
	return count
}
