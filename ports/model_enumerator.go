package ports

import (
	"goregress/domain/field"
	"goregress/domain/regression"
)

// ModelEnumerator produces candidate model specifications for a dependent
// field and a set of independent fields, plus a parallel record of which
// fields each candidate actually considered.
type ModelEnumerator interface {
	Enumerate(dep field.Field, indep []field.Field) (considered [][]field.Field, specs []regression.ModelSpec, err error)
}
