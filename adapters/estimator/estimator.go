// Package estimator implements the statistical estimation routines consumed
// by the regression runner, on top of gonum's matrix and distribution
// packages.
package estimator

import (
	"goregress/domain/regression"
)

// Gonum is the default estimator.
type Gonum struct{}

// New creates a gonum-backed estimator.
func New() *Gonum {
	return &Gonum{}
}

var _ regression.Estimator = (*Gonum)(nil)
