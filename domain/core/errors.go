package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrDatasetNotFound    = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrRegressionNotFound = fmt.Errorf("%w: regression", ErrNotFound)

	// Request validation errors
	ErrMissingParameters = errors.New("not passed required parameters")

	// Data errors
	ErrUnknownDependentField = errors.New("dependent field not found in dataset")
	ErrInsufficientData      = errors.New("insufficient data for regression")

	// Model construction and estimation errors
	ErrDesignMatrix          = errors.New("design matrix construction failed")
	ErrEstimation            = errors.New("estimation failed")
	ErrSingularMatrix        = fmt.Errorf("%w: singular design matrix", ErrEstimation)
	ErrUnsupportedRegression = errors.New("unsupported regression type")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewDesignMatrixError(column string, reason string) error {
	return fmt.Errorf("%w: column %q %s", ErrDesignMatrix, column, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDataError reports whether the error stems from the request or the loaded
// data rather than from infrastructure.
func IsDataError(err error) bool {
	return errors.Is(err, ErrMissingParameters) ||
		errors.Is(err, ErrUnknownDependentField) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDesignMatrix)
}

func IsEstimationError(err error) bool {
	return errors.Is(err, ErrEstimation)
}
