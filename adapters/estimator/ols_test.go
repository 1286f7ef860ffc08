package estimator

import (
	"errors"
	"math"
	"testing"

	"goregress/domain/core"
	"goregress/domain/design"
	"goregress/domain/field"
	"goregress/domain/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textbook simple regression: x = 1..5, y = {2,4,5,4,5}
// slope = 0.6, intercept = 2.2, R^2 = 0.6, F = 4.5
func simpleMatrix(t *testing.T) *design.Matrix {
	t.Helper()
	f, err := frame.New(
		[]string{"y", "x"},
		[][]string{{"2", "1"}, {"4", "2"}, {"5", "3"}, {"4", "4"}, {"5", "5"}},
	)
	require.NoError(t, err)
	m, err := design.Build(f,
		field.Field{Name: "y", GeneralType: field.Quantitative},
		[]field.Field{{Name: "x", GeneralType: field.Quantitative}},
	)
	require.NoError(t, err)
	return m
}

func TestFitOLSKnownCoefficients(t *testing.T) {
	fit, err := New().FitOLS(simpleMatrix(t), false)
	require.NoError(t, err)

	require.Equal(t, []string{"Intercept", "x"}, fit.Names)
	assert.InDelta(t, 2.2, fit.Coefficients[0], 1e-9, "intercept")
	assert.InDelta(t, 0.6, fit.Coefficients[1], 1e-9, "slope")

	// sigma^2 = RSS/(n-p) = 2.4/3 = 0.8; se_slope = sqrt(0.8/10)
	assert.InDelta(t, math.Sqrt(0.08), fit.StandardErrors[1], 1e-9)
	assert.InDelta(t, 0.6/math.Sqrt(0.08), fit.TValues[1], 1e-9)
	// two-sided p for t=2.1213 with 3 degrees of freedom
	assert.InDelta(t, 0.124, fit.PValues[1], 5e-3)

	assert.InDelta(t, 0.6, fit.RSquared, 1e-9)
	assert.InDelta(t, 0.4667, fit.RSquaredAdj, 1e-3)
	assert.InDelta(t, 4.5, fit.FStat, 1e-9)
	assert.Equal(t, 5, fit.NumObs)
	// ll = -2.5*(log(2*pi) + log(0.48) + 1); aic = -2ll + 4
	assert.InDelta(t, 14.52, fit.AIC, 1e-2)
	assert.InDelta(t, 13.74, fit.BIC, 1e-2)
}

func TestFitOLSConfidenceIntervalBracketsCoefficient(t *testing.T) {
	fit, err := New().FitOLS(simpleMatrix(t), false)
	require.NoError(t, err)

	for j, ci := range fit.ConfIntervals {
		assert.Less(t, ci[0], fit.Coefficients[j], "lower bound of parameter %d", j)
		assert.Greater(t, ci[1], fit.Coefficients[j], "upper bound of parameter %d", j)
	}
	// interval is symmetric around the estimate
	slope := fit.Coefficients[1]
	ci := fit.ConfIntervals[1]
	assert.InDelta(t, slope-ci[0], ci[1]-slope, 1e-9)
}

func TestFitOLSResidualsOnRequest(t *testing.T) {
	est := New()
	fit, err := est.FitOLS(simpleMatrix(t), false)
	require.NoError(t, err)
	assert.Nil(t, fit.Residuals)

	fit, err = est.FitOLS(simpleMatrix(t), true)
	require.NoError(t, err)
	require.Len(t, fit.Residuals, 5)
	assert.InDelta(t, -0.8, fit.Residuals[0], 1e-9)

	var sum float64
	for _, r := range fit.Residuals {
		sum += r
	}
	assert.InDelta(t, 0, sum, 1e-9, "OLS residuals sum to zero with an intercept")
}

func TestFitOLSSingularDesign(t *testing.T) {
	// duplicated predictor makes X'X singular
	f, err := frame.New(
		[]string{"y", "x", "x2"},
		[][]string{{"2", "1", "1"}, {"4", "2", "2"}, {"5", "3", "3"}, {"4", "4", "4"}, {"5", "5", "5"}},
	)
	require.NoError(t, err)
	m, err := design.Build(f,
		field.Field{Name: "y", GeneralType: field.Quantitative},
		[]field.Field{
			{Name: "x", GeneralType: field.Quantitative},
			{Name: "x2", GeneralType: field.Quantitative},
		},
	)
	require.NoError(t, err)

	_, err = New().FitOLS(m, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrEstimation), "expected an estimation error, got %v", err)
}

func TestFitOLSTooFewObservations(t *testing.T) {
	f, err := frame.New([]string{"y", "x"}, [][]string{{"1", "2"}, {"2", "3"}})
	require.NoError(t, err)
	m, err := design.Build(f,
		field.Field{Name: "y", GeneralType: field.Quantitative},
		[]field.Field{{Name: "x", GeneralType: field.Quantitative}},
	)
	require.NoError(t, err)

	_, err = New().FitOLS(m, false)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}
