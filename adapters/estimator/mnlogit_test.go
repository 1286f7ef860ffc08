package estimator

import (
	"errors"
	"fmt"
	"testing"

	"goregress/domain/core"
	"goregress/domain/design"
	"goregress/domain/field"
	"goregress/domain/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binary response with an overlap region so the classes are not perfectly
// separable (separable data has no finite MLE)
func churnMatrix(t *testing.T) *design.Matrix {
	t.Helper()
	labels := []string{
		"no", "no", "no", "no", "no", "no", "no", "no",
		"yes", "no", "yes", "no",
		"yes", "yes", "yes", "yes", "yes", "yes", "yes", "yes",
	}
	rows := make([][]string, len(labels))
	for i, label := range labels {
		rows[i] = []string{label, fmt.Sprintf("%d", i+1)}
	}
	f, err := frame.New([]string{"churn", "tenure"}, rows)
	require.NoError(t, err)

	m, err := design.Build(f,
		field.Field{Name: "churn", GeneralType: field.Categorical},
		[]field.Field{{Name: "tenure", GeneralType: field.Quantitative}},
	)
	require.NoError(t, err)
	return m
}

func TestFitMNLogitBinary(t *testing.T) {
	fit, err := New().FitMNLogit(churnMatrix(t), 100)
	require.NoError(t, err)

	assert.True(t, fit.Converged, "Newton iterations should converge on overlapping data")
	require.Equal(t, []string{"Intercept", "tenure"}, fit.Names)
	require.Len(t, fit.Coefficients, 2)

	// higher tenure pushes toward the "yes" (non-baseline) category
	assert.Greater(t, fit.Coefficients[1], 0.0)
	for j := range fit.Coefficients {
		assert.Greater(t, fit.StandardErrors[j], 0.0, "standard error of parameter %d", j)
		assert.GreaterOrEqual(t, fit.PValues[j], 0.0)
		assert.LessOrEqual(t, fit.PValues[j], 1.0)
	}

	assert.Greater(t, fit.AIC, 0.0)
	assert.Greater(t, fit.BIC, fit.AIC, "BIC penalizes harder than AIC for n=20")
	assert.Equal(t, 20, fit.NumObs)
}

func TestFitMNLogitThreeCategories(t *testing.T) {
	labels := []string{
		"low", "low", "low", "mid", "low", "low", "mid", "low",
		"mid", "mid", "low", "mid", "high", "mid", "mid", "high",
		"high", "mid", "high", "high", "high", "high", "mid", "high",
	}
	rows := make([][]string, len(labels))
	for i, label := range labels {
		rows[i] = []string{label, fmt.Sprintf("%d", i)}
	}
	f, err := frame.New([]string{"tier", "score"}, rows)
	require.NoError(t, err)
	m, err := design.Build(f,
		field.Field{Name: "tier", GeneralType: field.Categorical},
		[]field.Field{{Name: "score", GeneralType: field.Quantitative}},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"high", "low", "mid"}, m.ResponseLevels)

	fit, err := New().FitMNLogit(m, 100)
	require.NoError(t, err)

	// only the first non-baseline category's vector is surfaced
	require.Len(t, fit.Coefficients, 2)
	require.Len(t, fit.PValues, 2)
	assert.Greater(t, fit.AIC, 0.0)
}

func TestFitMNLogitSingleCategory(t *testing.T) {
	// force a degenerate response by constructing the matrix manually via a
	// non-categorical dependent that encodes a single value
	f, err := frame.New([]string{"y", "x"}, [][]string{{"0", "1"}, {"0", "2"}, {"0", "3"}, {"0", "4"}, {"0", "5"}, {"0", "6"}})
	require.NoError(t, err)
	m, err := design.Build(f,
		field.Field{Name: "y", GeneralType: field.Quantitative},
		[]field.Field{{Name: "x", GeneralType: field.Quantitative}},
	)
	require.NoError(t, err)

	_, err = New().FitMNLogit(m, 100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}
