package regression

import (
	"encoding/json"
	"math"
	"strings"

	"goregress/domain/field"
)

// Type is the regression family for a model run.
type Type string

const (
	TypeLinear     Type = "linear"
	TypeLogistic   Type = "logistic"
	TypePolynomial Type = "polynomial"
)

// ParseType validates an explicit regressionType override from a request.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeLinear, TypeLogistic, TypePolynomial:
		return Type(s), true
	}
	return "", false
}

// RecommendType picks a regression family from the dependent variable's
// measurement type: quantitative and temporal responses get linear
// regression, categorical responses get multinomial logistic.
func RecommendType(dependent field.Field) Type {
	if dependent.GeneralType == field.Categorical {
		return TypeLogistic
	}
	return TypeLinear
}

// Stat is a statistic value that sanitizes itself for JSON: NaN and infinite
// values (ill-conditioned fits) marshal as null instead of breaking the
// encoder or leaking unsupported numerics to storage.
type Stat float64

func (s Stat) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (s *Stat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = Stat(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}

// ConfInterval is a (lower, upper) confidence-interval pair.
type ConfInterval [2]Stat

// ModelSpec pairs one dependent field with an ordered subset of independent
// fields.
type ModelSpec struct {
	Dependent field.Field
	Terms     []field.Field
}

// Formula renders the specification for logs, e.g. "sales ~ region + age".
func (m ModelSpec) Formula() string {
	if len(m.Terms) == 0 {
		return m.Dependent.Name + " ~ 1"
	}
	return m.Dependent.Name + " ~ " + strings.Join(field.Names(m.Terms), " + ")
}

// Constants holds the intercept's statistics. ConfInt is present for linear
// models only.
type Constants struct {
	PValue        Stat          `json:"p_value"`
	TValue        Stat          `json:"t_value"`
	Coefficient   Stat          `json:"coefficient"`
	StandardError Stat          `json:"standard_error"`
	ConfInt       *ConfInterval `json:"conf_int,omitempty"`
}

// RawStats holds the per-statistic-type parameter mappings extracted from a
// fitted model, keyed by encoded parameter name. ConfIntervals is nil for
// logistic fits.
type RawStats struct {
	PValues        map[string]Stat
	TValues        map[string]Stat
	Coefficients   map[string]Stat
	StandardErrors map[string]Stat
	ConfIntervals  map[string]ConfInterval
}

// FieldProperties is the field-centric view of one parameter's statistics.
// ValueField is non-nil exactly when the parameter encodes a categorical
// level; BaseField is always the parameter name with any level suffix
// stripped.
type FieldProperties struct {
	Field         string        `json:"field"`
	BaseField     string        `json:"base_field"`
	ValueField    *string       `json:"value_field"`
	PValue        Stat          `json:"p_value"`
	TValue        Stat          `json:"t_value"`
	Coefficient   Stat          `json:"coefficient"`
	StandardError Stat          `json:"standard_error"`
	ConfInt       *ConfInterval `json:"conf_int,omitempty"`
}

// RawResult is one candidate model's output after restructuring.
type RawResult struct {
	Constants              Constants           `json:"constants"`
	PropertiesByField      []FieldProperties   `json:"properties_by_field"`
	CategoricalFieldValues map[string][]string `json:"categorical_field_values"`
	ModelStats             map[string]Stat     `json:"total_regression_properties"`
	// Residuals are retained only when the runner is configured to keep
	// them; they never serialize.
	Residuals []float64 `json:"-"`
}

// ModelOutcome pairs a candidate model's result with its error, so one failed
// design matrix or fit does not abort the remaining candidates. An outcome
// with nil Result and nil Err is a deliberate no-op (unimplemented regression
// type).
type ModelOutcome struct {
	Result *RawResult
	Err    error
}

// FitStats are optional goodness-of-fit diagnostics computed from retained
// residuals.
type FitStats struct {
	ResidualMean   Stat `json:"residual_mean"`
	ResidualStdDev Stat `json:"residual_std_dev"`
	NormalityP     Stat `json:"normality_p_value"`
	Normal         bool `json:"residuals_normal"`
}

// RegressionBlock is the per-candidate payload of the final result.
type RegressionBlock struct {
	Constants         *Constants        `json:"constants"`
	PropertiesByField []FieldProperties `json:"properties_by_field"`
	Stats             *FitStats         `json:"stats,omitempty"`
}

// ColumnRegression is one candidate model's entry in the final result.
type ColumnRegression struct {
	RegressedFields  []string        `json:"regressed_fields"`
	Regression       RegressionBlock `json:"regression"`
	ColumnProperties map[string]Stat `json:"column_properties"`
}

// FieldValues lists the categorical levels discovered for one field across
// all candidate models; Values is null for fields with no discovered levels.
type FieldValues struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// FinalResult is the response shape consumed by the front end.
type FinalResult struct {
	RegressionsByColumn []ColumnRegression `json:"regressions_by_column"`
	NumColumns          int                `json:"num_columns"`
	Fields              []FieldValues      `json:"fields"`
}

// OLSFit is the raw output of an ordinary-least-squares estimator. All
// parameter vectors are aligned with Names (intercept included).
type OLSFit struct {
	Names          []string
	Coefficients   []float64
	StandardErrors []float64
	TValues        []float64
	PValues        []float64
	ConfIntervals  [][2]float64

	AIC         float64
	BIC         float64
	RSquared    float64
	RSquaredAdj float64
	FStat       float64
	NumObs      int

	// Residuals are populated only on request.
	Residuals []float64
}

// MNLogitFit is the raw output of a multinomial-logit estimator. Only the
// first non-baseline outcome category's parameter vector is surfaced.
type MNLogitFit struct {
	Names          []string
	Coefficients   []float64
	StandardErrors []float64
	TValues        []float64
	PValues        []float64

	AIC       float64
	BIC       float64
	NumObs    int
	Converged bool
}
