package regression

import (
	"context"
	"fmt"

	"goregress/domain/core"
	"goregress/domain/design"
	"goregress/domain/field"
	"goregress/domain/frame"
)

// Estimator supplies the statistical estimation routines. The runner treats
// fits as black boxes returning parameter and statistic vectors.
type Estimator interface {
	FitOLS(m *design.Matrix, keepResiduals bool) (*OLSFit, error)
	FitMNLogit(m *design.Matrix, maxIter int) (*MNLogitFit, error)
}

// DefaultLogitMaxIter matches the estimation cap used for multinomial-logit
// fitting.
const DefaultLogitMaxIter = 100

// Runner executes candidate model specifications against a frame and shapes
// the raw statistical output.
type Runner struct {
	est           Estimator
	keepResiduals bool
	logitMaxIter  int
}

// NewRunner creates a runner. keepResiduals controls whether linear fits
// retain their residual vector for downstream goodness-of-fit diagnostics.
func NewRunner(est Estimator, keepResiduals bool, logitMaxIter int) *Runner {
	if logitMaxIter <= 0 {
		logitMaxIter = DefaultLogitMaxIter
	}
	return &Runner{est: est, keepResiduals: keepResiduals, logitMaxIter: logitMaxIter}
}

// Run fits every candidate specification in order and returns one outcome per
// specification. A failure in one candidate (missing column, degenerate
// design, non-convergence) is recorded on that outcome only; the remaining
// candidates still run.
func (r *Runner) Run(ctx context.Context, f *frame.Frame, specs []ModelSpec, dep field.Field, typ Type) []ModelOutcome {
	outcomes := make([]ModelOutcome, 0, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, ModelOutcome{Err: err})
			continue
		}
		switch typ {
		case TypeLinear:
			res, err := r.runLinear(f, spec)
			outcomes = append(outcomes, ModelOutcome{Result: res, Err: err})
		case TypeLogistic:
			res, err := r.runLogistic(f, spec)
			outcomes = append(outcomes, ModelOutcome{Result: res, Err: err})
		case TypePolynomial:
			// Not implemented; an empty outcome keeps the request shape
			// compatible without raising.
			outcomes = append(outcomes, ModelOutcome{})
		default:
			outcomes = append(outcomes, ModelOutcome{
				Err: fmt.Errorf("%w: %q", core.ErrUnsupportedRegression, typ),
			})
		}
	}
	return outcomes
}

func (r *Runner) runLinear(f *frame.Frame, spec ModelSpec) (*RawResult, error) {
	m, err := design.Build(f, spec.Dependent, spec.Terms)
	if err != nil {
		return nil, err
	}
	fit, err := r.est.FitOLS(m, r.keepResiduals)
	if err != nil {
		return nil, err
	}

	stats := RawStats{
		PValues:        make(map[string]Stat, len(fit.Names)),
		TValues:        make(map[string]Stat, len(fit.Names)),
		Coefficients:   make(map[string]Stat, len(fit.Names)),
		StandardErrors: make(map[string]Stat, len(fit.Names)),
		ConfIntervals:  make(map[string]ConfInterval, len(fit.Names)),
	}
	var constants Constants
	for i, name := range fit.Names {
		interval := ConfInterval{Stat(fit.ConfIntervals[i][0]), Stat(fit.ConfIntervals[i][1])}
		if name == design.InterceptName {
			constants = Constants{
				PValue:        Stat(fit.PValues[i]),
				TValue:        Stat(fit.TValues[i]),
				Coefficient:   Stat(fit.Coefficients[i]),
				StandardError: Stat(fit.StandardErrors[i]),
				ConfInt:       &interval,
			}
			continue
		}
		stats.PValues[name] = Stat(fit.PValues[i])
		stats.TValues[name] = Stat(fit.TValues[i])
		stats.Coefficients[name] = Stat(fit.Coefficients[i])
		stats.StandardErrors[name] = Stat(fit.StandardErrors[i])
		stats.ConfIntervals[name] = interval
	}

	props, categorical := Restructure(stats, m.ParamNames())

	return &RawResult{
		Constants:              constants,
		PropertiesByField:      props,
		CategoricalFieldValues: categorical,
		ModelStats: map[string]Stat{
			"aic":           Stat(fit.AIC),
			"bic":           Stat(fit.BIC),
			"dof":           Stat(fit.NumObs),
			"r_squared":     Stat(fit.RSquared),
			"r_squared_adj": Stat(fit.RSquaredAdj),
			"f_test":        Stat(fit.FStat),
		},
		Residuals: fit.Residuals,
	}, nil
}

func (r *Runner) runLogistic(f *frame.Frame, spec ModelSpec) (*RawResult, error) {
	m, err := design.Build(f, spec.Dependent, spec.Terms)
	if err != nil {
		return nil, err
	}
	fit, err := r.est.FitMNLogit(m, r.logitMaxIter)
	if err != nil {
		return nil, err
	}

	stats := RawStats{
		PValues:        make(map[string]Stat, len(fit.Names)),
		TValues:        make(map[string]Stat, len(fit.Names)),
		Coefficients:   make(map[string]Stat, len(fit.Names)),
		StandardErrors: make(map[string]Stat, len(fit.Names)),
	}
	var constants Constants
	for i, name := range fit.Names {
		if name == design.InterceptName {
			constants = Constants{
				PValue:        Stat(fit.PValues[i]),
				TValue:        Stat(fit.TValues[i]),
				Coefficient:   Stat(fit.Coefficients[i]),
				StandardError: Stat(fit.StandardErrors[i]),
			}
			continue
		}
		stats.PValues[name] = Stat(fit.PValues[i])
		stats.TValues[name] = Stat(fit.TValues[i])
		stats.Coefficients[name] = Stat(fit.Coefficients[i])
		stats.StandardErrors[name] = Stat(fit.StandardErrors[i])
	}

	props, categorical := Restructure(stats, m.ParamNames())

	return &RawResult{
		Constants:              constants,
		PropertiesByField:      props,
		CategoricalFieldValues: categorical,
		ModelStats: map[string]Stat{
			"aic": Stat(fit.AIC),
			"bic": Stat(fit.BIC),
		},
	}, nil
}
