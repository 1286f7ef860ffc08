package estimator

import (
	"fmt"
	"math"

	"goregress/domain/core"
	"goregress/domain/design"
	"goregress/domain/regression"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const gradTolerance = 1e-8

// FitMNLogit fits a multinomial-logit model by Newton-Raphson maximum
// likelihood. The lexicographically first response level is the baseline;
// only the first non-baseline category's parameter vector is surfaced, with
// z statistics and normal-approximation p-values.
func (g *Gonum) FitMNLogit(m *design.Matrix, maxIter int) (*regression.MNLogitFit, error) {
	n, p := m.X.Dims()
	k := numCategories(m)
	if k < 2 {
		return nil, fmt.Errorf("%w: response has fewer than two categories", core.ErrInsufficientData)
	}
	q := p * (k - 1)
	if n <= q {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", core.ErrInsufficientData, n, q)
	}
	if maxIter <= 0 {
		maxIter = regression.DefaultLogitMaxIter
	}

	w := make([]float64, q)
	probs := make([]float64, k)
	grad := make([]float64, q)
	negH := mat.NewSymDense(q, nil)
	converged := false
	var logLik float64

	for iter := 0; iter < maxIter; iter++ {
		logLik = 0
		for j := range grad {
			grad[j] = 0
		}
		negH.Zero()

		for i := 0; i < n; i++ {
			row := mat.Row(nil, i, m.X)
			categoryProbs(row, w, p, k, probs)

			yi := int(m.Y[i])
			logLik += math.Log(math.Max(probs[yi], 1e-300))

			for c := 1; c < k; c++ {
				indicator := 0.0
				if yi == c {
					indicator = 1
				}
				resid := indicator - probs[c]
				base := (c - 1) * p
				for j := 0; j < p; j++ {
					grad[base+j] += row[j] * resid
				}
			}
			for c := 1; c < k; c++ {
				for d := c; d < k; d++ {
					weight := probs[c] * probs[d]
					if c == d {
						weight = probs[c] * (1 - probs[c])
					} else {
						weight = -weight
					}
					// negative Hessian accumulates +weight * x x'
					cBase, dBase := (c-1)*p, (d-1)*p
					for a := 0; a < p; a++ {
						for b := 0; b < p; b++ {
							ra, cb := cBase+a, dBase+b
							if ra <= cb {
								negH.SetSym(ra, cb, negH.At(ra, cb)+weight*row[a]*row[b])
							}
						}
					}
				}
			}
		}

		if maxAbs(grad) < gradTolerance {
			converged = true
			break
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(negH); !ok {
			return nil, fmt.Errorf("%w: information matrix not positive definite", core.ErrSingularMatrix)
		}
		var step mat.VecDense
		if err := chol.SolveVecTo(&step, mat.NewVecDense(q, grad)); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
		}
		for j := 0; j < q; j++ {
			w[j] += step.AtVec(j)
		}
	}

	// covariance = inverse of the observed information at the final estimate
	var chol mat.Cholesky
	if ok := chol.Factorize(negH); !ok {
		return nil, fmt.Errorf("%w: information matrix not positive definite", core.ErrSingularMatrix)
	}
	var cov mat.SymDense
	if err := chol.InverseTo(&cov); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
	}

	norm := distuv.Normal{Mu: 0, Sigma: 1}
	fit := &regression.MNLogitFit{
		Names:          m.Names,
		Coefficients:   make([]float64, p),
		StandardErrors: make([]float64, p),
		TValues:        make([]float64, p),
		PValues:        make([]float64, p),
		NumObs:         n,
		Converged:      converged,
	}
	// first non-baseline category occupies the leading block
	for j := 0; j < p; j++ {
		b := w[j]
		se := math.Sqrt(cov.At(j, j))
		z := b / se
		fit.Coefficients[j] = b
		fit.StandardErrors[j] = se
		fit.TValues[j] = z
		fit.PValues[j] = 2 * (1 - norm.CDF(math.Abs(z)))
	}

	df := float64(q)
	fit.AIC = -2*logLik + 2*df
	fit.BIC = -2*logLik + math.Log(float64(n))*df
	return fit, nil
}

// categoryProbs fills probs with the softmax probabilities of each response
// category for one observation, baseline category first.
func categoryProbs(row, w []float64, p, k int, probs []float64) {
	// log-sum-exp with the baseline's implicit eta of 0
	etas := probs[1:] // reuse storage for the k-1 linear predictors
	maxEta := 0.0
	for c := 1; c < k; c++ {
		eta := 0.0
		base := (c - 1) * p
		for j := 0; j < p; j++ {
			eta += row[j] * w[base+j]
		}
		etas[c-1] = eta
		if eta > maxEta {
			maxEta = eta
		}
	}
	denom := math.Exp(-maxEta)
	for c := 1; c < k; c++ {
		denom += math.Exp(etas[c-1] - maxEta)
	}
	probs[0] = math.Exp(-maxEta) / denom
	for c := 1; c < k; c++ {
		probs[c] = math.Exp(etas[c-1]-maxEta) / denom
	}
}

func numCategories(m *design.Matrix) int {
	if len(m.ResponseLevels) > 0 {
		return len(m.ResponseLevels)
	}
	max := 0.0
	for _, v := range m.Y {
		if v > max {
			max = v
		}
	}
	return int(max) + 1
}

func maxAbs(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}
