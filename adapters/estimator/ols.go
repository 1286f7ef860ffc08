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

// FitOLS fits ordinary least squares via QR factorization and extracts
// per-parameter statistics (coefficient, standard error, t-value, p-value,
// 95% confidence interval) plus whole-model fit statistics.
func (g *Gonum) FitOLS(m *design.Matrix, keepResiduals bool) (*regression.OLSFit, error) {
	n, p := m.X.Dims()
	if n <= p {
		return nil, fmt.Errorf("%w: %d observations for %d parameters", core.ErrInsufficientData, n, p)
	}

	var qr mat.QR
	qr.Factorize(m.X)

	y := mat.NewVecDense(n, m.Y)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
	}

	// residuals and sums of squares
	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(m.X, &beta)
	residuals := make([]float64, n)
	var rss float64
	for i := 0; i < n; i++ {
		residuals[i] = m.Y[i] - fitted.AtVec(i)
		rss += residuals[i] * residuals[i]
	}
	yMean := 0.0
	for _, v := range m.Y {
		yMean += v
	}
	yMean /= float64(n)
	var tss float64
	for _, v := range m.Y {
		d := v - yMean
		tss += d * d
	}

	dfResid := float64(n - p)
	sigma2 := rss / dfResid

	// parameter covariance: sigma^2 * (X'X)^-1
	var xtx, xtxInv mat.Dense
	xtx.Mul(m.X.T(), m.X)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSingularMatrix, err)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dfResid}
	tCrit := tDist.Quantile(0.975)

	fit := &regression.OLSFit{
		Names:          m.Names,
		Coefficients:   make([]float64, p),
		StandardErrors: make([]float64, p),
		TValues:        make([]float64, p),
		PValues:        make([]float64, p),
		ConfIntervals:  make([][2]float64, p),
		NumObs:         n,
	}
	for j := 0; j < p; j++ {
		b := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		t := b / se
		fit.Coefficients[j] = b
		fit.StandardErrors[j] = se
		fit.TValues[j] = t
		fit.PValues[j] = 2 * (1 - tDist.CDF(math.Abs(t)))
		fit.ConfIntervals[j] = [2]float64{b - tCrit*se, b + tCrit*se}
	}

	fit.RSquared = 1 - rss/tss
	fit.RSquaredAdj = 1 - (1-fit.RSquared)*float64(n-1)/dfResid
	if p > 1 {
		fit.FStat = ((tss - rss) / float64(p-1)) / (rss / dfResid)
	} else {
		fit.FStat = math.NaN()
	}

	// Gaussian log-likelihood at the MLE variance rss/n
	ll := -0.5 * float64(n) * (math.Log(2*math.Pi) + math.Log(rss/float64(n)) + 1)
	fit.AIC = -2*ll + 2*float64(p)
	fit.BIC = -2*ll + math.Log(float64(n))*float64(p)

	if keepResiduals {
		fit.Residuals = residuals
	}
	return fit, nil
}
