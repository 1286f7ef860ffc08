package regression

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// FitDiagnostics computes goodness-of-fit statistics from retained residuals:
// residual moments plus a Jarque-Bera normality test. Returns nil when the
// sample is too small for the test to mean anything.
func FitDiagnostics(residuals []float64) *FitStats {
	n := len(residuals)
	if n < 8 {
		return nil
	}

	mean, err := stats.Mean(residuals)
	if err != nil {
		return nil
	}
	stdDev, err := stats.StandardDeviation(residuals)
	if err != nil || stdDev == 0 {
		return nil
	}

	skew, kurt := sampleMoments(residuals, mean, stdDev)
	jb := float64(n) / 6.0 * (skew*skew + (kurt-3)*(kurt-3)/4)
	chi2 := distuv.ChiSquared{K: 2}
	p := 1 - chi2.CDF(jb)

	return &FitStats{
		ResidualMean:   Stat(mean),
		ResidualStdDev: Stat(stdDev),
		NormalityP:     Stat(p),
		Normal:         p > 0.05,
	}
}

// sampleMoments returns skewness and total kurtosis of standardized values.
func sampleMoments(data []float64, mean, stdDev float64) (skew, kurt float64) {
	n := float64(len(data))
	var m3, m4 float64
	for _, x := range data {
		d := (x - mean) / stdDev
		m3 += d * d * d
		m4 += d * d * d * d
	}
	skew = m3 / n
	kurt = m4 / n
	if math.IsNaN(skew) || math.IsNaN(kurt) {
		return 0, 3
	}
	return skew, kurt
}
