package hyperellipse

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// FStatisticFunc returns kappa²/sigma² for an m-parameter confidence region with
// n degrees of freedom, prior weight k (negative means infinite) and
// confidence p.
type FStatisticFunc func(m, n, k int, p float64) float64

// FStatistic is the default FStatisticFunc. With k < 0 it is the chi-square
// quantile with m degrees of freedom; otherwise m times the F(m, n+k)
// quantile. It returns -1 for arguments it cannot evaluate.
func FStatistic(m, n, k int, p float64) float64 {
	if m <= 0 || p <= 0 || p >= 1 {
		return -1
	}
	if k < 0 {
		return distuv.ChiSquared{K: float64(m)}.Quantile(p)
	}
	dof := n + k
	if dof < 0 {
		return -1
	}
	if dof == 0 {
		return 1e100
	}
	return float64(m) * distuv.F{D1: float64(m), D2: float64(dof)}.Quantile(p)
}

func validF(f float64) bool {
	return f >= 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}
