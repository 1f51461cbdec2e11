package hyperellipse

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// quadraticCoefficients inverts the symmetric matrix a and returns the lower
// triangle of the inverse column by column, off-diagonal terms doubled,
// followed by rhs = 1.
func quadraticCoefficients(a [][]float64) ([]float64, error) {
	inv, err := invert(a)
	if err != nil {
		return nil, err
	}
	n := len(a)
	coeff := make([]float64, 0, n*(n+1)/2+1)
	for j := 0; j < n; j++ {
		for i := j; i < n; i++ {
			if i == j {
				coeff = append(coeff, inv.At(i, j))
			} else {
				coeff = append(coeff, 2*inv.At(i, j))
			}
		}
	}
	return append(coeff, 1.0), nil
}

func invert(a [][]float64) (*mat.Dense, error) {
	n := len(a)
	data := make([]float64, 0, n*n)
	for _, row := range a {
		data = append(data, row...)
	}
	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(n, n, data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	if !allFinite(inv.RawMatrix().Data) {
		return nil, ErrSingularMatrix
	}
	return &inv, nil
}

// solve returns x with a·x = b.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	data := make([]float64, 0, n*n)
	for _, row := range a {
		data = append(data, row...)
	}
	var x mat.VecDense
	if err := x.SolveVec(mat.NewDense(n, n, data), mat.NewVecDense(n, append([]float64(nil), b...))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	if !allFinite(out) {
		return nil, ErrSingularMatrix
	}
	return out, nil
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func cross(u, w [3]float64) [3]float64 {
	return [3]float64{
		u[1]*w[2] - u[2]*w[1],
		u[2]*w[0] - u[0]*w[2],
		u[0]*w[1] - u[1]*w[0],
	}
}

func dot(u, w [3]float64) float64 {
	return u[0]*w[0] + u[1]*w[1] + u[2]*w[2]
}

func norm(u [3]float64) float64 {
	return math.Sqrt(dot(u, u))
}

// unitVector converts trend (clockwise from north) and plunge (positive down)
// to (north, east, down) components.
func unitVector(trend, plunge float64) [3]float64 {
	return [3]float64{
		math.Cos(trend) * math.Cos(plunge),
		math.Sin(trend) * math.Cos(plunge),
		math.Sin(plunge),
	}
}

// trendPlunge is the inverse of unitVector.
func trendPlunge(v [3]float64) (float64, float64) {
	return math.Atan2(v[1], v[0]), math.Atan2(v[2], math.Hypot(v[0], v[1]))
}

// wrap maps x into [lo, lo+period).
func wrap(x, lo, period float64) float64 {
	x = math.Mod(x-lo, period)
	if x < 0 {
		x += period
	}
	return x + lo
}

// normalizeAxis points the axis downward and wraps trend to [0, 2π).
func normalizeAxis(trend, plunge float64) (float64, float64) {
	plunge = wrap(plunge, -math.Pi, 2*math.Pi)
	if plunge > math.Pi/2 {
		plunge = math.Pi - plunge
		trend += math.Pi
	} else if plunge < -math.Pi/2 {
		plunge = -math.Pi - plunge
		trend += math.Pi
	}
	if plunge < 0 {
		plunge = -plunge
		trend += math.Pi
	}
	return wrap(trend, 0, 2*math.Pi), plunge
}
