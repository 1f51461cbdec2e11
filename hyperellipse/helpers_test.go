package hyperellipse

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

var testCenter = Location{Lat: 36.0, Lon: -112.0, Depth: 10.0, Time: 1.0e9}

// givens rotates the identity by angle in the (i, j) plane.
func givens(n, i, j int, angle float64) *mat.Dense {
	g := mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		g.Set(k, k, 1)
	}
	c, s := math.Cos(angle), math.Sin(angle)
	g.Set(i, i, c)
	g.Set(j, j, c)
	g.Set(i, j, -s)
	g.Set(j, i, s)
	return g
}

type planeRotation struct {
	i, j  int
	angle float64
}

func rotation(n int, rots ...planeRotation) *mat.Dense {
	r := mat.NewDense(n, n, nil)
	for k := 0; k < n; k++ {
		r.Set(k, k, 1)
	}
	for _, p := range rots {
		var next mat.Dense
		next.Mul(r, givens(n, p.i, p.j, p.angle))
		r = &next
	}
	return r
}

// axisMatrix puts the columns of r and the given lengths into an AxisMatrix.
func axisMatrix(r mat.Matrix, lengths [4]float64) *AxisMatrix {
	var a AxisMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			a[row][col] = r.At(row, col)
		}
	}
	a[4] = lengths
	return &a
}

// ellipsoidCoefficients builds c0..c5 and c6 = 1 for semi-axes along the
// columns of r.
func ellipsoidCoefficients(r mat.Matrix, lengths [3]float64) []float64 {
	a := quadricMatrix(r, lengths)
	return []float64{
		a.At(0, 0), 2 * a.At(0, 1), 2 * a.At(0, 2),
		a.At(1, 1), 2 * a.At(1, 2),
		a.At(2, 2),
		1,
	}
}

func quadricMatrix(r mat.Matrix, lengths [3]float64) *mat.SymDense {
	a := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += r.At(i, k) * r.At(j, k) / (lengths[k] * lengths[k])
			}
			a.SetSym(i, j, sum)
		}
	}
	return a
}

// eigenLengths returns the semi-axes of the quadric c0..c5 = 1, longest first.
func eigenLengths(c []float64) [3]float64 {
	a := mat.NewSymDense(3, []float64{
		c[0], c[1] / 2, c[2] / 2,
		c[1] / 2, c[3], c[4] / 2,
		c[2] / 2, c[4] / 2, c[5],
	})
	var eig mat.EigenSym
	if !eig.Factorize(a, false) {
		panic("eigen decomposition failed")
	}
	vals := eig.Values(nil) // ascending
	return [3]float64{1 / math.Sqrt(vals[0]), 1 / math.Sqrt(vals[1]), 1 / math.Sqrt(vals[2])}
}

func randomRotation3(rng *rand.Rand) *mat.Dense {
	return rotation(3,
		planeRotation{0, 1, rng.Float64() * 2 * math.Pi},
		planeRotation{0, 2, rng.Float64() * 2 * math.Pi},
		planeRotation{1, 2, rng.Float64() * 2 * math.Pi},
	)
}

// offsetKm inverts Location.Move for small offsets.
func offsetKm(from, to Location) (north, east float64) {
	north = (to.Lat - from.Lat) * math.Pi / 180 * EarthRadiusKm
	east = (to.Lon - from.Lon) * math.Pi / 180 * EarthRadiusKm * math.Cos(from.Lat*math.Pi/180)
	return north, east
}

func quadratic3(c []float64, x, y, z float64) float64 {
	return c[0]*x*x + c[1]*x*y + c[2]*x*z + c[3]*y*y + c[4]*y*z + c[5]*z*z
}

func quadratic4(c []float64, p [4]float64) float64 {
	q, k := 0.0, 0
	for j := 0; j < 4; j++ {
		for i := j; i < 4; i++ {
			q += c[k] * p[i] * p[j]
			k++
		}
	}
	return q
}

func stubF(v float64) FStatisticFunc {
	return func(m, n, k int, p float64) float64 { return v }
}
