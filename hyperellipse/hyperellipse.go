package hyperellipse

import (
	"fmt"
	"math"
)

// AxisMatrix holds the principal axes of the 4-D hyper-ellipse. Rows 0..3 are
// unit vector components in (lat, lon, depth, time) order, one axis per
// column; row 4 holds the unscaled semi-axis lengths (km or s).
type AxisMatrix [5][4]float64

// CheckOrthonormal verifies that the four columns are orthonormal within tol.
func (m *AxisMatrix) CheckOrthonormal(tol float64) error {
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			d := 0.0
			for r := 0; r < 4; r++ {
				d += m[r][i] * m[r][j]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(d-want) > tol {
				return fmt.Errorf("hyperellipse: axis columns %d,%d dot product %.3g", i, j, d)
			}
		}
	}
	return nil
}

// Statistics are the least-squares inputs that set the confidence scale.
type Statistics struct {
	Nobs                    int     // number of defining observations
	K                       int     // prior weight; negative means infinite
	AprioriVariance         float64 // a priori variance scale
	SumSqrWeightedResiduals float64
	Confidence              float64 // in (0, 1)
	Sdobs                   float64 // residual RMS, reported only
}

// HyperEllipse is the 4-D confidence region of one location solution. Inputs
// are fixed at construction; derived values are computed on first use and
// dropped by Clear. A HyperEllipse is not safe for concurrent use.
type HyperEllipse struct {
	center   Location
	fixed    [4]bool
	axes     *AxisMatrix
	stats    Statistics
	cfg      Config
	m        int
	sigma    float64
	infinite bool

	covariance memo[[4][4]float64]
	coeff      memo[[]float64] // 4-D, rhs scaled by kappa(4)²
	horizontal memo[[]float64] // lat, lon
	hypocenter memo[[]float64] // lat, lon, depth
	ellipsoid  memo[*Ellipsoid]
	kappa      memo[[4]float64]
}

// NewHyperEllipse builds the engine for one solution. A nil axes makes it
// permanently invalid.
func NewHyperEllipse(center Location, fixed [4]bool, axes *AxisMatrix, stats Statistics, cfg Config) *HyperEllipse {
	h := &HyperEllipse{
		center: center,
		fixed:  fixed,
		stats:  stats,
		cfg:    cfg.withDefaults(),
		m:      4,
	}
	if axes != nil {
		a := *axes
		h.axes = &a
		for i := 0; i < 4; i++ {
			if l := a[4][i]; math.IsInf(l, 0) || math.IsNaN(l) {
				h.infinite = true
			}
		}
	}
	for _, f := range fixed {
		if f {
			h.m--
		}
	}
	h.sigma = h.computeSigma()
	return h
}

func (h *HyperEllipse) computeSigma() float64 {
	s := h.stats
	if s.K < 0 {
		return math.Sqrt(s.AprioriVariance)
	}
	denom := float64(s.K + s.Nobs - h.m)
	if denom <= 0 {
		return 0
	}
	return math.Sqrt((float64(s.K)*s.AprioriVariance + s.SumSqrWeightedResiduals) / denom)
}

// Clear drops every derived value.
func (h *HyperEllipse) Clear() {
	h.covariance.reset()
	h.coeff.reset()
	h.horizontal.reset()
	h.hypocenter.reset()
	h.ellipsoid.reset()
	h.kappa.reset()
}

func (h *HyperEllipse) Center() Location       { return h.center }
func (h *HyperEllipse) Fixed() [4]bool         { return h.fixed }
func (h *HyperEllipse) Statistics() Statistics { return h.stats }

// M is the number of free parameters.
func (h *HyperEllipse) M() int { return h.m }

// Sigma is the variance scale applied to kappa.
func (h *HyperEllipse) Sigma() float64 { return h.sigma }

// HasStatistics reports whether an axis matrix was supplied.
func (h *HyperEllipse) HasStatistics() bool { return h.axes != nil }

// Covariance returns Σ_rc = Σ_i U_ri·U_ci·L_i².
func (h *HyperEllipse) Covariance() ([4][4]float64, error) {
	return h.covariance.get(func() ([4][4]float64, error) {
		var cov [4][4]float64
		if h.axes == nil {
			return cov, ErrNoPrincipalAxes
		}
		a := h.axes
		for r := 0; r < 4; r++ {
			for c := r; c < 4; c++ {
				sum := 0.0
				for i := 0; i < 4; i++ {
					sum += a[r][i] * a[c][i] * a[4][i] * a[4][i]
				}
				cov[r][c] = sum
				cov[c][r] = sum
			}
		}
		return cov, nil
	})
}

// Coefficients returns the quadratic coefficients over the requested
// parameters with rhs = 1, from the inverse of the covariance submatrix.
func (h *HyperEllipse) Coefficients(params ...Param) ([]float64, error) {
	if len(params) == 0 || len(params) > 4 {
		return nil, fmt.Errorf("%w: %d parameters", ErrBadParameter, len(params))
	}
	var seen [4]bool
	for _, p := range params {
		if p < Lat || p > Time || seen[p] {
			return nil, fmt.Errorf("%w: %v", ErrBadParameter, params)
		}
		seen[p] = true
	}
	cov, err := h.Covariance()
	if err != nil {
		return nil, err
	}
	sub := make([][]float64, len(params))
	for i, pi := range params {
		sub[i] = make([]float64, len(params))
		for j, pj := range params {
			sub[i][j] = cov[pi][pj]
		}
	}
	coeff, err := quadraticCoefficients(sub)
	if err != nil {
		return nil, fmt.Errorf("coefficients %v: %w", params, err)
	}
	return coeff, nil
}

// HyperCoefficients returns the 11 coefficients of the 4-D form with rhs set
// to kappa(4)² unless SetScaleFactor changed it.
func (h *HyperEllipse) HyperCoefficients() ([]float64, error) {
	c, err := h.hyperCoefficients()
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), c...), nil
}

func (h *HyperEllipse) hyperCoefficients() ([]float64, error) {
	return h.coeff.get(func() ([]float64, error) {
		c, err := h.Coefficients(Lat, Lon, Depth, Time)
		if err != nil {
			return nil, err
		}
		k := h.Kappa(4)
		c[10] = k * k
		return c, nil
	})
}

// SetScaleFactor replaces the rhs of the 4-D form.
func (h *HyperEllipse) SetScaleFactor(kappaSqr float64) {
	if c, err := h.hyperCoefficients(); err == nil {
		c[10] = kappaSqr
	}
}

// IsValid reports whether the 4-D form exists with a non-negative rhs.
func (h *HyperEllipse) IsValid() bool {
	c, err := h.hyperCoefficients()
	return err == nil && c[10] >= 0
}

// Kappa returns the confidence scale for an m-dimensional region, m in 1..4.
// It is 0 when the statistics cannot support a finite scale.
func (h *HyperEllipse) Kappa(m int) float64 {
	if m < 1 || m > 4 {
		return math.Inf(1)
	}
	k, _ := h.kappa.get(func() ([4]float64, error) {
		var k [4]float64
		n := h.stats.Nobs - h.m
		conf := h.stats.Confidence
		if n < 0 || conf <= 0 || conf >= MaxConfidence {
			return k, nil
		}
		for i := range k {
			f := h.cfg.FStatistic(i+1, n, h.stats.K, conf)
			if validF(f) {
				k[i] = h.sigma * math.Sqrt(f)
			}
		}
		return k, nil
	})
	return k[m-1]
}

// ScaledAxes returns the axis matrix with lengths multiplied by the square
// root of the 4-D rhs.
func (h *HyperEllipse) ScaledAxes() (AxisMatrix, error) {
	if h.axes == nil {
		return AxisMatrix{}, ErrNoPrincipalAxes
	}
	c, err := h.hyperCoefficients()
	if err != nil {
		return AxisMatrix{}, err
	}
	a := *h.axes
	s := math.Sqrt(math.Max(c[10], 0))
	for i := 0; i < 4; i++ {
		a[4][i] *= s
	}
	return a, nil
}

// DistanceToPerimeter is the center to perimeter distance of the 4-D form
// along unit vector v (lat, lon, depth, time components).
func (h *HyperEllipse) DistanceToPerimeter(v [4]float64, scaled bool) float64 {
	c, err := h.hyperCoefficients()
	if err != nil {
		return math.NaN()
	}
	q, k := 0.0, 0
	for j := 0; j < 4; j++ {
		for i := j; i < 4; i++ {
			q += c[k] * v[i] * v[j]
			k++
		}
	}
	s := 1.0
	if scaled {
		s = c[10]
	}
	if q <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(s / q)
}

// ProjectedEllipse returns the epicentral (lat, lon) ellipse with rhs
// kappaSqr. It is invalid when the covariance submatrix is singular.
func (h *HyperEllipse) ProjectedEllipse(kappaSqr float64) *Ellipse {
	c, err := h.horizontal.get(func() ([]float64, error) {
		return h.Coefficients(Lat, Lon)
	})
	if err != nil {
		return NewEllipse(h.center, nil)
	}
	e := NewEllipse(h.center, c)
	e.SetScaleFactor(kappaSqr)
	return e
}

// ProjectedEllipsoid returns the hypocentral (lat, lon, depth) ellipsoid with
// c6 = kappaSqr. Axes found on one result are reused by later calls.
func (h *HyperEllipse) ProjectedEllipsoid(kappaSqr float64) *Ellipsoid {
	base, _ := h.ellipsoid.get(func() (*Ellipsoid, error) {
		c, err := h.hypocenter.get(func() ([]float64, error) {
			return h.Coefficients(Lat, Lon, Depth)
		})
		if err != nil {
			return NewEllipsoid(h.center, nil, h.cfg), nil
		}
		return NewEllipsoid(h.center, c, h.cfg), nil
	})
	return base.WithScale(kappaSqr)
}

// IntersectionEllipsoid slices the 4-D region at origin time t. The result
// has no coefficients when t lies outside the region.
func (h *HyperEllipse) IntersectionEllipsoid(t float64) (*Ellipsoid, error) {
	empty := NewEllipsoid(h.center, nil, h.cfg)
	if !h.IsValid() {
		return empty, nil
	}
	cov, err := h.Covariance()
	if err != nil {
		return empty, nil
	}
	c, err := h.hyperCoefficients()
	if err != nil {
		return empty, nil
	}
	dt := t - h.center.Time
	if math.Abs(dt) > math.Sqrt(cov[Time][Time]*c[10]) {
		return empty, nil
	}
	x, err := solve(
		[][]float64{
			{2 * c[0], c[1], c[2]},
			{c[1], 2 * c[4], c[5]},
			{c[2], c[5], 2 * c[7]},
		},
		[]float64{-c[3] * dt, -c[6] * dt, -c[8] * dt},
	)
	if err != nil {
		return nil, fmt.Errorf("intersection at t=%.3f: %w", t, err)
	}
	p := [4]float64{x[0], x[1], x[2], dt}
	q, k := 0.0, 0
	for j := 0; j < 4; j++ {
		for i := j; i < 4; i++ {
			q += c[k] * p[i] * p[j]
			k++
		}
	}
	center := h.center.Move(x[0], x[1], x[2], dt)
	scale := c[10] - q
	if scale <= 0 {
		return NewEllipsoid(center, nil, h.cfg), nil
	}
	return NewEllipsoid(center, []float64{
		c[0] / scale, c[1] / scale, c[2] / scale,
		c[4] / scale, c[5] / scale, c[7] / scale,
		1,
	}, h.cfg), nil
}
