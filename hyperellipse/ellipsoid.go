package hyperellipse

import (
	"fmt"
	"math"
)

// PrincipalAxis is one axis of an ellipsoid.
type PrincipalAxis struct {
	Trend  float64 // radians clockwise from north, [0, 2π)
	Plunge float64 // radians below horizontal, [0, π/2]
	Length float64 // semi-axis, km
}

// Vector returns the (north, east, down) unit vector of the axis.
func (a PrincipalAxis) Vector() [3]float64 {
	return unitVector(a.Trend, a.Plunge)
}

var naAxis = PrincipalAxis{Trend: NA, Plunge: NA, Length: NA}

// Ellipsoid is the quadric
//
//	c0·x² + c1·xy + c2·xz + c3·y² + c4·yz + c5·z² = c6
//
// in km, with x north, y east and z down from the center. An Ellipsoid is not
// safe for concurrent use.
type Ellipsoid struct {
	center Location
	coeff  []float64
	cfg    Config
	axes   *memo[[3]PrincipalAxis]
}

// NewEllipsoid copies coeff, which must hold 7 values with c6 > 0 to be valid.
func NewEllipsoid(center Location, coeff []float64, cfg Config) *Ellipsoid {
	var c []float64
	if coeff != nil {
		c = append([]float64(nil), coeff...)
	}
	return &Ellipsoid{center: center, coeff: c, cfg: cfg.withDefaults(), axes: &memo[[3]PrincipalAxis]{}}
}

func (e *Ellipsoid) Center() Location { return e.center }

// Coefficients returns a copy of c0..c6.
func (e *Ellipsoid) Coefficients() []float64 {
	if e.coeff == nil {
		return nil
	}
	return append([]float64(nil), e.coeff...)
}

// IsValid reports whether the coefficients describe a scaled ellipsoid and no
// axis search has failed on them.
func (e *Ellipsoid) IsValid() bool {
	if len(e.coeff) != 7 || !(e.coeff[6] > 0) {
		return false
	}
	if e.axes.done && e.axes.err == nil && e.axes.val[Major].Length == NA {
		return false
	}
	return true
}

// SetScaleFactor replaces c6, normally with kappa².
func (e *Ellipsoid) SetScaleFactor(kappaSqr float64) {
	if len(e.coeff) == 7 {
		e.coeff[6] = kappaSqr
	}
}

// WithScale returns a copy with c6 set to kappaSqr. Principal axes found by
// either copy are shared.
func (e *Ellipsoid) WithScale(kappaSqr float64) *Ellipsoid {
	c := *e
	c.coeff = e.Coefficients()
	c.SetScaleFactor(kappaSqr)
	return &c
}

func (e *Ellipsoid) scale() float64 {
	if len(e.coeff) != 7 || e.coeff[6] < 0 {
		return 0
	}
	return e.coeff[6]
}

// DistanceToPerimeter is the unscaled center to perimeter distance along the
// unit vector v = (north, east, down).
func (e *Ellipsoid) DistanceToPerimeter(v [3]float64) float64 {
	if len(e.coeff) < 6 {
		return math.NaN()
	}
	c := e.coeff
	q := c[0]*v[0]*v[0] + c[1]*v[0]*v[1] + c[2]*v[0]*v[2] +
		c[3]*v[1]*v[1] + c[4]*v[1]*v[2] + c[5]*v[2]*v[2]
	if q <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(1 / q)
}

// PrincipalAxes returns the major, intermediate and minor axes with lengths
// scaled by sqrt(c6). Every entry is NA when the ellipsoid is invalid.
// ErrNotOrthogonal means the major and minor axes were not perpendicular.
func (e *Ellipsoid) PrincipalAxes() ([3]PrincipalAxis, error) {
	na := [3]PrincipalAxis{naAxis, naAxis, naAxis}
	if !e.IsValid() {
		return na, nil
	}
	axes, err := e.axes.get(e.findPrincipalAxes)
	if err != nil {
		return na, err
	}
	if axes[Major].Length == NA {
		return na, nil
	}
	s := math.Sqrt(e.scale())
	for i := range axes {
		axes[i].Length *= s
	}
	return axes, nil
}

// Axis returns one principal axis, see PrincipalAxes.
func (e *Ellipsoid) Axis(which Axis) (PrincipalAxis, error) {
	if which < Major || which > Minor {
		return naAxis, fmt.Errorf("hyperellipse: no %v axis", which)
	}
	axes, err := e.PrincipalAxes()
	return axes[which], err
}

func (e *Ellipsoid) findPrincipalAxes() ([3]PrincipalAxis, error) {
	na := [3]PrincipalAxis{naAxis, naAxis, naAxis}

	majTrend, majPlunge, majLen, ok := e.search(Major)
	if !ok {
		return na, nil
	}
	minTrend, minPlunge, minLen, ok := e.search(Minor)
	if !ok {
		return na, nil
	}

	if majLen-minLen <= sphericalTolerance*majLen {
		r := e.DistanceToPerimeter([3]float64{1, 0, 0})
		return [3]PrincipalAxis{
			{Trend: 0, Plunge: 0, Length: r},
			{Trend: math.Pi / 2, Plunge: 0, Length: r},
			{Trend: 0, Plunge: math.Pi / 2, Length: r},
		}, nil
	}

	u := unitVector(majTrend, majPlunge)
	w := unitVector(minTrend, minPlunge)
	v := cross(u, w)
	if n := norm(v); math.Abs(n-1) > e.cfg.OrthogonalityTolerance {
		return na, fmt.Errorf("%w: |major x minor| = %.10f", ErrNotOrthogonal, n)
	}
	intTrend, intPlunge := trendPlunge(v)
	intTrend, intPlunge = normalizeAxis(intTrend, intPlunge)

	return [3]PrincipalAxis{
		{Trend: majTrend, Plunge: majPlunge, Length: majLen},
		{Trend: intTrend, Plunge: intPlunge, Length: e.DistanceToPerimeter(v)},
		{Trend: minTrend, Plunge: minPlunge, Length: minLen},
	}, nil
}

// HorizontalEllipse slices the ellipsoid with the horizontal plane at depth.
// The result is invalid, centered on the extrapolated slice center, when the
// plane misses the ellipsoid, and a point when it is tangent.
func (e *Ellipsoid) HorizontalEllipse(depth float64) (*Ellipse, error) {
	if len(e.coeff) != 7 || !(e.coeff[6] > 0) {
		return NewEllipse(e.center, nil), nil
	}
	c := e.coeff
	dz := depth - e.center.Depth
	xy, err := solve(
		[][]float64{{2 * c[0], c[1]}, {c[1], 2 * c[3]}},
		[]float64{-c[2] * dz, -c[4] * dz},
	)
	if err != nil {
		return nil, fmt.Errorf("horizontal slice at %.3f km: %w", depth, err)
	}
	x, y := xy[0], xy[1]
	center := e.center.Move(x, y, dz, 0)

	rhs := c[6] - (c[0]*x*x + c[1]*x*y + c[2]*x*dz + c[3]*y*y + c[4]*y*dz + c[5]*dz*dz)
	switch {
	case rhs < 0:
		return NewEllipse(center, nil), nil
	case rhs == 0:
		return NewEllipse(center, []float64{0, 0, 0, 0}), nil
	}
	return NewEllipse(center, []float64{c[0] / rhs, c[1] / rhs, c[3] / rhs, 1}), nil
}
