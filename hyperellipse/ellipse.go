package hyperellipse

import (
	"math"
)

// Ellipse is the quadric c0·x² + c1·xy + c2·y² = rhs in km, x north and y
// east of the center. All-zero quadratic terms describe a point.
// An Ellipse is not safe for concurrent use.
type Ellipse struct {
	center Location
	coeff  []float64
	axes   *memo[ellipseAxes]
}

type ellipseAxes struct {
	major, minor float64 // unscaled semi-axes
	trend        float64 // radians clockwise from north, [0, π)
	point        bool
	ok           bool
}

// NewEllipse copies coeff, which must hold 4 values to be valid.
func NewEllipse(center Location, coeff []float64) *Ellipse {
	var c []float64
	if coeff != nil {
		c = append([]float64(nil), coeff...)
	}
	return &Ellipse{center: center, coeff: c, axes: &memo[ellipseAxes]{}}
}

func (e *Ellipse) Center() Location { return e.center }

// Coefficients returns a copy of c0, c1, c2, rhs.
func (e *Ellipse) Coefficients() []float64 {
	if e.coeff == nil {
		return nil
	}
	return append([]float64(nil), e.coeff...)
}

func (e *Ellipse) IsValid() bool {
	if len(e.coeff) != 4 {
		return false
	}
	return e.principalAxes().ok
}

// SetScaleFactor replaces rhs, normally with kappa².
func (e *Ellipse) SetScaleFactor(kappaSqr float64) {
	if len(e.coeff) == 4 {
		e.coeff[3] = kappaSqr
	}
}

// WithScale returns a copy with rhs set to kappaSqr. The copy shares the
// principal axes already found for e.
func (e *Ellipse) WithScale(kappaSqr float64) *Ellipse {
	c := *e
	c.coeff = e.Coefficients()
	c.SetScaleFactor(kappaSqr)
	return &c
}

func (e *Ellipse) scale() float64 {
	if len(e.coeff) != 4 || e.coeff[3] < 0 {
		return 0
	}
	return e.coeff[3]
}

func (e *Ellipse) principalAxes() ellipseAxes {
	ax, _ := e.axes.get(func() (ellipseAxes, error) {
		return e.findPrincipalAxes(), nil
	})
	return ax
}

// findPrincipalAxes diagonalizes the form in the local (east, north) frame
// and reports the trend clockwise from north.
func (e *Ellipse) findPrincipalAxes() ellipseAxes {
	if len(e.coeff) != 4 {
		return ellipseAxes{}
	}
	if e.coeff[0] == 0 && e.coeff[1] == 0 && e.coeff[2] == 0 {
		return ellipseAxes{point: true, ok: true}
	}
	a, b, c := e.coeff[2], e.coeff[1], e.coeff[0]

	trend := 0.0
	if math.Abs(b) > negligibleCrossTerm*math.Abs(a-c) {
		eps := (a - c) / b
		trend = math.Atan(-eps + math.Sqrt(eps*eps+1))
	}
	ct, st := math.Cos(trend), math.Sin(trend)
	cc, ss, sc := ct*ct, st*st, st*ct

	d1 := a*cc + b*sc + c*ss
	d2 := a*ss - b*sc + c*cc
	if d1 <= 0 || d2 <= 0 || math.IsNaN(d1) || math.IsNaN(d2) {
		for i := range e.coeff {
			e.coeff[i] = NAValue
		}
		return ellipseAxes{}
	}
	ax := ellipseAxes{major: math.Sqrt(1 / d1), minor: math.Sqrt(1 / d2), ok: true}
	if ax.minor > ax.major {
		ax.major, ax.minor = ax.minor, ax.major
		trend += math.Pi / 2
	}
	ax.trend = wrap(math.Pi/2-trend, 0, math.Pi)
	return ax
}

// MajaxLength is the scaled semi-major axis in km, or -1.
func (e *Ellipse) MajaxLength() float64 {
	if !e.IsValid() {
		return NA
	}
	return e.principalAxes().major * math.Sqrt(e.scale())
}

// MinaxLength is the scaled semi-minor axis in km, or -1.
func (e *Ellipse) MinaxLength() float64 {
	if !e.IsValid() {
		return NA
	}
	return e.principalAxes().minor * math.Sqrt(e.scale())
}

// MajaxTrend is the major axis azimuth in radians clockwise from north,
// in [0, π), or -1.
func (e *Ellipse) MajaxTrend() float64 {
	if !e.IsValid() {
		return NA
	}
	return e.principalAxes().trend
}

// Area of the scaled ellipse in km².
func (e *Ellipse) Area() float64 {
	if !e.IsValid() {
		return NA
	}
	s := e.scale()
	if s <= 0 {
		return 0
	}
	a, b, c := e.coeff[0]/s, e.coeff[1]/s, e.coeff[2]/s
	radical := 4*a*c - b*b
	if radical <= 0 {
		return 0
	}
	return 2 * math.Pi / math.Sqrt(radical)
}

// DistanceToPerimeter is the center to perimeter distance along the unit
// vector v = (north, east). Unscaled distances use rhs = 1.
func (e *Ellipse) DistanceToPerimeter(v [2]float64, scaled bool) float64 {
	if len(e.coeff) != 4 {
		return math.NaN()
	}
	q := e.coeff[0]*v[0]*v[0] + e.coeff[1]*v[0]*v[1] + e.coeff[2]*v[1]*v[1]
	s := 1.0
	if scaled {
		s = e.scale()
	}
	if q <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(s / q)
}

// DistanceToPerimeterAzimuth is the scaled center to perimeter distance in km
// along azimuth az (radians clockwise from north), or -1.
func (e *Ellipse) DistanceToPerimeterAzimuth(az float64) float64 {
	if !e.IsValid() {
		return NA
	}
	a, b := e.MajaxLength(), e.MinaxLength()
	if a == 0 || b == 0 {
		return 0
	}
	theta := e.MajaxTrend() - az
	x, y := a*math.Sin(theta), b*math.Cos(theta)
	return a * b / math.Sqrt(x*x+y*y)
}

// Points returns n points of the scaled perimeter as (north, east) km offsets
// from the center, starting and ending at azimuth 0.
func (e *Ellipse) Points(n int) [][2]float64 {
	if !e.IsValid() || n < 2 {
		return nil
	}
	pts := make([][2]float64, n)
	for i := range pts {
		az := 2 * math.Pi * float64(i) / float64(n-1)
		d := e.DistanceToPerimeterAzimuth(az)
		pts[i] = [2]float64{d * math.Cos(az), d * math.Sin(az)}
	}
	return pts
}

// ValidityTest classifies the conic from its coefficients and reports
// whether it is a real ellipse.
func (e *Ellipse) ValidityTest() bool {
	if len(e.coeff) != 4 {
		return false
	}
	a, h, b, rhs := e.coeff[0], e.coeff[1]/2, e.coeff[2], e.coeff[3]
	// | a h 0 |
	// | h b 0 |
	// | 0 0 -rhs |
	det := -rhs * (a*b - h*h)
	if det == 0 {
		return false
	}
	minor := a*b - h*h
	if minor <= 0 {
		return false
	}
	if det/(a+b) > 0 {
		return false
	}
	return true
}
