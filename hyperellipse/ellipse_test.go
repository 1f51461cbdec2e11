package hyperellipse

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rotatedEllipse has semi-axes a (along azimuth az, clockwise from north)
// and b, with rhs 1.
func rotatedEllipse(a, b, az float64) *Ellipse {
	m := [2]float64{math.Cos(az), math.Sin(az)}
	n := [2]float64{-math.Sin(az), math.Cos(az)}
	nn := m[0]*m[0]/(a*a) + n[0]*n[0]/(b*b)
	ne := m[0]*m[1]/(a*a) + n[0]*n[1]/(b*b)
	ee := m[1]*m[1]/(a*a) + n[1]*n[1]/(b*b)
	return NewEllipse(testCenter, []float64{nn, 2 * ne, ee, 1})
}

func TestEllipseAxesAndTrend(t *testing.T) {
	tests := []struct {
		name       string
		e          *Ellipse
		majax      float64
		minax      float64
		trendDeg   float64
		checkTrend bool
	}{
		{"north", NewEllipse(testCenter, []float64{0.01, 0, 0.04, 1}), 10, 5, 0, true},
		{"east", NewEllipse(testCenter, []float64{0.04, 0, 0.01, 1}), 10, 5, 90, true},
		{"az 30", rotatedEllipse(10, 4, 30*math.Pi/180), 10, 4, 30, true},
		{"az 120", rotatedEllipse(10, 4, 120*math.Pi/180), 10, 4, 120, true},
		{"az 150", rotatedEllipse(10, 4, 150*math.Pi/180), 10, 4, 150, true},
		{"az 200 folds to 20", rotatedEllipse(7, 3, 200*math.Pi/180), 7, 3, 20, true},
		{"circle", NewEllipse(testCenter, []float64{0.25, 0, 0.25, 1}), 2, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, tt.e.IsValid())
			assert.True(t, tt.e.ValidityTest())
			assert.InDelta(t, tt.majax, tt.e.MajaxLength(), 1e-9)
			assert.InDelta(t, tt.minax, tt.e.MinaxLength(), 1e-9)
			trend := tt.e.MajaxTrend()
			assert.GreaterOrEqual(t, trend, 0.0)
			assert.Less(t, trend, math.Pi)
			if tt.checkTrend {
				assert.InDelta(t, tt.trendDeg, trend*180/math.Pi, 1e-7)
			}
			assert.InDelta(t, math.Pi*tt.majax*tt.minax, tt.e.Area(), 1e-7)
		})
	}
}

func TestEllipseScale(t *testing.T) {
	e := NewEllipse(testCenter, []float64{0.01, 0, 0.04, 1})
	s := e.WithScale(4)
	assert.InDelta(t, 10, e.MajaxLength(), 1e-12)
	assert.InDelta(t, 20, s.MajaxLength(), 1e-12)
	assert.InDelta(t, 10, s.MinaxLength(), 1e-12)
	assert.InDelta(t, math.Pi*200, s.Area(), 1e-9)

	assert.InDelta(t, 10, s.DistanceToPerimeter([2]float64{1, 0}, false), 1e-12)
	assert.InDelta(t, 20, s.DistanceToPerimeter([2]float64{1, 0}, true), 1e-12)
	assert.InDelta(t, 10, s.DistanceToPerimeter([2]float64{0, 1}, true), 1e-12)

	e.SetScaleFactor(0)
	assert.Equal(t, 0.0, e.MajaxLength())
	assert.Equal(t, 0.0, e.Area())
}

func TestEllipseInvalid(t *testing.T) {
	hyperbola := NewEllipse(testCenter, []float64{1, 0, -1, 1})
	assert.False(t, hyperbola.ValidityTest())
	assert.False(t, hyperbola.IsValid())
	assert.Equal(t, NA, hyperbola.MajaxLength())
	assert.Equal(t, NA, hyperbola.MinaxLength())
	assert.Equal(t, NA, hyperbola.MajaxTrend())
	assert.Equal(t, NA, hyperbola.Area())
	assert.Equal(t, []float64{NAValue, NAValue, NAValue, NAValue}, hyperbola.Coefficients())
	assert.Nil(t, hyperbola.Points(10))

	missing := NewEllipse(testCenter, nil)
	assert.False(t, missing.IsValid())
	assert.False(t, missing.ValidityTest())
	assert.Equal(t, NA, missing.Area())
	assert.True(t, math.IsNaN(missing.DistanceToPerimeter([2]float64{1, 0}, true)))
}

func TestEllipseValidityTest(t *testing.T) {
	tests := []struct {
		name  string
		coeff []float64
		want  bool
	}{
		{"ellipse", []float64{1, 0.5, 2, 1}, true},
		{"imaginary", []float64{1, 0, 1, -1}, false},
		{"degenerate point", []float64{1, 0, 1, 0}, false},
		{"parabolic", []float64{1, 2, 1, 1}, false},
		{"hyperbola", []float64{1, 3, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewEllipse(testCenter, tt.coeff).ValidityTest())
		})
	}
}

func TestEllipsePerimeter(t *testing.T) {
	e := rotatedEllipse(10, 4, 30*math.Pi/180).WithScale(2.25)
	trend := e.MajaxTrend()
	assert.InDelta(t, e.MajaxLength(), e.DistanceToPerimeterAzimuth(trend), 1e-9)
	assert.InDelta(t, e.MinaxLength(), e.DistanceToPerimeterAzimuth(trend+math.Pi/2), 1e-9)

	c := e.Coefficients()
	pts := e.Points(73)
	require.Len(t, pts, 73)
	assert.InDelta(t, pts[0][0], pts[72][0], 1e-9)
	for _, p := range pts {
		q := c[0]*p[0]*p[0] + c[1]*p[0]*p[1] + c[2]*p[1]*p[1]
		assert.InDelta(t, c[3], q, 1e-9)
	}
}

func TestEllipsePoint(t *testing.T) {
	e := NewEllipse(testCenter, []float64{0, 0, 0, 0})
	require.True(t, e.IsValid())
	assert.Equal(t, 0.0, e.MajaxLength())
	assert.Equal(t, 0.0, e.MinaxLength())
	assert.Equal(t, 0.0, e.Area())
	assert.Equal(t, 0.0, e.DistanceToPerimeterAzimuth(1))
}
