package hyperellipse

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Axis names a principal axis of an ellipsoid.
type Axis int

const (
	Major Axis = iota
	Intermediate
	Minor
)

func (a Axis) String() string {
	switch a {
	case Major:
		return "major"
	case Intermediate:
		return "intermediate"
	case Minor:
		return "minor"
	}
	return "unknown"
}

// objectiveSign turns the distance to perimeter into a quantity to minimize.
func (a Axis) objectiveSign() float64 {
	if a == Major {
		return -1
	}
	return 1
}

// search runs Nelder-Mead over (trend, plunge) for the direction with the
// longest (Major) or shortest (Minor) distance to perimeter. ok is false when
// the optimizer produced no usable point.
func (e *Ellipsoid) search(axis Axis) (trend, plunge, length float64, ok bool) {
	sign := axis.objectiveSign()
	objective := func(x []float64) float64 {
		d := e.DistanceToPerimeter(unitVector(x[0], x[1]))
		if math.IsNaN(d) || d > math.MaxFloat64 {
			d = math.MaxFloat64
		}
		return sign * d
	}

	vertices := make([][]float64, len(simplexSeeds))
	values := make([]float64, len(simplexSeeds))
	for i, s := range simplexSeeds {
		vertices[i] = []float64{s[0], s[1]}
		values[i] = objective(vertices[i])
	}
	method := &optimize.NelderMead{InitialVertices: vertices, InitialValues: values}
	settings := &optimize.Settings{
		MajorIterations: e.cfg.SimplexMaxIterations,
		Converger: &optimize.FunctionConverge{
			Relative:   e.cfg.SimplexTolerance,
			Iterations: simplexStallIterations,
		},
	}
	res, _ := optimize.Minimize(optimize.Problem{Func: objective}, []float64{simplexSeeds[0][0], simplexSeeds[0][1]}, settings, method)
	// Hitting the iteration cap still leaves the best vertex in res.
	if res == nil || len(res.X) != 2 {
		return 0, 0, 0, false
	}
	length = sign * res.F
	if !(length > 0) || length >= math.MaxFloat64 {
		return 0, 0, 0, false
	}
	trend, plunge = normalizeAxis(res.X[0], res.X[1])
	return trend, plunge, length, true
}
