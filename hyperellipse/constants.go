package hyperellipse

import "fmt"

// Param indexes one of the four location parameters.
type Param int

// Parameter order used by AxisMatrix rows, covariance and coefficients.
const (
	Lat Param = iota
	Lon
	Depth
	Time
)

func (p Param) String() string {
	switch p {
	case Lat:
		return "lat"
	case Lon:
		return "lon"
	case Depth:
		return "depth"
	case Time:
		return "time"
	}
	return "unknown"
}

// ParseParam maps "lat", "lon", "depth" or "time" to its Param.
func ParseParam(name string) (Param, error) {
	for p := Lat; p <= Time; p++ {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown parameter %q", ErrBadParameter, name)
}

// NA is the origerr not-applicable value for sxx..stz, sdepth, stime, smajax,
// sminax and strike.
const NA = -1.0

// NAValue marks quadratic coefficients that no longer describe an ellipse.
const NAValue = -999999.0

// EarthRadiusKm is the mean radius used by Location.Move.
const EarthRadiusKm = 6371.0

// Defaults for Config.
const (
	DefaultOrthogonalityTolerance = 1e-7
	DefaultSimplexTolerance       = 1e-8
	DefaultSimplexMaxIterations   = 1000
)

// MaxConfidence is the upper bound (exclusive) for a finite kappa.
const MaxConfidence = 0.999

// simplexStallIterations is how many non-improving simplex steps end a search.
const simplexStallIterations = 200

// sphericalTolerance is the relative major/minor difference below which an
// ellipsoid is treated as a sphere.
const sphericalTolerance = 1e-6

// negligibleCrossTerm scales |c0-c2| to decide whether c1 is effectively zero.
const negligibleCrossTerm = 1e-60

// Nelder-Mead seeds in (trend, plunge) radians.
var simplexSeeds = [3][2]float64{{0, 0.7}, {0, 0.8}, {0.1, 0.75}}
