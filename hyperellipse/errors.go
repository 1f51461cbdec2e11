package hyperellipse

import "errors"

var (
	// ErrSingularMatrix is returned when a covariance submatrix or a slicing
	// system cannot be inverted.
	ErrSingularMatrix = errors.New("hyperellipse: singular matrix")

	// ErrNotOrthogonal is returned when the major and minor axes found by the
	// simplex search are not perpendicular.
	ErrNotOrthogonal = errors.New("hyperellipse: principal axes not orthogonal")

	// ErrNoPrincipalAxes is returned when the engine has no axis matrix.
	ErrNoPrincipalAxes = errors.New("hyperellipse: principal axes unavailable")

	// ErrBadParameter is returned for an empty, duplicated or out of range
	// parameter list.
	ErrBadParameter = errors.New("hyperellipse: bad parameter list")
)
