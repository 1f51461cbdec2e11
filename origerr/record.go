package origerr

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"uncertainty-go/hyperellipse"
)

// Axis is an ellipsoid axis in degrees and km.
type Axis struct {
	Trend  float64 `json:"trend"`
	Plunge float64 `json:"plunge"`
	Length float64 `json:"length"`
}

// Record is the origerr row of one event plus the hypocentral ellipsoid.
// Fields hold hyperellipse.NA where a value does not apply.
type Record struct {
	ID      uuid.UUID `json:"id"`
	Orid    int       `json:"orid"`
	EventID string    `json:"event_id"`

	Sxx float64 `json:"sxx"`
	Syy float64 `json:"syy"`
	Szz float64 `json:"szz"`
	Stt float64 `json:"stt"`
	Sxy float64 `json:"sxy"`
	Sxz float64 `json:"sxz"`
	Syz float64 `json:"syz"`
	Stx float64 `json:"stx"`
	Sty float64 `json:"sty"`
	Stz float64 `json:"stz"`

	Sdobs  float64 `json:"sdobs"`
	Smajax float64 `json:"smajax"`
	Sminax float64 `json:"sminax"`
	Strike float64 `json:"strike"`
	Sdepth float64 `json:"sdepth"`
	Stime  float64 `json:"stime"`
	Conf   float64 `json:"conf"`

	Area      float64 `json:"area"`
	Ellipsoid [3]Axis `json:"ellipsoid"`
	Valid     bool    `json:"valid"`
}

var naAxis = Axis{Trend: hyperellipse.NA, Plunge: hyperellipse.NA, Length: hyperellipse.NA}

// NewRecord evaluates h. The error is set only when the ellipsoid axis search
// breaks its orthogonality check.
func NewRecord(orid int, eventID string, h *hyperellipse.HyperEllipse) (Record, error) {
	r := Record{
		ID:      uuid.New(),
		Orid:    orid,
		EventID: eventID,
		Sxx:     h.Sxx(),
		Syy:     h.Syy(),
		Szz:     h.Szz(),
		Stt:     h.Stt(),
		Sxy:     h.Sxy(),
		Sxz:     h.Sxz(),
		Syz:     h.Syz(),
		Stx:     h.Stx(),
		Sty:     h.Sty(),
		Stz:     h.Stz(),
		Sdobs:   h.Sdobs(),
		Smajax:  h.Smajax(),
		Sminax:  h.Sminax(),
		Strike:  h.Strike(),
		Sdepth:  h.Sdepth(),
		Stime:   h.Stime(),
		Conf:    h.Conf(),
		Area:    hyperellipse.NA,
		Valid:   h.IsValid(),
	}
	if e := h.Ellipse(); e != nil {
		r.Area = e.Area()
	}

	r.Ellipsoid = [3]Axis{naAxis, naAxis, naAxis}
	if e := h.Ellipsoid(); e != nil && e.IsValid() {
		axes, err := e.PrincipalAxes()
		if err != nil {
			return r, fmt.Errorf("event %s: %w", eventID, err)
		}
		for i, a := range axes {
			if a.Length == hyperellipse.NA {
				continue
			}
			r.Ellipsoid[i] = Axis{
				Trend:  a.Trend * 180 / math.Pi,
				Plunge: a.Plunge * 180 / math.Pi,
				Length: a.Length,
			}
		}
	}
	return r, nil
}
