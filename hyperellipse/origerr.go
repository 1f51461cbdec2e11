package hyperellipse

import "math"

// covEntry returns cov[a][b], or NA when statistics are missing, the
// uncertainty is unbounded or either parameter is fixed.
func (h *HyperEllipse) covEntry(a, b Param) float64 {
	if !h.available(a, b) {
		return NA
	}
	cov, err := h.Covariance()
	if err != nil {
		return NA
	}
	return cov[a][b]
}

func (h *HyperEllipse) available(params ...Param) bool {
	if h.axes == nil || h.infinite {
		return false
	}
	for _, p := range params {
		if h.fixed[p] {
			return false
		}
	}
	return true
}

// Covariance entries in km², km·s and s².
func (h *HyperEllipse) Sxx() float64 { return h.covEntry(Lat, Lat) }
func (h *HyperEllipse) Syy() float64 { return h.covEntry(Lon, Lon) }
func (h *HyperEllipse) Szz() float64 { return h.covEntry(Depth, Depth) }
func (h *HyperEllipse) Stt() float64 { return h.covEntry(Time, Time) }
func (h *HyperEllipse) Sxy() float64 { return h.covEntry(Lat, Lon) }
func (h *HyperEllipse) Sxz() float64 { return h.covEntry(Lat, Depth) }
func (h *HyperEllipse) Syz() float64 { return h.covEntry(Lon, Depth) }
func (h *HyperEllipse) Stx() float64 { return h.covEntry(Time, Lat) }
func (h *HyperEllipse) Sty() float64 { return h.covEntry(Time, Lon) }
func (h *HyperEllipse) Stz() float64 { return h.covEntry(Time, Depth) }

// Sdepth is the depth uncertainty in km at the configured confidence.
func (h *HyperEllipse) Sdepth() float64 { return h.oneD(Depth) }

// Stime is the origin time uncertainty in seconds at the configured confidence.
func (h *HyperEllipse) Stime() float64 { return h.oneD(Time) }

func (h *HyperEllipse) oneD(p Param) float64 {
	v := h.covEntry(p, p)
	if v == NA || v < 0 {
		return NA
	}
	return math.Sqrt(v) * h.Kappa(1)
}

// Ellipse is the epicentral ellipse scaled by kappa(2)², or nil when the
// epicenter is not free.
func (h *HyperEllipse) Ellipse() *Ellipse {
	if !h.available(Lat, Lon) {
		return nil
	}
	k := h.Kappa(2)
	return h.ProjectedEllipse(k * k)
}

// Ellipsoid is the hypocentral ellipsoid scaled by kappa(3)², or nil when
// latitude, longitude or depth is fixed.
func (h *HyperEllipse) Ellipsoid() *Ellipsoid {
	if !h.available(Lat, Lon, Depth) {
		return nil
	}
	k := h.Kappa(3)
	return h.ProjectedEllipsoid(k * k)
}

// Smajax is the epicentral semi-major axis in km.
func (h *HyperEllipse) Smajax() float64 {
	if e := h.Ellipse(); e != nil {
		return e.MajaxLength()
	}
	return NA
}

// Sminax is the epicentral semi-minor axis in km.
func (h *HyperEllipse) Sminax() float64 {
	if e := h.Ellipse(); e != nil {
		return e.MinaxLength()
	}
	return NA
}

// Strike is the major axis azimuth in degrees clockwise from north.
func (h *HyperEllipse) Strike() float64 {
	if e := h.Ellipse(); e != nil && e.IsValid() {
		return e.MajaxTrend() * 180 / math.Pi
	}
	return NA
}

func (h *HyperEllipse) Sdobs() float64 { return h.stats.Sdobs }
func (h *HyperEllipse) Conf() float64  { return h.stats.Confidence }
