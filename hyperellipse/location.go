package hyperellipse

import (
	"fmt"
	"math"
)

// Location is a hypocenter: degrees, degrees, km below surface, epoch seconds.
type Location struct {
	Lat   float64
	Lon   float64
	Depth float64
	Time  float64
}

// Move translates the location by a local offset given in km north, km east,
// km down and seconds.
func (l Location) Move(dNorth, dEast, dDepth, dTime float64) Location {
	lat := l.Lat + dNorth/EarthRadiusKm*180.0/math.Pi
	lon := l.Lon
	if c := math.Cos(l.Lat * math.Pi / 180.0); c > 1e-12 {
		lon += dEast / (EarthRadiusKm * c) * 180.0 / math.Pi
	}
	if lat > 90 {
		lat = 180 - lat
		lon += 180
	} else if lat < -90 {
		lat = -180 - lat
		lon += 180
	}
	lon = math.Mod(lon+540, 360) - 180
	return Location{Lat: lat, Lon: lon, Depth: l.Depth + dDepth, Time: l.Time + dTime}
}

// Vector returns the earth-centered position in km.
func (l Location) Vector() [3]float64 {
	r := EarthRadiusKm - l.Depth
	lat := l.Lat * math.Pi / 180.0
	lon := l.Lon * math.Pi / 180.0
	return [3]float64{
		r * math.Cos(lat) * math.Cos(lon),
		r * math.Cos(lat) * math.Sin(lon),
		r * math.Sin(lat),
	}
}

func (l Location) String() string {
	return fmt.Sprintf("%.4f %.4f %.3f %.3f", l.Lat, l.Lon, l.Depth, l.Time)
}
