package ellipseplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"uncertainty-go/hyperellipse"
)

// perimeterPoints is the number of vertices drawn per ellipse.
const perimeterPoints = 181

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
}

// Curve is one ellipse to draw.
type Curve struct {
	Label   string
	Ellipse *hyperellipse.Ellipse
}

// Save draws the curves in map view (east right, north up) as km offsets from
// the first curve's center and writes the image to path. The format follows
// the file extension. Invalid ellipses are skipped.
func Save(path, title string, curves ...Curve) error {
	if len(curves) == 0 || curves[0].Ellipse == nil {
		return fmt.Errorf("plot %s: no ellipse", path)
	}
	origin := curves[0].Ellipse.Center()

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "East (km)"
	p.Y.Label.Text = "North (km)"
	p.Add(plotter.NewGrid())

	extent := 0.0
	drawn := 0
	for i, c := range curves {
		e := c.Ellipse
		if e == nil || !e.IsValid() {
			continue
		}
		dn, de := offsetKm(origin, e.Center())
		pts := e.Points(perimeterPoints)
		xys := make(plotter.XYs, 0, len(pts))
		for _, q := range pts {
			xys = append(xys, plotter.XY{X: de + q[1], Y: dn + q[0]})
			extent = math.Max(extent, math.Max(math.Abs(de+q[1]), math.Abs(dn+q[0])))
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("plot %s: %w", path, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1.5)
		p.Add(line)
		if c.Label != "" {
			p.Legend.Add(c.Label, line)
		}

		// Major axis.
		a, tr := e.MajaxLength(), e.MajaxTrend()
		axis, err := plotter.NewLine(plotter.XYs{
			{X: de - a*math.Sin(tr), Y: dn - a*math.Cos(tr)},
			{X: de + a*math.Sin(tr), Y: dn + a*math.Cos(tr)},
		})
		if err != nil {
			return fmt.Errorf("plot %s: %w", path, err)
		}
		axis.Color = palette[i%len(palette)]
		axis.Width = vg.Points(0.5)
		axis.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(axis)
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("plot %s: no valid ellipse", path)
	}
	if extent == 0 {
		extent = 1
	}
	extent *= 1.1
	p.X.Min, p.X.Max = -extent, extent
	p.Y.Min, p.Y.Max = -extent, extent
	p.Legend.Top = true

	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// offsetKm is the local (north, east) offset of to from from.
func offsetKm(from, to hyperellipse.Location) (float64, float64) {
	dn := (to.Lat - from.Lat) * math.Pi / 180 * hyperellipse.EarthRadiusKm
	dLon := math.Mod(to.Lon-from.Lon+540, 360) - 180
	de := dLon * math.Pi / 180 * hyperellipse.EarthRadiusKm * math.Cos(from.Lat*math.Pi/180)
	return dn, de
}
