package solution

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"uncertainty-go/hyperellipse"
)

// AxisTolerance bounds the column dot products accepted for an axis matrix.
const AxisTolerance = 1e-6

// Solution is one converged location with the inputs of its hyper-ellipse.
type Solution struct {
	ID     string
	Center hyperellipse.Location
	Fixed  [4]bool
	Axes   *hyperellipse.AxisMatrix // nil when the solver reported no statistics
	Stats  hyperellipse.Statistics
}

// Engine builds the hyper-ellipse for the solution.
func (s Solution) Engine(cfg hyperellipse.Config) *hyperellipse.HyperEllipse {
	return hyperellipse.NewHyperEllipse(s.Center, s.Fixed, s.Axes, s.Stats, cfg)
}

// ParseFile reads solutions from an XML file:
//
//	<solutions>
//	  <solution id="e1" nobs="20" k="-1" apriori="1" sumsqr="16" conf="0.9" sdobs="0.8" fixed="depth">
//	    <center lat="36" lon="-112" depth="10" time="1262304000"/>
//	    <axis lat="1" lon="0" depth="0" time="0" length="10"/>
//	    ... four axis elements, or none
//	  </solution>
//	</solutions>
func ParseFile(path string) ([]Solution, error) {
	dec, f, err := readXML(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(dec)
}

// Parse reads solutions from r, see ParseFile.
func Parse(r io.Reader) ([]Solution, error) {
	return parse(xml.NewDecoder(r))
}

func parse(dec *xml.Decoder) ([]Solution, error) {
	var out []Solution
	var cur *Solution
	var axes [][5]float64
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse solutions: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "solution":
				s, err := parseSolution(t)
				if err != nil {
					return nil, err
				}
				cur = &s
				axes = axes[:0]
			case "center":
				if cur == nil {
					continue
				}
				c, err := parseLocation(t)
				if err != nil {
					return nil, fmt.Errorf("solution %s center: %w", cur.ID, err)
				}
				cur.Center = c
			case "axis":
				if cur == nil {
					continue
				}
				a, err := parseAxis(t)
				if err != nil {
					return nil, fmt.Errorf("solution %s axis %d: %w", cur.ID, len(axes)+1, err)
				}
				axes = append(axes, a)
			}
		case xml.EndElement:
			if t.Name.Local != "solution" || cur == nil {
				continue
			}
			if err := cur.setAxes(axes); err != nil {
				return nil, err
			}
			out = append(out, *cur)
			cur = nil
		}
	}
	return out, nil
}

func (s *Solution) setAxes(axes [][5]float64) error {
	switch len(axes) {
	case 0:
		return nil
	case 4:
	default:
		return fmt.Errorf("solution %s: %d axes, want 4 or none", s.ID, len(axes))
	}
	var m hyperellipse.AxisMatrix
	for col, a := range axes {
		for row := 0; row < 5; row++ {
			m[row][col] = a[row]
		}
	}
	if err := m.CheckOrthonormal(AxisTolerance); err != nil {
		return fmt.Errorf("solution %s: %w", s.ID, err)
	}
	s.Axes = &m
	return nil
}

func parseSolution(start xml.StartElement) (Solution, error) {
	s := Solution{Stats: hyperellipse.Statistics{K: -1, AprioriVariance: 1, Confidence: 0.9}}
	var ok bool
	if s.ID, ok = attrValue(start, "id"); !ok {
		return s, fmt.Errorf("solution without id")
	}
	if s.Stats.Nobs, ok = parseIntAttr(start, "nobs"); !ok {
		return s, fmt.Errorf("solution %s: missing or bad nobs", s.ID)
	}
	if v, ok := parseIntAttr(start, "k"); ok {
		s.Stats.K = v
	}
	if v, ok := parseFloatAttr(start, "apriori"); ok {
		s.Stats.AprioriVariance = v
	}
	if v, ok := parseFloatAttr(start, "sumsqr"); ok {
		s.Stats.SumSqrWeightedResiduals = v
	}
	if v, ok := parseFloatAttr(start, "conf"); ok {
		s.Stats.Confidence = v
	}
	if v, ok := parseFloatAttr(start, "sdobs"); ok {
		s.Stats.Sdobs = v
	}
	if v, ok := attrValue(start, "fixed"); ok {
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(strings.ToLower(name))
			if name == "" {
				continue
			}
			p, err := hyperellipse.ParseParam(name)
			if err != nil {
				return s, fmt.Errorf("solution %s: %w", s.ID, err)
			}
			s.Fixed[p] = true
		}
	}
	return s, nil
}

func parseLocation(start xml.StartElement) (hyperellipse.Location, error) {
	var l hyperellipse.Location
	vals, err := requireFloats(start, "lat", "lon", "depth", "time")
	if err != nil {
		return l, err
	}
	return hyperellipse.Location{Lat: vals[0], Lon: vals[1], Depth: vals[2], Time: vals[3]}, nil
}

func parseAxis(start xml.StartElement) ([5]float64, error) {
	var a [5]float64
	vals, err := requireFloats(start, "lat", "lon", "depth", "time", "length")
	if err != nil {
		return a, err
	}
	copy(a[:], vals)
	return a, nil
}

func requireFloats(start xml.StartElement, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, n := range names {
		v, ok := parseFloatAttr(start, n)
		if !ok {
			return nil, fmt.Errorf("missing or bad %s", n)
		}
		out[i] = v
	}
	return out, nil
}

func readXML(path string) (*xml.Decoder, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	dec := xml.NewDecoder(f)
	return dec, f, nil
}

func attrValue(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func parseFloatAttr(start xml.StartElement, name string) (float64, bool) {
	if v, ok := attrValue(start, name); ok {
		val, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return val, true
		}
	}
	return 0, false
}

func parseIntAttr(start xml.StartElement, name string) (int, bool) {
	if v, ok := attrValue(start, name); ok {
		val, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return val, true
		}
	}
	return 0, false
}
