package hyperellipse

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// vtkSubdivisions sets the sphere tessellation: n subdivisions give 10·4ⁿ+2
// points and 20·4ⁿ triangles.
const vtkSubdivisions = 3

// WriteVTK writes the scaled ellipsoid surface to dir/name.vtk and its three
// principal axes to dir/name_axes.vtk as legacy ASCII POLYDATA. Coordinates
// are (east, north, down) km offsets from the center.
func (e *Ellipsoid) WriteVTK(dir, name string) error {
	if !e.IsValid() {
		return fmt.Errorf("vtk %s: ellipsoid is invalid", name)
	}
	axes, err := e.PrincipalAxes()
	if err != nil {
		return fmt.Errorf("vtk %s: %w", name, err)
	}
	if axes[Major].Length == NA {
		return fmt.Errorf("vtk %s: no principal axes", name)
	}
	s := math.Sqrt(e.scale())

	verts, tris := unitSphere(vtkSubdivisions)
	pts := make([][3]float64, len(verts))
	for i, v := range verts {
		d := e.DistanceToPerimeter(v) * s
		pts[i] = [3]float64{v[1] * d, v[0] * d, v[2] * d}
	}
	cells := make([][]int, len(tris))
	for i, t := range tris {
		cells[i] = []int{t[0], t[1], t[2]}
	}
	title := fmt.Sprintf("ellipsoid %s center %s", name, e.center)
	if err := writePolyData(filepath.Join(dir, name+".vtk"), title, pts, "POLYGONS", cells); err != nil {
		return err
	}

	axisPts := make([][3]float64, 0, 6)
	axisCells := make([][]int, 0, 3)
	for i, a := range axes {
		v := a.Vector()
		axisPts = append(axisPts,
			[3]float64{-v[1] * a.Length, -v[0] * a.Length, -v[2] * a.Length},
			[3]float64{v[1] * a.Length, v[0] * a.Length, v[2] * a.Length})
		axisCells = append(axisCells, []int{2 * i, 2*i + 1})
	}
	title = fmt.Sprintf("ellipsoid axes %s center %s", name, e.center)
	return writePolyData(filepath.Join(dir, name+"_axes.vtk"), title, axisPts, "LINES", axisCells)
}

func writePolyData(path, title string, pts [][3]float64, kind string, cells [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# vtk DataFile Version 3.0\n%s\nASCII\nDATASET POLYDATA\n", title)
	fmt.Fprintf(w, "POINTS %d double\n", len(pts))
	for _, p := range pts {
		fmt.Fprintf(w, "%.6f %.6f %.6f\n", p[0], p[1], p[2])
	}
	size := 0
	for _, c := range cells {
		size += len(c) + 1
	}
	fmt.Fprintf(w, "%s %d %d\n", kind, len(cells), size)
	for _, c := range cells {
		fmt.Fprintf(w, "%d", len(c))
		for _, idx := range c {
			fmt.Fprintf(w, " %d", idx)
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// unitSphere subdivides an icosahedron n times and projects the vertices
// onto the unit sphere.
func unitSphere(n int) ([][3]float64, [][3]int) {
	t := (1 + math.Sqrt(5)) / 2
	verts := [][3]float64{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	for i := range verts {
		verts[i] = unit(verts[i])
	}
	tris := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	for ; n > 0; n-- {
		mid := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{a, b}
			if a > b {
				key = [2]int{b, a}
			}
			if idx, ok := mid[key]; ok {
				return idx
			}
			p, q := verts[a], verts[b]
			verts = append(verts, unit([3]float64{p[0] + q[0], p[1] + q[1], p[2] + q[2]}))
			mid[key] = len(verts) - 1
			return len(verts) - 1
		}
		next := make([][3]int, 0, 4*len(tris))
		for _, tr := range tris {
			ab := midpoint(tr[0], tr[1])
			bc := midpoint(tr[1], tr[2])
			ca := midpoint(tr[2], tr[0])
			next = append(next,
				[3]int{tr[0], ab, ca}, [3]int{tr[1], bc, ab},
				[3]int{tr[2], ca, bc}, [3]int{ab, bc, ca})
		}
		tris = next
	}
	return verts, tris
}

func unit(v [3]float64) [3]float64 {
	n := norm(v)
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}
