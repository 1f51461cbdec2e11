package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"uncertainty-go/ellipseplot"
	"uncertainty-go/hyperellipse"
	"uncertainty-go/origerr"
	"uncertainty-go/solution"
	"uncertainty-go/web"
)

func main() {
	inPath := flag.String("in", "", "Input solutions XML")
	outPath := flag.String("out", "origerr.csv", "Output CSV path")
	flatPath := flag.String("flat", "", "Optional fixed-width origerr output")
	workers := flag.Int("workers", 0, "Concurrent events (0 = GOMAXPROCS)")
	vtkDir := flag.String("vtk", "", "Directory for ellipsoid VTK meshes")
	plotDir := flag.String("plot", "", "Directory for epicentral ellipse plots")
	plotExt := flag.String("plot-format", "png", "Plot format: png, svg or pdf")
	sliceDepths := flag.String("slice-depths", "", "Comma-separated depths (km) of ellipsoid slices to add to plots")
	httpPort := flag.Int("http", 0, "Serve records on this port after processing (0 = off)")
	orthTol := flag.Float64("orth-tol", hyperellipse.DefaultOrthogonalityTolerance, "Principal axis orthogonality tolerance")
	simplexTol := flag.Float64("simplex-tol", hyperellipse.DefaultSimplexTolerance, "Axis search convergence tolerance")
	simplexIter := flag.Int("simplex-iter", hyperellipse.DefaultSimplexMaxIterations, "Axis search iteration cap")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("--in required")
		os.Exit(1)
	}
	depths, err := parseDepths(*sliceDepths)
	if err != nil {
		fmt.Printf("invalid slice depths: %v\n", err)
		os.Exit(1)
	}

	sols, err := solution.ParseFile(*inPath)
	if err != nil {
		fmt.Printf("parse solutions failed: %v\n", err)
		os.Exit(1)
	}
	log.Printf("loaded %d solutions from %s", len(sols), *inPath)

	cfg := hyperellipse.DefaultConfig()
	cfg.OrthogonalityTolerance = *orthTol
	cfg.SimplexTolerance = *simplexTol
	cfg.SimplexMaxIterations = *simplexIter

	start := time.Now()
	results, err := origerr.ComputeBatch(context.Background(), sols, cfg, *workers)
	if err != nil {
		fmt.Printf("compute failed: %v\n", err)
		os.Exit(1)
	}
	recs := origerr.Records(results)
	log.Printf("computed %d/%d records in %v", len(recs), len(sols), time.Since(start))

	if err := writeFile(*outPath, func(f *os.File) error { return origerr.WriteCSV(f, recs) }); err != nil {
		fmt.Printf("write csv failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %s\n", *outPath)

	if *flatPath != "" {
		lddate := time.Now()
		if err := writeFile(*flatPath, func(f *os.File) error { return origerr.WriteFlat(f, recs, lddate) }); err != nil {
			fmt.Printf("write flat failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s\n", *flatPath)
	}

	for _, r := range results {
		id := r.Record.EventID
		if *vtkDir != "" {
			writeVTK(r.Engine, *vtkDir, id)
		}
		if *plotDir != "" {
			writePlot(r.Engine, filepath.Join(*plotDir, id+"."+*plotExt), id, depths)
		}
	}

	if *httpPort > 0 {
		srv := web.NewServer()
		n := srv.Publish(recs)
		log.Printf("publishing %d records", n)
		if err := srv.Start(*httpPort); err != nil {
			log.Fatalf("http server: %v", err)
		}
	}
}

func parseDepths(s string) ([]float64, error) {
	var out []float64
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func writeFile(path string, write func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeVTK(h *hyperellipse.HyperEllipse, dir, id string) {
	e := h.Ellipsoid()
	if e == nil || !e.IsValid() {
		log.Printf("event %s: no hypocentral ellipsoid", id)
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("event %s: %v", id, err)
		return
	}
	if err := e.WriteVTK(dir, id); err != nil {
		log.Printf("event %s: %v", id, err)
	}
}

func writePlot(h *hyperellipse.HyperEllipse, path, id string, depths []float64) {
	epi := h.Ellipse()
	if epi == nil || !epi.IsValid() {
		log.Printf("event %s: no epicentral ellipse", id)
		return
	}
	curves := []ellipseplot.Curve{{Label: "epicentre", Ellipse: epi}}
	if e := h.Ellipsoid(); e != nil && e.IsValid() {
		for _, d := range depths {
			slice, err := e.HorizontalEllipse(d)
			if err != nil {
				log.Printf("event %s: %v", id, err)
				continue
			}
			if slice.IsValid() && slice.MajaxLength() > 0 {
				curves = append(curves, ellipseplot.Curve{Label: fmt.Sprintf("%.1f km", d), Ellipse: slice})
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("event %s: %v", id, err)
		return
	}
	title := fmt.Sprintf("%s  smajax %.2f km  sminax %.2f km  strike %.1f", id, h.Smajax(), h.Sminax(), h.Strike())
	if err := ellipseplot.Save(path, title, curves...); err != nil {
		log.Printf("event %s: %v", id, err)
	}
}
