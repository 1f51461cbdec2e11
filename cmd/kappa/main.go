package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"uncertainty-go/hyperellipse"
)

func main() {
	nobs := flag.Int("nobs", 0, "Number of defining observations")
	k := flag.Int("k", -1, "Prior weight K (negative = infinite)")
	apriori := flag.Float64("apriori", 1.0, "A priori variance scale")
	sumsqr := flag.Float64("sumsqr", 0, "Sum of squared weighted residuals")
	fixed := flag.String("fixed", "", "Comma-separated fixed parameters (lat,lon,depth,time)")
	confs := flag.String("conf", "0.5,0.68,0.9,0.95,0.99", "Comma-separated confidence levels")
	flag.Parse()

	if *nobs <= 0 {
		fmt.Println("--nobs required")
		os.Exit(1)
	}
	var fix [4]bool
	for _, name := range strings.Split(*fixed, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p, err := hyperellipse.ParseParam(name)
		if err != nil {
			fmt.Printf("invalid fixed: %v\n", err)
			os.Exit(1)
		}
		fix[p] = true
	}
	levels, err := parseLevels(*confs)
	if err != nil {
		fmt.Printf("invalid conf: %v\n", err)
		os.Exit(1)
	}

	cfg := hyperellipse.DefaultConfig()
	var base *hyperellipse.HyperEllipse
	fmt.Printf("%8s %12s %12s %12s %12s\n", "conf", "kappa1", "kappa2", "kappa3", "kappa4")
	for _, c := range levels {
		stats := hyperellipse.Statistics{
			Nobs:                    *nobs,
			K:                       *k,
			AprioriVariance:         *apriori,
			SumSqrWeightedResiduals: *sumsqr,
			Confidence:              c,
		}
		h := hyperellipse.NewHyperEllipse(hyperellipse.Location{}, fix, nil, stats, cfg)
		if base == nil {
			base = h
		}
		fmt.Printf("%8.3f %12.5f %12.5f %12.5f %12.5f\n", c, h.Kappa(1), h.Kappa(2), h.Kappa(3), h.Kappa(4))
	}
	if base != nil {
		fmt.Printf("free parameters %d, sigma %.5f\n", base.M(), base.Sigma())
	}
}

func parseLevels(s string) ([]float64, error) {
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
