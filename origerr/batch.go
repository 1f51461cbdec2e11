package origerr

import (
	"context"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"uncertainty-go/hyperellipse"
	"uncertainty-go/solution"
)

// Result pairs a record with the engine it came from, for callers that also
// export meshes or plots.
type Result struct {
	Record Record
	Engine *hyperellipse.HyperEllipse
}

// ComputeBatch evaluates every solution on at most workers goroutines, each
// owning its engine. Events whose axis search fails are logged and skipped.
// Output order follows sols.
func ComputeBatch(ctx context.Context, sols []solution.Solution, cfg hyperellipse.Config, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(sols))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range sols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h := s.Engine(cfg)
			rec, err := NewRecord(i+1, s.ID, h)
			if err != nil {
				log.Printf("skip event %s: %v", s.ID, err)
				return nil
			}
			results[i] = &Result{Record: rec, Engine: h}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// Records extracts the records from results.
func Records(results []Result) []Record {
	recs := make([]Record, len(results))
	for i, r := range results {
		recs[i] = r.Record
	}
	return recs
}
