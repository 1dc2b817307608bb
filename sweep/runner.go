package sweep

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tsoympet/Entropy-Ledger-TimeTravel/utils"
)

// Runner schedules independent sweep points.
type Runner struct {
	Workers int // 0 means GOMAXPROCS
	Stats   *utils.TimingStats
}

func (r Runner) limit() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// forEach calls fn(i) for i in [0,n) on at most r.limit() goroutines and
// returns the first error. No new point starts once ctx is done.
func (r Runner) forEach(ctx context.Context, n int, fn func(i int) error) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit())
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t0 := time.Now()
			err := fn(i)
			if r.Stats != nil {
				r.Stats.Record(time.Since(t0))
			}
			return err
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if r.Stats != nil {
		r.Stats.AddWall(time.Since(start))
	}
	return err
}
