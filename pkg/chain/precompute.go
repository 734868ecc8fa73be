package chain

import (
	"context"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// minShard keeps tiny length buckets on one goroutine.
const minShard = 512

// Precompute fills the memo for every key bottom-up, longest words first.
//
// Entries of equal length never depend on each other, only on entries one
// byte longer, so each length bucket is split across up to workers
// goroutines and finished before the next shorter bucket starts. Every memo
// cell is written by exactly one goroutine. workers <= 0 means NumCPU.
//
// Precompute must not run alongside other queries on the same Solver.
func (s *Solver) Precompute(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	start := time.Now()

	for n := s.idx.LongestWord(); n >= 1; n-- {
		ids := s.idx.ByLength(n)
		if len(ids) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)

		shard := max(minShard, (len(ids)+workers-1)/workers)
		for lo := 0; lo < len(ids); lo += shard {
			part := ids[lo:min(lo+shard, len(ids))]
			g.Go(func() error {
				return s.computeShard(gctx, part)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		log.Debugf("Precomputed length %d: %d keys", n, len(ids))
	}

	s.precomputed = true
	log.Debugf("Precompute done in [ %v ] with %d workers", time.Since(start), workers)
	return nil
}

// computeShard fills the memo for ids, all of one length. Their successors
// belong to the previous, already finished, stage.
func (s *Solver) computeShard(ctx context.Context, ids []int32) error {
	for i, id := range ids {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if s.memo[id] > 0 {
			continue
		}

		best := 1
		for next := range s.Successors(s.idx.Entry(id)) {
			if n := 1 + int(s.memo[next.ID]); n > best {
				best = n
			}
		}
		s.memo[id] = int32(best)
	}
	return nil
}
