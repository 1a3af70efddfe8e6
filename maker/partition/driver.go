package partition

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/FilipeMCruz/playlist-maker/maker/eval"
	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// Driver evaluates an expression over groups of tracks on a bounded
// goroutine pool.
type Driver struct {
	// Divisions is the number of groups to split into. Values below 1 mean 1.
	Divisions int
	// Workers bounds concurrent evaluations. Values below 1 mean GOMAXPROCS.
	Workers int
	Split   Split
	Logger  zerolog.Logger
}

// Result is the merged output of a partitioned evaluation.
type Result struct {
	Tracks []track.Track
	// Groups is the number of groups evaluated.
	Groups int
	// Failed counts groups that yielded no result.
	Failed   int
	Duration time.Duration
}

type slot struct {
	tracks []track.Track
	ok     bool
}

// Evaluate splits tracks, evaluates expr against every group and
// concatenates the outputs in group order. Failed groups contribute
// nothing. The context is only consulted before scheduling each group.
func (d Driver) Evaluate(ctx context.Context, tracks []track.Track, playlists playlist.Table, expr *query.Expression) (Result, error) {
	start := time.Now()

	var groups [][]track.Track
	if d.Split == SplitReference {
		groups = Divide(tracks, d.Divisions)
	} else {
		groups = Balanced(tracks, d.Divisions)
	}

	res := Result{Tracks: []track.Track{}, Groups: len(groups)}
	if len(groups) == 0 {
		res.Duration = time.Since(start)
		return res, nil
	}

	workers := d.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v any) {
		d.Logger.Error().Interface("panic", v).Msg("partition evaluation panicked")
	}))
	if err != nil {
		return Result{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	slots := make([]slot, len(groups))
	var wg sync.WaitGroup
	for i, group := range groups {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return Result{}, err
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			out, ok := eval.Expression(group, playlists, expr)
			slots[i] = slot{tracks: out, ok: ok}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return Result{}, fmt.Errorf("submit group %d: %w", i, err)
		}
	}
	wg.Wait()

	for i, s := range slots {
		if !s.ok {
			res.Failed++
			d.Logger.Debug().Int("group", i).Int("size", len(groups[i])).Msg("group yielded no result")
			continue
		}
		res.Tracks = append(res.Tracks, s.tracks...)
	}
	res.Duration = time.Since(start)

	d.Logger.Debug().
		Int("tracks", len(tracks)).
		Int("groups", res.Groups).
		Int("failed", res.Failed).
		Int("matched", len(res.Tracks)).
		Dur("elapsed", res.Duration).
		Msg("partitioned evaluation finished")
	return res, nil
}

// EvaluatePartitioned splits tracks with Divide, evaluates every group
// concurrently and returns the concatenated outputs.
func EvaluatePartitioned(ctx context.Context, tracks []track.Track, playlists playlist.Table, expr *query.Expression, divisions int) ([]track.Track, error) {
	res, err := Driver{Divisions: divisions, Split: SplitReference, Logger: zerolog.Nop()}.Evaluate(ctx, tracks, playlists, expr)
	if err != nil {
		return nil, err
	}
	return res.Tracks, nil
}
