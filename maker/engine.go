package maker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/FilipeMCruz/playlist-maker/maker/eval"
	"github.com/FilipeMCruz/playlist-maker/maker/partition"
	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// Observer receives the outcome of every query an Engine runs.
type Observer interface {
	QueryRejected()
	QueryEvaluated(res *Result)
}

// Result is the outcome of one query.
type Result struct {
	Query  *query.Query
	Tracks []track.Track
	// Groups and Failed count evaluated and failed partitions.
	Groups   int
	Failed   int
	Duration time.Duration
}

// Mode returns the output mode of the query.
func (r *Result) Mode() query.Mode { return r.Query.Mode }

// Paths lists the result paths in order.
func (r *Result) Paths() []string { return track.Paths(r.Tracks) }

// Engine parses queries and evaluates them over partitions of a track set.
type Engine struct {
	Driver    partition.Driver
	Playlists playlist.Table
	Logger    zerolog.Logger
	Observer  Observer
}

// Run parses text and evaluates it against tracks. A malformed query is an
// ErrQueryParse error; unresolvable tags and unknown playlists are not
// errors and simply produce no tracks.
func (e *Engine) Run(ctx context.Context, text string, tracks []track.Track) (*Result, error) {
	q, err := query.Parse(text)
	if err != nil {
		if e.Observer != nil {
			e.Observer.QueryRejected()
		}
		return nil, QueryParseError(err)
	}

	out, err := e.Driver.Evaluate(ctx, tracks, e.Playlists, q.Expr)
	if err != nil {
		return nil, Wrap(ErrIO, "evaluate query", err)
	}

	res := &Result{
		Query:    q,
		Tracks:   out.Tracks,
		Groups:   out.Groups,
		Failed:   out.Failed,
		Duration: out.Duration,
	}
	if e.Observer != nil {
		e.Observer.QueryEvaluated(res)
	}
	e.Logger.Info().
		Str("mode", q.Mode.String()).
		Int("input", len(tracks)).
		Int("matched", len(res.Tracks)).
		Int("groups", res.Groups).
		Int("failed_groups", res.Failed).
		Dur("elapsed", res.Duration).
		Msg("query evaluated")
	return res, nil
}

// Check parses text and reports every token that would make its
// expression level yield no result.
func (e *Engine) Check(text string) (*query.Query, []eval.Problem, error) {
	q, err := query.Parse(text)
	if err != nil {
		return nil, nil, QueryParseError(err)
	}
	return q, eval.Check(q.Expr, e.Playlists), nil
}
