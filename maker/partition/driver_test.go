package partition

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipeMCruz/playlist-maker/maker/eval"
	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

func library(n int) []track.Track {
	genres := []string{"Rap", "Rock", "Jazz"}
	out := make([]track.Track, n)
	for i := range out {
		out[i] = track.Track{
			Path:  fmt.Sprintf("music/%03d.mp3", i),
			Genre: genres[i%len(genres)],
			Year:  fmt.Sprintf("%d", 1990+i),
		}
	}
	return out
}

func TestDriverBalancedMatchesWholeEvaluation(t *testing.T) {
	tracks := library(50)
	table := playlist.Table{playlist.New("odd", []string{"music/001.mp3", "music/003.mp3", "music/041.mp3"})}
	queries := []string{
		`Play(Genre("Rap"))`,
		`Play(Genre("Rap") | AfterYear("2030"))`,
		`Play(!Genre("Jazz") & (InPlaylist("odd") | BeforeYear("1992")))`,
		`Play(R_Path("0[0-1]"))`,
	}
	for _, text := range queries {
		q := query.MustParse(text)
		whole, ok := eval.Expression(tracks, table, q.Expr)
		require.True(t, ok, text)

		for _, d := range []int{1, 3, 7, 50, 64} {
			drv := Driver{Divisions: d, Workers: 4, Split: SplitBalanced, Logger: zerolog.Nop()}
			res, err := drv.Evaluate(context.Background(), tracks, table, q.Expr)
			require.NoError(t, err)
			assert.ElementsMatch(t, whole, res.Tracks, "%s divisions=%d", text, d)
			assert.Zero(t, res.Failed)
		}
	}
}

func TestDriverSinglePredicateKeepsInputOrder(t *testing.T) {
	tracks := library(30)
	q := query.MustParse(`Play(!Genre("Rock"))`)
	whole, ok := eval.Expression(tracks, nil, q.Expr)
	require.True(t, ok)

	res, err := Driver{Divisions: 4, Workers: 2, Logger: zerolog.Nop()}.Evaluate(context.Background(), tracks, nil, q.Expr)
	require.NoError(t, err)
	assert.Equal(t, whole, res.Tracks)
}

func TestDriverOrderIsGroupOrder(t *testing.T) {
	tracks := library(10)
	q := query.MustParse(`Play(Path("music/009.mp3") | Path("music/000.mp3"))`)

	res, err := Driver{Divisions: 2, Split: SplitBalanced, Logger: zerolog.Nop()}.Evaluate(context.Background(), tracks, nil, q.Expr)
	require.NoError(t, err)
	// Group 0 holds 000..004, group 1 holds 005..009.
	assert.Equal(t, []string{"music/000.mp3", "music/009.mp3"}, track.Paths(res.Tracks))
	assert.Equal(t, 2, res.Groups)
}

func TestDriverFailedGroupsContributeNothing(t *testing.T) {
	q := query.MustParse(`Play(InPlaylist("missing"))`)
	res, err := Driver{Divisions: 4, Logger: zerolog.Nop()}.Evaluate(context.Background(), library(12), nil, q.Expr)
	require.NoError(t, err)
	assert.Empty(t, res.Tracks)
	assert.NotNil(t, res.Tracks)
	assert.Equal(t, 4, res.Groups)
	assert.Equal(t, 4, res.Failed)
}

func TestDriverEmptyInput(t *testing.T) {
	q := query.MustParse(`Play(Genre("Rap"))`)
	res, err := Driver{Divisions: 4, Logger: zerolog.Nop()}.Evaluate(context.Background(), nil, nil, q.Expr)
	require.NoError(t, err)
	assert.Empty(t, res.Tracks)
	assert.Zero(t, res.Groups)
}

func TestDriverCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := query.MustParse(`Play(Genre("Rap"))`)
	_, err := Driver{Divisions: 2, Logger: zerolog.Nop()}.Evaluate(ctx, library(10), nil, q.Expr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvaluatePartitionedKeepsReferenceDrop(t *testing.T) {
	q := query.MustParse(`Play(Path("music/000.mp3") | !Path("music/000.mp3"))`)

	// 12 records over 4 divisions is an exact multiple: nothing survives.
	out, err := EvaluatePartitioned(context.Background(), library(12), nil, q.Expr, 4)
	require.NoError(t, err)
	assert.Empty(t, out)

	// 13 over 4: base 3, one trailing record, so a single group of four.
	out, err = EvaluatePartitioned(context.Background(), library(13), nil, q.Expr, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"music/000.mp3", "music/001.mp3", "music/002.mp3", "music/012.mp3"}, track.Paths(out))

	// Fewer records than divisions: singletons, nothing dropped.
	out, err = EvaluatePartitioned(context.Background(), library(3), nil, q.Expr, 8)
	require.NoError(t, err)
	assert.Len(t, out, 3)
}
