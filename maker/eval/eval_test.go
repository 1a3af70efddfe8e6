package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

func defaultSongs() []track.Track {
	return []track.Track{
		{Path: "test-data/songs/1.mp3", Album: "Black", Track: "1"},
		{Path: "test-data/songs/2.mp3", Album: "Also Black", Track: "3"},
		{Path: "test-data/songs/3.mp3", Album: "Blue", AlbumArtist: "Surf"},
		{Path: "test-data/songs/4.mp3", Album: "Orange"},
		{Path: "test-data/songs/5.mp3", Artist: "Cap"},
	}
}

func defaultPlaylists() playlist.Table {
	return playlist.Table{
		playlist.New("abc", []string{"test-data/songs/2.mp3", "test-data/songs/3.mp3"}),
		playlist.New("def", []string{"test-data/songs/1.mp3", "test-data/songs/9.mp3"}),
	}
}

// run evaluates the expression inside a Play(...) wrapper.
func run(t *testing.T, expr string) ([]string, bool) {
	t.Helper()
	q, err := query.Parse("Play(" + expr + ")")
	require.NoError(t, err, expr)
	out, ok := Expression(defaultSongs(), defaultPlaylists(), q.Expr)
	if !ok {
		return nil, false
	}
	return track.Paths(out), true
}

func song(n string) string { return "test-data/songs/" + n + ".mp3" }

func TestEvaluate(t *testing.T) {
	cases := []struct {
		expr string
		want []string
	}{
		{`Album("Black")`, []string{song("1")}},
		{`C_Album("Black")`, []string{song("1"), song("2")}},
		{`R_Album(".*B.*")`, []string{song("1"), song("2"), song("3")}},
		{`InPlaylist("def")`, []string{song("1")}},
		{`AlbumArtist("Surf")`, []string{song("3")}},
		{`(AlbumArtist("Surf") | Album("Black"))`, []string{song("3"), song("1")}},
		{`!InPlaylist("def")`, []string{song("2"), song("3"), song("4"), song("5")}},
		{`!AlbumArtist("Surf")`, []string{song("1"), song("2"), song("4"), song("5")}},
		{`AlbumArtist("Surf") | InPlaylist("def")`, []string{song("3"), song("1")}},
		{`AlbumArtist("Surf") & InPlaylist("def")`, []string{}},
		{`Album("Black") & InPlaylist("def")`, []string{song("1")}},
		{`C_Album("Black") & (AlbumArtist("Surf") | Track("1"))`, []string{song("1")}},
		{`Artist("Cap") | InPlaylist("abc") & C_Album("Bl")`, []string{song("2"), song("3")}},
	}
	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			got, ok := run(t, tc.expr)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateNoResult(t *testing.T) {
	for _, expr := range []string{
		`R_None(".*B.*")`,
		`InPlaylist("missing")`,
		`Album("Black") | InPlaylist("missing")`,
		`InPlaylist("missing") | Album("Black")`,
		`!InPlaylist("missing")`,
		`(Album("Black") & R_Album("a|*"))`,
		`C_AfterYear("2000")`,
		`BeforeYear("soon")`,
	} {
		t.Run(expr, func(t *testing.T) {
			got, ok := run(t, expr)
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestOrDoesNotDeduplicate(t *testing.T) {
	got, ok := run(t, `Album("Black") | Track("1")`)
	require.True(t, ok)
	assert.Equal(t, []string{song("1"), song("1")}, got)
}

func TestOrUsesLevelInputNotAccumulator(t *testing.T) {
	// The right side of | sees all five tracks even after & narrowed.
	got, ok := run(t, `Album("Black") & Album("Blue") | Artist("Cap")`)
	require.True(t, ok)
	assert.Equal(t, []string{song("5")}, got)
}

func TestAndNarrowsMonotonically(t *testing.T) {
	a, ok := run(t, `R_Album("l")`)
	require.True(t, ok)
	ab, ok := run(t, `R_Album("l") & R_Album("B")`)
	require.True(t, ok)
	abc, ok := run(t, `R_Album("l") & R_Album("B") & C_Album("Also")`)
	require.True(t, ok)

	assert.Subset(t, a, ab)
	assert.Subset(t, ab, abc)
	assert.Equal(t, []string{song("2")}, abc)
}

func TestNegationPartitionsInput(t *testing.T) {
	for _, tok := range []string{`C_Album("Black")`, `InPlaylist("abc")`, `(Artist("Cap") | Track("3"))`} {
		pos, ok := run(t, tok)
		require.True(t, ok)
		neg, ok := run(t, "!"+tok)
		require.True(t, ok)

		assert.Len(t, append(pos, neg...), len(defaultSongs()), tok)
		for _, p := range pos {
			assert.NotContains(t, neg, p, tok)
		}
	}
}

func TestNegationRemovesStructuralDuplicates(t *testing.T) {
	a := track.Track{Path: "a.mp3", Genre: "Rap"}
	b := track.Track{Path: "b.mp3"}
	q := query.MustParse(`Play(!Genre("Rap"))`)

	out, ok := Expression([]track.Track{a, b, a}, nil, q.Expr)
	require.True(t, ok)
	assert.Equal(t, []track.Track{b}, out)

	// Same path, different metadata: not structurally equal, so kept.
	a2 := track.Track{Path: "a.mp3", Genre: "Pop"}
	out, ok = Expression([]track.Track{a, a2}, nil, q.Expr)
	require.True(t, ok)
	assert.Equal(t, []track.Track{a2}, out)
}

func TestScenarios(t *testing.T) {
	records := []track.Track{
		{Path: "a.mp3", Album: "Black", Track: "1"},
		{Path: "b.mp3", Album: "Also Black"},
		{Path: "c.mp3", Album: "Blue", AlbumArtist: "Surf"},
	}
	table := playlist.Table{playlist.New("def", []string{"a.mp3"})}

	cases := []struct {
		query string
		want  []string
		ok    bool
	}{
		{`Play(Album("Black") | AlbumArtist("Surf"))`, []string{"a.mp3", "c.mp3"}, true},
		{`Play(C_Album("Black") & (AlbumArtist("Surf") | Track("1")))`, []string{"a.mp3"}, true},
		{`Play(!InPlaylist("def"))`, []string{"b.mp3", "c.mp3"}, true},
		{`Play(InPlaylist("missing"))`, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			q, err := query.Parse(tc.query)
			require.NoError(t, err)
			out, ok := Expression(records, table, q.Expr)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, track.Paths(out))
			} else {
				assert.Empty(t, out)
			}
		})
	}
}

func TestEmptyInput(t *testing.T) {
	q := query.MustParse(`Play(!Album("x") | Path("y"))`)
	out, ok := Expression(nil, nil, q.Expr)
	assert.True(t, ok)
	assert.Empty(t, out)
}
