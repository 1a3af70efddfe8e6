package eval

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/tag"
)

func TestCheckClean(t *testing.T) {
	q := query.MustParse(`Play(Album("Black") & !(InPlaylist("def") | R_Title("^A")))`)
	assert.Empty(t, Check(q.Expr, defaultPlaylists()))
}

func TestCheckReportsInSourceOrder(t *testing.T) {
	q := query.MustParse(`Play(R_None("x") | (InPlaylist("missing") & C_AfterYear("2000")) & R_Album("a|*") | InPlaylist("def"))`)
	problems := Check(q.Expr, defaultPlaylists())
	require.Len(t, problems, 4)

	assert.Equal(t, `R_None("x")`, problems[0].Token)
	assert.True(t, errors.Is(problems[0].Err, tag.ErrUnknownTag))

	assert.Equal(t, `InPlaylist("missing")`, problems[1].Token)
	assert.True(t, errors.Is(problems[1].Err, ErrPlaylistNotFound))

	assert.Equal(t, `C_AfterYear("2000")`, problems[2].Token)
	assert.True(t, errors.Is(problems[2].Err, tag.ErrModeNotAllowed))

	assert.Equal(t, `R_Album("a|*")`, problems[3].Token)
	assert.True(t, errors.Is(problems[3].Err, tag.ErrInvalidRegex))
	assert.Equal(t, problems[3].Err.Error(), problems[3].Reason)
}

func TestCheckDropsNegation(t *testing.T) {
	q := query.MustParse(`Play(!InPlaylist("nope"))`)
	problems := Check(q.Expr, nil)
	require.Len(t, problems, 1)
	assert.Equal(t, `InPlaylist("nope")`, problems[0].Token)
	assert.Contains(t, problems[0].String(), "playlist not found")
}
