package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		mode SearchMode
		want Type
	}{
		{"genre", Contains, Genre},
		{"AlbumArtist", Regex, AlbumArtist},
		{"album", Literal, Album},
		{"disc", Literal, Disc},
		{"DiscNumber", Regex, Disc},
		{"track", Contains, Track},
		{"tracknumber", Literal, Track},
		{"Year", Regex, Date},
		{"date", Contains, Date},
		{"beforedate", Literal, Date},
		{"AfterYear", Literal, Date},
		{"path", Regex, Path},
		{"Title", Literal, Title},
		{"artist", Literal, Artist},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.name, tc.mode)
		if assert.True(t, ok, tc.name) {
			assert.Equal(t, tc.want, got, tc.name)
		}
	}
}

func TestResolveRejects(t *testing.T) {
	for _, name := range []string{"beforeyear", "beforedate", "afteryear", "afterdate"} {
		for _, mode := range []SearchMode{Contains, Regex} {
			_, ok := Resolve(name, mode)
			assert.False(t, ok, "%s%s", mode.Prefix(), name)
		}
	}
	_, ok := Resolve("composer", Literal)
	assert.False(t, ok)
	_, ok = Resolve("", Literal)
	assert.False(t, ok)
}

func TestFieldPresence(t *testing.T) {
	tr := track.Track{Path: "x.mp3", Title: "T", Disc: "1"}

	v, ok := Path.Field(tr)
	assert.True(t, ok)
	assert.Equal(t, "x.mp3", v)

	v, ok = Title.Field(tr)
	assert.True(t, ok)
	assert.Equal(t, "T", v)

	_, ok = Artist.Field(tr)
	assert.False(t, ok)
	_, ok = Date.Field(tr)
	assert.False(t, ok)

	_, ok = Path.Field(track.Track{})
	assert.True(t, ok)
}
