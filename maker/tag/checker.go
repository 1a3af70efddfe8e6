package tag

import (
	"strings"

	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// Checker is a resolved tag match: the field to read and the matcher to
// apply to it.
type Checker struct {
	Type    Type
	Matcher Matcher
}

// NewChecker resolves name under mode and compiles operand. The returned
// error is a *ResolveError whose Err is one of the package sentinels.
func NewChecker(operand, name string, mode SearchMode) (*Checker, error) {
	t, err := resolve(strings.ToLower(name), mode)
	if err != nil {
		return nil, &ResolveError{Tag: name, Mode: mode, Err: err}
	}
	m, err := BuildMatcher(operand, mode, name)
	if err != nil {
		return nil, &ResolveError{Tag: name, Mode: mode, Err: err}
	}
	return &Checker{Type: t, Matcher: m}, nil
}

// Matches reports whether the track's field is present and matches.
func (c *Checker) Matches(tr track.Track) bool {
	v, ok := c.Type.Field(tr)
	return ok && c.Matcher.Matches(v)
}

// Filter returns the tracks that match, preserving order.
func (c *Checker) Filter(tracks []track.Track) []track.Track {
	out := make([]track.Track, 0)
	for _, tr := range tracks {
		if c.Matches(tr) {
			out = append(out, tr)
		}
	}
	return out
}
