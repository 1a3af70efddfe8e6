// Package eval evaluates a query AST against a set of tracks.
//
// Evaluation is left to right with no precedence. AND narrows the running
// result; OR appends the clause evaluated against the input of the current
// level, without removing duplicates. A tag that could not be resolved or a
// playlist that is not in the table makes the whole level yield no result,
// reported as ok == false.
package eval

import (
	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

// Expression evaluates expr against tracks.
func Expression(tracks []track.Track, playlists playlist.Table, expr *query.Expression) ([]track.Track, bool) {
	if expr == nil {
		return nil, false
	}
	out, ok := Clause(tracks, playlists, expr.First)
	if !ok {
		return nil, false
	}
	for _, step := range expr.Rest {
		switch step.Op {
		case query.And:
			out, ok = Clause(out, playlists, step.Clause)
			if !ok {
				return nil, false
			}
		case query.Or:
			more, ok := Clause(tracks, playlists, step.Clause)
			if !ok {
				return nil, false
			}
			out = append(out, more...)
		default:
			return nil, false
		}
	}
	return out, true
}

// Clause evaluates one clause. A negated clause keeps every input track
// that is not structurally equal to a track the token selects.
func Clause(tracks []track.Track, playlists playlist.Table, c query.Clause) ([]track.Track, bool) {
	selected, ok := Token(tracks, playlists, c.Token)
	if !ok {
		return nil, false
	}
	if !c.Negated {
		return selected, true
	}

	remove := make(map[track.Track]struct{}, len(selected))
	for _, t := range selected {
		remove[t] = struct{}{}
	}
	out := make([]track.Track, 0, len(tracks))
	for _, t := range tracks {
		if _, drop := remove[t]; !drop {
			out = append(out, t)
		}
	}
	return out, true
}

// Token evaluates a single token.
func Token(tracks []track.Track, playlists playlist.Table, tok query.Token) ([]track.Track, bool) {
	switch t := tok.(type) {
	case query.TagMatch:
		if t.Checker == nil {
			return nil, false
		}
		return t.Checker.Filter(tracks), true
	case query.PlaylistRef:
		p, ok := playlists.Lookup(t.Name)
		if !ok {
			return nil, false
		}
		return p.Filter(tracks), true
	case query.Group:
		return Expression(tracks, playlists, t.Expr)
	default:
		return nil, false
	}
}
