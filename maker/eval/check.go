package eval

import (
	"errors"
	"fmt"

	"github.com/FilipeMCruz/playlist-maker/maker/playlist"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
)

// ErrPlaylistNotFound marks a reference to a playlist missing from the table.
var ErrPlaylistNotFound = errors.New("playlist not found")

var errUnresolved = errors.New("unresolved tag")

// Problem is a token that will make its expression level yield no result.
type Problem struct {
	// Token is the offending token rendered as query text.
	Token string `json:"token"`
	Err   error  `json:"-"`
	// Reason is Err's message, kept for encoding.
	Reason string `json:"reason"`
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Token, p.Reason)
}

// Check walks expr in source order and reports every unresolved tag match
// and every reference to a playlist that is not in playlists. It does not
// evaluate anything.
func Check(expr *query.Expression, playlists playlist.Table) []Problem {
	var problems []Problem
	walk(expr, func(c query.Clause) {
		switch t := c.Token.(type) {
		case query.TagMatch:
			if !t.Resolved() {
				err := t.Err
				if err == nil {
					err = errUnresolved
				}
				problems = append(problems, newProblem(c, err))
			}
		case query.PlaylistRef:
			if _, ok := playlists.Lookup(t.Name); !ok {
				problems = append(problems, newProblem(c, ErrPlaylistNotFound))
			}
		}
	})
	return problems
}

func newProblem(c query.Clause, err error) Problem {
	text := (&query.Expression{First: query.Clause{Token: c.Token}}).String()
	return Problem{Token: text, Err: err, Reason: err.Error()}
}

func walk(expr *query.Expression, fn func(query.Clause)) {
	if expr == nil {
		return
	}
	visit := func(c query.Clause) {
		fn(c)
		if g, ok := c.Token.(query.Group); ok {
			walk(g.Expr, fn)
		}
	}
	visit(expr.First)
	for _, s := range expr.Rest {
		visit(s.Clause)
	}
}
