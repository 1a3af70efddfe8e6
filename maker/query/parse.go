package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"github.com/FilipeMCruz/playlist-maker/maker/tag"
)

const playlistCall = "InPlaylist"

// ParseError describes query text that does not follow the grammar.
type ParseError struct {
	Line    int
	Column  int
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Parse parses query text and builds its AST.
//
// Tag names are resolved and their operands compiled here, once. A tag that
// cannot be resolved is not a parse error: the resulting TagMatch carries a
// nil Checker and evaluates to "no result".
func Parse(text string) (*Query, error) {
	node, err := queryParser.ParseString("", text)
	if err != nil {
		return nil, newParseError(err)
	}
	return transform(node), nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// constant queries.
func MustParse(text string) *Query {
	q, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return q
}

func newParseError(err error) *ParseError {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &ParseError{
			Line:    pos.Line,
			Column:  pos.Column,
			Offset:  pos.Offset,
			Message: perr.Message(),
		}
	}
	return &ParseError{Message: err.Error()}
}

func transform(n *queryNode) *Query {
	q := &Query{Mode: Play, Expr: transformExpr(n.Expr)}
	if n.Mode == "Index" {
		q.Mode = Index
	}
	return q
}

func transformExpr(n *exprNode) *Expression {
	e := &Expression{First: transformClause(n.First)}
	for _, r := range n.Rest {
		op := And
		if r.Op == "|" {
			op = Or
		}
		e.Rest = append(e.Rest, Step{Op: op, Clause: transformClause(r.Clause)})
	}
	return e
}

func transformClause(n *clauseNode) Clause {
	return Clause{Negated: n.Not, Token: transformToken(n.Token)}
}

func transformToken(n *tokenNode) Token {
	if n.Group != nil {
		return Group{Expr: transformExpr(n.Group)}
	}
	operand := unquote(n.Call.Arg)
	if n.Call.Name == playlistCall {
		return PlaylistRef{Name: operand}
	}
	return newTagMatch(n.Call.Name, operand)
}

func newTagMatch(ident, operand string) TagMatch {
	name, mode := splitPrefix(ident)
	m := TagMatch{Name: name, Mode: mode, Operand: operand}
	m.Checker, m.Err = tag.NewChecker(operand, name, mode)
	return m
}

// splitPrefix separates the C_/R_ search-mode prefix from a tag identifier.
func splitPrefix(ident string) (string, tag.SearchMode) {
	switch {
	case strings.HasPrefix(ident, "C_"):
		return ident[2:], tag.Contains
	case strings.HasPrefix(ident, "R_"):
		return ident[2:], tag.Regex
	default:
		return ident, tag.Literal
	}
}

// unquote strips the surrounding quotes of a string literal. Only \" is an
// escape; every other backslash is kept so regex classes survive.
func unquote(lit string) string {
	if len(lit) >= 2 {
		lit = lit[1 : len(lit)-1]
	}
	return strings.ReplaceAll(lit, `\"`, `"`)
}
