package query

import "github.com/FilipeMCruz/playlist-maker/maker/tag"

// Mode selects the output shape of a query.
type Mode int

const (
	// Play outputs bare paths.
	Play Mode = iota
	// Index outputs full metadata records.
	Index
)

func (m Mode) String() string {
	if m == Index {
		return "index"
	}
	return "play"
}

// Query is a parsed query: an output mode and the root expression.
type Query struct {
	Mode Mode
	Expr *Expression
}

// Op joins two clauses of an expression.
type Op int

const (
	And Op = iota
	Or
)

func (o Op) String() string {
	if o == Or {
		return "|"
	}
	return "&"
}

// Expression is a left-to-right chain of clauses.
type Expression struct {
	First Clause
	Rest  []Step
}

// Step is one operator and the clause to its right.
type Step struct {
	Op     Op
	Clause Clause
}

// Clause is an optionally negated token.
type Clause struct {
	Negated bool
	Token   Token
}

// Token is the operand of a clause
type Token interface {
	isToken()
}

// TagMatch filters tracks by one tag.
//
// Checker is resolved once when the query is built; a nil Checker means the
// match could not be resolved and Err holds the reason.
type TagMatch struct {
	Name    string
	Mode    tag.SearchMode
	Operand string
	Checker *tag.Checker
	Err     error
}

func (TagMatch) isToken() {}

// Resolved reports whether the match has a usable checker.
func (m TagMatch) Resolved() bool { return m.Checker != nil }

// PlaylistRef keeps tracks that belong to a named playlist
type PlaylistRef struct {
	Name string
}

func (PlaylistRef) isToken() {}

// Group is a parenthesized sub-expression
type Group struct {
	Expr *Expression
}

func (Group) isToken() {}
