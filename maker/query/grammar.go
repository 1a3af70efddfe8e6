package query

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Parse tree produced by participle. It mirrors the surface syntax and is
// converted into the AST by transform.
type (
	queryNode struct {
		Mode string    `@("Play" | "Index")`
		Expr *exprNode `"(" @@ ")"`
	}

	exprNode struct {
		First *clauseNode `@@`
		Rest  []*opClause `@@*`
	}

	opClause struct {
		Op     string      `@("&" | "|")`
		Clause *clauseNode `@@`
	}

	clauseNode struct {
		Not   bool       `@"!"?`
		Token *tokenNode `@@`
	}

	tokenNode struct {
		Group *exprNode `  "(" @@ ")"`
		Call  *callNode `| @@`
	}

	callNode struct {
		Name string `@Ident`
		Arg  string `"(" @String ")"`
	}
)

var (
	queryLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
		{Name: "Punct", Pattern: `[()&|!]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	queryParser = participle.MustBuild[queryNode](
		participle.Lexer(queryLexer),
		participle.Elide("Whitespace"),
	)
)
