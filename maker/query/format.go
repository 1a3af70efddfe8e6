package query

import "strings"

// String renders the query back into canonical query text. Parsing the
// result yields an equivalent AST.
func (q *Query) String() string {
	var b strings.Builder
	if q.Mode == Index {
		b.WriteString("Index(")
	} else {
		b.WriteString("Play(")
	}
	writeExpr(&b, q.Expr)
	b.WriteByte(')')
	return b.String()
}

func (e *Expression) String() string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e *Expression) {
	writeClause(b, e.First)
	for _, s := range e.Rest {
		b.WriteByte(' ')
		b.WriteString(s.Op.String())
		b.WriteByte(' ')
		writeClause(b, s.Clause)
	}
}

func writeClause(b *strings.Builder, c Clause) {
	if c.Negated {
		b.WriteByte('!')
	}
	switch t := c.Token.(type) {
	case TagMatch:
		b.WriteString(t.Mode.Prefix())
		b.WriteString(t.Name)
		writeArg(b, t.Operand)
	case PlaylistRef:
		b.WriteString(playlistCall)
		writeArg(b, t.Name)
	case Group:
		b.WriteByte('(')
		writeExpr(b, t.Expr)
		b.WriteByte(')')
	}
}

func writeArg(b *strings.Builder, s string) {
	b.WriteString(`("`)
	b.WriteString(strings.ReplaceAll(s, `"`, `\"`))
	b.WriteString(`")`)
}
