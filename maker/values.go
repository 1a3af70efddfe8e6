package maker

import (
	"context"
	"fmt"
	"strings"

	"github.com/FilipeMCruz/playlist-maker/maker/storage"
	"github.com/FilipeMCruz/playlist-maker/maker/storage/sqlbuilder"
)

// DefaultTop is the number of values TopValues returns when top is not positive.
const DefaultTop = 20

// ValueCount is a stored tag value with the number of tracks carrying it.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// columnAliases accepts the query-language spelling of a tag.
var columnAliases = map[string]string{
	"albumartist": "album_artist",
	"date":        "year",
}

// column maps a tag name to its tracks column.
func column(field string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(field))
	if alias, ok := columnAliases[name]; ok {
		name = alias
	}
	for _, c := range storage.Columns {
		if c == name && c != "path" {
			return c, true
		}
	}
	return "", false
}

// TopValues returns the most frequent values of a tag, most frequent
// first and ties broken by value. Absent values are not counted.
func (l *Library) TopValues(ctx context.Context, field string, top int) ([]ValueCount, error) {
	col, ok := column(field)
	if !ok {
		return nil, New(ErrNotFound, fmt.Sprintf("unknown field: %s", field))
	}
	if top <= 0 {
		top = DefaultTop
	}

	b := sqlbuilder.New(l.adapter.PlaceholderStyle())
	querySQL := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*) AS cnt
		FROM tracks
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY cnt DESC, %[1]s ASC
		LIMIT %[2]s
	`, col, b.Arg(top))

	rows, err := l.db.QueryContext(ctx, querySQL, b.Args()...)
	if err != nil {
		return nil, Wrap(ErrSQL, "query values", err)
	}
	defer rows.Close()

	result := make([]ValueCount, 0)
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, Wrap(ErrSQL, "scan value", err)
		}
		result = append(result, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, Wrap(ErrSQL, "iterate values", err)
	}
	return result, nil
}
