package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Bind-parameter ceilings per dialect. SQLite uses the historical compile-time default
// so older builds of the library are covered too.
const (
	PostgresMaxParams = 65535
	MySQLMaxParams    = 65535
	SQLiteMaxParams   = 999
)

var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_$]*$`)

type Statement struct {
	SQL  string
	Args []any
}

// ValidateIdentifier rejects names that cannot be used unquoted in PRAGMA and
// SET statements, which take no bind parameters.
func ValidateIdentifier(name string) error {
	if !identifierRegex.MatchString(name) {
		return fmt.Errorf("invalid identifier: %q", name)
	}
	return nil
}

// QuoteIdentifier wraps name in quote, doubling any embedded quote characters.
func QuoteIdentifier(name string, quote byte) string {
	q := string(quote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// ChunkRows splits rows so that no chunk binds more than maxParams values.
func ChunkRows(rows [][]any, columns, maxParams int) [][][]any {
	if len(rows) == 0 {
		return nil
	}

	perChunk := len(rows)
	if columns > 0 {
		perChunk = maxParams / columns
	}
	if perChunk < 1 {
		perChunk = 1
	}

	chunks := make([][][]any, 0, (len(rows)+perChunk-1)/perChunk)
	for start := 0; start < len(rows); start += perChunk {
		end := start + perChunk
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}
	return chunks
}

// BuildInsertStatements renders one multi-row INSERT per chunk of rows.
func BuildInsertStatements(qb squirrel.StatementBuilderType, quote func(string) string, table string, columns []string, rows [][]any, maxParams int) ([]Statement, error) {
	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quote(col)
	}

	var statements []Statement
	for _, chunk := range ChunkRows(rows, len(columns), maxParams) {
		insert := qb.Insert(quote(table)).Columns(quoted...)
		for _, row := range chunk {
			insert = insert.Values(row...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert for %s: %w", table, err)
		}
		statements = append(statements, Statement{SQL: query, Args: args})
	}
	return statements, nil
}
