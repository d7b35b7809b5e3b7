package seeder

import "strings"

// columnKeySeparator cannot appear in a column name; checkColumns rejects it.
const columnKeySeparator = "\x00"

func columnKey(columns []string) string {
	return strings.Join(columns, columnKeySeparator)
}

// pendingBatch buffers rows per table and per column list. Tables, groups and rows
// keep the order in which they were first recorded; flush replays that order.
type pendingBatch struct {
	tables []string
	groups map[string]*tableGroups
}

type tableGroups struct {
	keys    []string
	columns map[string][]string
	rows    map[string][][]any
}

func newPendingBatch() *pendingBatch {
	return &pendingBatch{groups: make(map[string]*tableGroups)}
}

func (b *pendingBatch) add(table string, columns []string, rows [][]any) {
	if len(rows) == 0 {
		return
	}

	g, ok := b.groups[table]
	if !ok {
		g = &tableGroups{
			columns: make(map[string][]string),
			rows:    make(map[string][][]any),
		}
		b.groups[table] = g
		b.tables = append(b.tables, table)
	}

	key := columnKey(columns)
	if _, ok := g.rows[key]; !ok {
		g.keys = append(g.keys, key)
		g.columns[key] = append([]string(nil), columns...)
	}
	g.rows[key] = append(g.rows[key], rows...)
}

func (b *pendingBatch) Tables() []string {
	return b.tables
}

// Groups returns the column keys recorded for table, in first-use order.
func (b *pendingBatch) Groups(table string) []string {
	if g, ok := b.groups[table]; ok {
		return g.keys
	}
	return nil
}

func (b *pendingBatch) Columns(table, key string) []string {
	if g, ok := b.groups[table]; ok {
		return g.columns[key]
	}
	return nil
}

func (b *pendingBatch) Rows(table, key string) [][]any {
	if g, ok := b.groups[table]; ok {
		return g.rows[key]
	}
	return nil
}

func (b *pendingBatch) RowCount(table string) int {
	total := 0
	for _, key := range b.Groups(table) {
		total += len(b.Rows(table, key))
	}
	return total
}

// columnRegistry is the per-table union of every column name supplied during a run.
type columnRegistry struct {
	tables  []string
	columns map[string][]string
	seen    map[string]map[string]bool
}

func newColumnRegistry() *columnRegistry {
	return &columnRegistry{
		columns: make(map[string][]string),
		seen:    make(map[string]map[string]bool),
	}
}

func (r *columnRegistry) add(table string, columns []string) {
	seen, ok := r.seen[table]
	if !ok {
		seen = make(map[string]bool)
		r.seen[table] = seen
		r.tables = append(r.tables, table)
	}
	for _, col := range columns {
		if seen[col] {
			continue
		}
		seen[col] = true
		r.columns[table] = append(r.columns[table], col)
	}
}

func (r *columnRegistry) Tables() []string {
	return r.tables
}

func (r *columnRegistry) Columns(table string) []string {
	return r.columns[table]
}

func (r *columnRegistry) Has(table, column string) bool {
	return r.seen[table][column]
}
