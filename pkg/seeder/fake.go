package seeder

import (
	"context"
	"fmt"

	"github.com/Rana718/tableseed/pkg/types"
)

// FakeTables records generated rows for every spec, parents before children.
//
// Foreign keys that point at an auto-increment column of a table faked in the same run
// get an id among the parent's pending rows. With truncation those ids start at 1;
// otherwise the database must implement IdentityReader so the range starts at the
// parent's next identity. Any other foreign key is NULL when nullable.
func FakeTables(ctx context.Context, s *TableSeeder, specs []FakeSpec) error {
	counts := make(map[string]int, len(specs))
	graph := NewDependencyGraph()

	for _, spec := range specs {
		if spec.Count <= 0 {
			return fmt.Errorf("invalid row count %d for table %s", spec.Count, spec.Table)
		}
		schema, err := s.Schema(ctx, spec.Table)
		if err != nil {
			return err
		}
		graph.AddTable(schema)
		counts[spec.Table] = spec.Count
	}

	order, err := graph.BuildInsertionOrder()
	if err != nil {
		return fmt.Errorf("failed to build insertion order: %w", err)
	}
	s.log.Debug().Strs("order", order).Msg("fake insertion order")

	bases, err := s.identityBases(ctx, order, counts)
	if err != nil {
		return err
	}

	for _, tableName := range order {
		if err := s.fakeTable(ctx, s.schemas[tableName], counts[tableName], bases); err != nil {
			return fmt.Errorf("failed to fake table %s: %w", tableName, err)
		}
	}
	return nil
}

// identityBases returns, per referenced parent, the id its first pending row will get.
func (s *TableSeeder) identityBases(ctx context.Context, order []string, counts map[string]int) (map[string]int64, error) {
	bases := make(map[string]int64)
	for _, tableName := range order {
		for _, col := range s.schemas[tableName].Columns {
			parent := col.ForeignKeyTable
			if parent == "" || parent == tableName || counts[parent] == 0 {
				continue
			}
			if _, ok := bases[parent]; ok || !referencesIdentity(s.schemas[parent], col.ForeignKeyColumn) {
				continue
			}

			if s.opts.Truncate {
				bases[parent] = 1
				continue
			}

			reader, ok := s.db.(IdentityReader)
			if !ok {
				return nil, fmt.Errorf("cannot predict ids of %s without truncating it first", parent)
			}
			next, err := reader.NextIdentity(ctx, parent, col.ForeignKeyColumn)
			if err != nil {
				return nil, &DatabaseOperationError{Op: "read next identity", Table: parent, Err: err}
			}
			bases[parent] = next
		}
	}
	return bases, nil
}

func (s *TableSeeder) fakeTable(ctx context.Context, table *types.SchemaTable, count int, bases map[string]int64) error {
	var columns []string
	var fill []types.SchemaColumn
	for _, col := range table.Columns {
		// Timestamps are left to BatchInsert
		if col.IsAutoIncrement || col.Name == CreatedAtColumn || col.Name == UpdatedAtColumn {
			continue
		}
		columns = append(columns, col.Name)
		fill = append(fill, col)
	}

	rows := make([][]any, count)
	for i := range rows {
		row := make([]any, len(fill))
		for j, col := range fill {
			if col.ForeignKeyTable == "" {
				row[j] = s.generator.GenerateForColumn(col)
				continue
			}

			value, err := s.foreignKeyValue(table.Name, col, bases)
			if err != nil {
				return err
			}
			row[j] = value
		}
		rows[i] = row
	}

	return s.BatchInsert(ctx, table.Name, columns, rows)
}

func (s *TableSeeder) foreignKeyValue(tableName string, col types.SchemaColumn, bases map[string]int64) (any, error) {
	base, ok := bases[col.ForeignKeyTable]
	if ok && col.ForeignKeyTable != tableName && referencesIdentity(s.schemas[col.ForeignKeyTable], col.ForeignKeyColumn) {
		// parents are recorded before children, so every pending parent row is counted
		if pending := s.Pending(col.ForeignKeyTable); pending > 0 {
			return int(base) + s.generator.Faker().Number(0, pending-1), nil
		}
	}

	if col.Nullable {
		return nil, nil
	}
	return nil, fmt.Errorf("cannot fill NOT NULL foreign key %s.%s: %s is not seeded in this run",
		tableName, col.Name, col.ForeignKeyTable)
}

func referencesIdentity(parent *types.SchemaTable, column string) bool {
	for _, col := range parent.Columns {
		if col.Name == column {
			return col.IsAutoIncrement
		}
	}
	return false
}
