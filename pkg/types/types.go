package types

type SchemaTable struct {
	Name    string
	Columns []SchemaColumn
}

type SchemaColumn struct {
	Name             string
	Type             string
	Nullable         bool
	Default          string
	IsPrimary        bool
	IsAutoIncrement  bool // SERIAL, IDENTITY, AUTO_INCREMENT or an SQLite rowid alias
	ForeignKeyTable  string
	ForeignKeyColumn string
}

// ColumnNames returns the column names in ordinal order.
func (t *SchemaTable) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

func (t *SchemaTable) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

// Dependencies lists the distinct tables referenced by foreign keys, excluding self-references.
func (t *SchemaTable) Dependencies() []string {
	var deps []string
	seen := make(map[string]bool)
	for _, col := range t.Columns {
		ref := col.ForeignKeyTable
		if ref == "" || ref == t.Name || seen[ref] {
			continue
		}
		seen[ref] = true
		deps = append(deps, ref)
	}
	return deps
}
