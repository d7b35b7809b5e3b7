package seeder

import "sort"

type Field struct {
	Name  string
	Value any
}

// Record is an ordered column => value list for a single insert.
type Record []Field

func (r Record) Set(name string, value any) Record {
	return append(r, Field{Name: name, Value: value})
}

func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}

func (r Record) Values() []any {
	vals := make([]any, len(r))
	for i, f := range r {
		vals[i] = f.Value
	}
	return vals
}

func (r Record) Has(name string) bool {
	for _, f := range r {
		if f.Name == name {
			return true
		}
	}
	return false
}

// RecordFromMap builds a Record with the map keys in lexical order.
func RecordFromMap(m map[string]any) Record {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	rec := make(Record, 0, len(names))
	for _, name := range names {
		rec = append(rec, Field{Name: name, Value: m[name]})
	}
	return rec
}
