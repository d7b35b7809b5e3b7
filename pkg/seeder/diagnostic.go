package seeder

import (
	"fmt"
	"strings"

	"github.com/Rana718/tableseed/pkg/types"
)

const (
	reportWidth  = 70
	reportPrefix = "    > "
)

type MissingColumn struct {
	Name string
	Type string
}

type MissingTable struct {
	Table   string
	Columns []MissingColumn
}

// MissingColumns reports, per table in the given order, every non auto-increment schema
// column that no insert supplied. Tables without a schema are skipped.
func MissingColumns(tables []string, inserted map[string][]string, schemas map[string]*types.SchemaTable) []MissingTable {
	var missing []MissingTable

	for _, table := range tables {
		schema, ok := schemas[table]
		if !ok || schema == nil {
			continue
		}

		supplied := make(map[string]bool, len(inserted[table]))
		for _, col := range inserted[table] {
			supplied[col] = true
		}

		var cols []MissingColumn
		for _, col := range schema.Columns {
			if col.IsAutoIncrement || supplied[col.Name] {
				continue
			}
			cols = append(cols, MissingColumn{Name: col.Name, Type: col.Type})
		}

		if len(cols) > 0 {
			missing = append(missing, MissingTable{Table: table, Columns: cols})
		}
	}

	return missing
}

// FormatMissingReport renders the boxed report block, or "" when nothing is missing.
func FormatMissingReport(missing []MissingTable) string {
	if len(missing) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(reportPrefix + padBoth(" MISSING COLUMNS ", reportWidth, '#') + "\n")
	for _, t := range missing {
		sb.WriteString(reportPrefix + padRight("# TABLE: "+t.Table, reportWidth-1) + "#\n")
		for _, col := range t.Columns {
			line := fmt.Sprintf("#    %s => %s", col.Name, col.Type)
			sb.WriteString(reportPrefix + padRight(line, reportWidth-1) + "#\n")
		}
	}
	sb.WriteString(reportPrefix + strings.Repeat("#", reportWidth) + "\n")
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padBoth(s string, width int, fill byte) string {
	if len(s) >= width {
		return s
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), total-left)
}
