package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rana718/tableseed/internal/database/common"
	"github.com/Rana718/tableseed/pkg/types"
)

var typeMap = map[string]string{
	"varchar": "TEXT", "text": "TEXT", "char": "TEXT",
	"int": "INTEGER", "integer": "INTEGER", "bigint": "INTEGER", "smallint": "INTEGER", "tinyint": "INTEGER",
	"real": "REAL", "double": "REAL", "float": "REAL",
	"blob": "BLOB", "numeric": "NUMERIC", "decimal": "NUMERIC",
	"boolean": "BOOLEAN", "bool": "BOOLEAN",
	"date": "DATE", "datetime": "DATETIME", "timestamp": "TIMESTAMP",
}

func (s *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

func (s *Adapter) GetTableSchema(ctx context.Context, tableName string) (*types.SchemaTable, error) {
	// PRAGMA takes no bind parameters
	if err := common.ValidateIdentifier(tableName); err != nil {
		return nil, err
	}

	columns, err := s.tableInfo(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}

	if err := s.applyForeignKeys(ctx, tableName, columns); err != nil {
		return nil, fmt.Errorf("failed to read foreign keys of %s: %w", tableName, err)
	}
	return &types.SchemaTable{Name: tableName, Columns: columns}, nil
}

func (s *Adapter) tableInfo(ctx context.Context, tableName string) ([]types.SchemaColumn, error) {
	rows, err := s.conn.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(\"%s\")", tableName))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []types.SchemaColumn
	var rawTypes []string
	primaryKeys := 0
	for rows.Next() {
		var cid int
		var column types.SchemaColumn
		var dataType string
		var notNull int
		var defaultValue sql.NullString
		var pk int

		if err := rows.Scan(&cid, &column.Name, &dataType, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		column.Type = mapColumnType(dataType)
		column.Nullable = notNull == 0
		column.IsPrimary = pk > 0
		if defaultValue.Valid {
			column.Default = defaultValue.String
		}
		if pk > 0 {
			primaryKeys++
		}

		columns = append(columns, column)
		rawTypes = append(rawTypes, strings.ToUpper(dataType))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// only a lone INTEGER PRIMARY KEY aliases the rowid
	if primaryKeys == 1 {
		for i := range columns {
			if columns[i].IsPrimary && rawTypes[i] == "INTEGER" {
				columns[i].IsAutoIncrement = true
			}
		}
	}
	return columns, nil
}

func (s *Adapter) applyForeignKeys(ctx context.Context, tableName string, columns []types.SchemaColumn) error {
	rows, err := s.conn.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(\"%s\")", tableName))
	if err != nil {
		return err
	}
	defer rows.Close()

	type reference struct{ from, table, to string }
	var refs []reference
	for rows.Next() {
		var id, seq int
		var table, from string
		var to sql.NullString
		var onUpdate, onDelete, match string

		if err := rows.Scan(&id, &seq, &table, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return err
		}
		refs = append(refs, reference{from: from, table: table, to: to.String})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	for _, ref := range refs {
		// REFERENCES parent without a column list targets the parent's primary key
		if ref.to == "" {
			ref.to, err = s.primaryKeyColumn(ctx, ref.table)
			if err != nil {
				return err
			}
		}
		for i := range columns {
			if columns[i].Name == ref.from {
				columns[i].ForeignKeyTable = ref.table
				columns[i].ForeignKeyColumn = ref.to
				break
			}
		}
	}
	return nil
}

func (s *Adapter) primaryKeyColumn(ctx context.Context, tableName string) (string, error) {
	if err := common.ValidateIdentifier(tableName); err != nil {
		return "", err
	}
	columns, err := s.tableInfo(ctx, tableName)
	if err != nil {
		return "", err
	}
	for _, col := range columns {
		if col.IsPrimary {
			return col.Name, nil
		}
	}
	return "rowid", nil
}

func mapColumnType(dbType string) string {
	base := strings.ToLower(dbType)
	if idx := strings.Index(base, "("); idx > 0 {
		base = strings.TrimSpace(base[:idx])
	}
	if mapped, exists := typeMap[base]; exists {
		return mapped
	}
	return strings.ToUpper(dbType)
}
