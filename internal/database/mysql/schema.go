package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rana718/tableseed/pkg/types"
)

func (m *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := m.conn.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
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

func (m *Adapter) GetTableSchema(ctx context.Context, tableName string) (*types.SchemaTable, error) {
	rows, err := m.conn.QueryContext(ctx, `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable,
			c.column_default,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.column_type,
			CASE WHEN c.column_key = 'PRI' THEN 1 ELSE 0 END AS is_primary_key,
			c.extra,
			k.referenced_table_name,
			k.referenced_column_name
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage k
			ON c.table_schema = k.table_schema
			AND c.table_name = k.table_name
			AND c.column_name = k.column_name
			AND k.referenced_table_name IS NOT NULL
		WHERE c.table_name = ? AND c.table_schema = DATABASE()
		ORDER BY c.ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := &types.SchemaTable{Name: tableName}
	seen := make(map[string]bool)
	for rows.Next() {
		var column types.SchemaColumn
		var dataType, isNullable, columnType, extra string
		var columnDefault, referencedTable, referencedColumn sql.NullString
		var charMaxLength, numericPrecision, numericScale sql.NullInt64
		var isPrimary int

		err := rows.Scan(
			&column.Name,
			&dataType,
			&isNullable,
			&columnDefault,
			&charMaxLength,
			&numericPrecision,
			&numericScale,
			&columnType,
			&isPrimary,
			&extra,
			&referencedTable,
			&referencedColumn,
		)
		if err != nil {
			return nil, err
		}

		// a column in several foreign keys comes back once per key
		if seen[column.Name] {
			continue
		}
		seen[column.Name] = true

		column.Type = formatMySQLType(dataType, columnType, charMaxLength, numericPrecision, numericScale)
		column.Nullable = isNullable == "YES"
		column.IsPrimary = isPrimary == 1
		column.IsAutoIncrement = strings.Contains(strings.ToLower(extra), "auto_increment")
		if columnDefault.Valid {
			column.Default = formatMySQLDefault(columnDefault.String)
		}
		if referencedTable.Valid && referencedColumn.Valid {
			column.ForeignKeyTable = referencedTable.String
			column.ForeignKeyColumn = referencedColumn.String
		}

		table.Columns = append(table.Columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}
	return table, nil
}

func formatMySQLType(dataType, columnType string, charMaxLength, numericPrecision, numericScale sql.NullInt64) string {
	switch dataType {
	case "varchar":
		if charMaxLength.Valid {
			return fmt.Sprintf("VARCHAR(%d)", charMaxLength.Int64)
		}
		return "VARCHAR(255)"
	case "char":
		if charMaxLength.Valid {
			return fmt.Sprintf("CHAR(%d)", charMaxLength.Int64)
		}
		return "CHAR(1)"
	case "decimal":
		if numericPrecision.Valid && numericScale.Valid {
			return fmt.Sprintf("DECIMAL(%d,%d)", numericPrecision.Int64, numericScale.Int64)
		} else if numericPrecision.Valid {
			return fmt.Sprintf("DECIMAL(%d)", numericPrecision.Int64)
		}
		return "DECIMAL"
	default:
		if columnType != "" {
			return strings.ToUpper(columnType)
		}
		return strings.ToUpper(dataType)
	}
}

func formatMySQLDefault(defaultValue string) string {
	if strings.Contains(strings.ToLower(defaultValue), "current_timestamp") {
		return "CURRENT_TIMESTAMP"
	}
	return defaultValue
}
