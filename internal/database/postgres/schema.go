package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Rana718/tableseed/pkg/types"
)

var typeMap = map[string]string{
	"text": "TEXT", "int4": "INTEGER", "int8": "BIGINT", "int2": "SMALLINT",
	"bool": "BOOLEAN", "date": "DATE", "time": "TIME",
	"float4": "REAL", "float8": "DOUBLE PRECISION",
	"uuid": "UUID", "json": "JSON", "jsonb": "JSONB",
}

func (p *Adapter) GetAllTableNames(ctx context.Context) ([]string, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]string, 0, 32)
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

func (p *Adapter) GetTableSchema(ctx context.Context, tableName string) (*types.SchemaTable, error) {
	rows, err := p.conn.Query(ctx, `
		SELECT
			c.column_name,
			c.udt_name,
			c.is_nullable,
			c.column_default,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale,
			c.is_identity
		FROM information_schema.columns c
		WHERE c.table_name = $1 AND c.table_schema = current_schema()
		ORDER BY c.ordinal_position
	`, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := &types.SchemaTable{Name: tableName}
	for rows.Next() {
		var column types.SchemaColumn
		var udtName, isNullable, isIdentity string
		var columnDefault sql.NullString
		var charMaxLength, numericPrecision, numericScale sql.NullInt64

		err := rows.Scan(
			&column.Name,
			&udtName,
			&isNullable,
			&columnDefault,
			&charMaxLength,
			&numericPrecision,
			&numericScale,
			&isIdentity,
		)
		if err != nil {
			return nil, err
		}

		column.Type = formatPostgresType(udtName, charMaxLength, numericPrecision, numericScale)
		column.Nullable = isNullable == "YES"
		column.IsAutoIncrement = isIdentity == "YES"
		if columnDefault.Valid {
			if strings.Contains(strings.ToLower(columnDefault.String), "nextval(") {
				column.IsAutoIncrement = true
			} else {
				column.Default = cleanDefaultValue(columnDefault.String)
			}
		}

		table.Columns = append(table.Columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}

	if err := p.applyConstraints(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to read constraints of %s: %w", tableName, err)
	}
	return table, nil
}

// applyConstraints marks primary key columns and fills foreign key targets.
func (p *Adapter) applyConstraints(ctx context.Context, table *types.SchemaTable) error {
	rows, err := p.conn.Query(ctx, `
		SELECT
			src_attr.attname,
			con.contype::text,
			tgt_table.relname,
			tgt_attr.attname
		FROM pg_constraint con
		JOIN pg_class src_table ON con.conrelid = src_table.oid
		JOIN pg_namespace ns ON src_table.relnamespace = ns.oid
		CROSS JOIN LATERAL UNNEST(con.conkey, con.confkey) AS cols(src_col, tgt_col)
		JOIN pg_attribute src_attr ON src_attr.attrelid = src_table.oid AND src_attr.attnum = cols.src_col
		LEFT JOIN pg_class tgt_table ON con.confrelid = tgt_table.oid
		LEFT JOIN pg_attribute tgt_attr ON tgt_attr.attrelid = tgt_table.oid AND tgt_attr.attnum = cols.tgt_col
		WHERE src_table.relname = $1
		  AND ns.nspname = current_schema()
		  AND con.contype IN ('p', 'f')
	`, table.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[string]*types.SchemaColumn, len(table.Columns))
	for i := range table.Columns {
		index[table.Columns[i].Name] = &table.Columns[i]
	}

	for rows.Next() {
		var columnName, constraintType string
		var fkTable, fkColumn sql.NullString
		if err := rows.Scan(&columnName, &constraintType, &fkTable, &fkColumn); err != nil {
			return err
		}

		col, ok := index[columnName]
		if !ok {
			continue
		}
		switch constraintType {
		case "p":
			col.IsPrimary = true
		case "f":
			col.ForeignKeyTable = fkTable.String
			col.ForeignKeyColumn = fkColumn.String
		}
	}
	return rows.Err()
}

func formatPostgresType(udtName string, charMaxLength, numericPrecision, numericScale sql.NullInt64) string {
	switch udtName {
	case "varchar":
		if charMaxLength.Valid {
			return fmt.Sprintf("VARCHAR(%d)", charMaxLength.Int64)
		}
		return "VARCHAR"
	case "bpchar":
		if charMaxLength.Valid {
			return fmt.Sprintf("CHAR(%d)", charMaxLength.Int64)
		}
		return "CHAR"
	case "numeric":
		if numericPrecision.Valid && numericScale.Valid {
			return fmt.Sprintf("NUMERIC(%d,%d)", numericPrecision.Int64, numericScale.Int64)
		} else if numericPrecision.Valid {
			return fmt.Sprintf("NUMERIC(%d)", numericPrecision.Int64)
		}
		return "NUMERIC"
	case "timestamptz":
		return "TIMESTAMP WITH TIME ZONE"
	case "timestamp":
		return "TIMESTAMP"
	default:
		if mapped, exists := typeMap[strings.ToLower(udtName)]; exists {
			return mapped
		}
		return strings.ToUpper(udtName)
	}
}

func cleanDefaultValue(defaultVal string) string {
	value := defaultVal
	if idx := strings.Index(value, "::"); idx != -1 {
		value = strings.TrimSpace(value[:idx])
	}

	upper := strings.ToUpper(value)
	if strings.Contains(upper, "NOW()") || strings.Contains(upper, "CURRENT_TIMESTAMP") {
		return "NOW()"
	}
	return value
}
