package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rana718/tableseed/internal/database/common"
)

func quote(name string) string {
	return common.QuoteIdentifier(name, '`')
}

func (m *Adapter) BatchInsert(ctx context.Context, tableName string, columns []string, rows [][]any) error {
	statements, err := common.BuildInsertStatements(m.qb, quote, tableName, columns, rows, common.MySQLMaxParams)
	if err != nil {
		return err
	}

	tx, err := m.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (m *Adapter) TruncateTable(ctx context.Context, tableName string) error {
	_, err := m.conn.ExecContext(ctx, "TRUNCATE TABLE "+quote(tableName))
	return err
}

// NextIdentity reads the table's AUTO_INCREMENT counter, falling back to MAX(column)+1.
func (m *Adapter) NextIdentity(ctx context.Context, tableName, column string) (int64, error) {
	// MySQL 8 caches information_schema.TABLES statistics; MariaDB has no such variable
	_, _ = m.conn.ExecContext(ctx, "SET SESSION information_schema_stats_expiry = 0")

	var next sql.NullInt64
	err := m.conn.QueryRowContext(ctx,
		"SELECT AUTO_INCREMENT FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?",
		tableName).Scan(&next)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("table %s not found", tableName)
	}
	if err != nil {
		return 0, err
	}
	if next.Valid {
		return next.Int64, nil
	}

	var maxID int64
	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", quote(column), quote(tableName))
	if err := m.conn.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

func (m *Adapter) SetForeignKeyChecks(ctx context.Context, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	_, err := m.conn.ExecContext(ctx, fmt.Sprintf("SET FOREIGN_KEY_CHECKS = %d", value))
	return err
}
