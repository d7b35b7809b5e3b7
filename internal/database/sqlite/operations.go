package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rana718/tableseed/internal/database/common"
)

func quote(name string) string {
	return common.QuoteIdentifier(name, '"')
}

func (s *Adapter) BatchInsert(ctx context.Context, tableName string, columns []string, rows [][]any) error {
	statements, err := common.BuildInsertStatements(s.qb, quote, tableName, columns, rows, common.SQLiteMaxParams)
	if err != nil {
		return err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
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

// TruncateTable deletes every row and restarts AUTOINCREMENT numbering.
func (s *Adapter) TruncateTable(ctx context.Context, tableName string) error {
	if _, err := s.conn.ExecContext(ctx, "DELETE FROM "+quote(tableName)); err != nil {
		return err
	}

	hasSequence, err := s.hasSequenceTable(ctx)
	if err != nil || !hasSequence {
		return err
	}

	_, err = s.conn.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", tableName)
	return err
}

// NextIdentity returns the rowid the next insert into tableName gets. AUTOINCREMENT
// tables never reuse ids, so their sqlite_sequence entry wins over MAX.
func (s *Adapter) NextIdentity(ctx context.Context, tableName, column string) (int64, error) {
	hasSequence, err := s.hasSequenceTable(ctx)
	if err != nil {
		return 0, err
	}

	var seq, maxID int64
	if hasSequence {
		err := s.conn.QueryRowContext(ctx, "SELECT seq FROM sqlite_sequence WHERE name = ?", tableName).Scan(&seq)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return 0, err
		}
	}

	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", quote(column), quote(tableName))
	if err := s.conn.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, err
	}

	if seq > maxID {
		return seq + 1, nil
	}
	return maxID + 1, nil
}

func (s *Adapter) hasSequenceTable(ctx context.Context) (bool, error) {
	var n int
	err := s.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'").Scan(&n)
	return n > 0, err
}

func (s *Adapter) SetForeignKeyChecks(ctx context.Context, enabled bool) error {
	value := "OFF"
	if enabled {
		value = "ON"
	}
	_, err := s.conn.ExecContext(ctx, "PRAGMA foreign_keys = "+value)
	return err
}
