package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rana718/tableseed/internal/database/common"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

// resetSequencesQuery restarts every sequence owned by a column of $1 (serial and identity).
const resetSequencesQuery = `
SELECT setval(s.oid::regclass, ps.seqstart, false)
FROM pg_class s
JOIN pg_sequence ps ON ps.seqrelid = s.oid
JOIN pg_depend d ON d.objid = s.oid
	AND d.classid = 'pg_class'::regclass
	AND d.refclassid = 'pg_class'::regclass
WHERE s.relkind = 'S'
	AND d.deptype IN ('a', 'i')
	AND d.refobjid = $1::text::regclass`

const nextIdentityQuery = `
SELECT COALESCE(s.last_value + s.increment_by, s.start_value)
FROM pg_sequences s
WHERE format('%I.%I', s.schemaname, s.sequencename) = pg_get_serial_sequence($1, $2)`

// BatchInsert writes all rows in one transaction, split into statements that stay
// under the bind-parameter limit.
func (p *Adapter) BatchInsert(ctx context.Context, tableName string, columns []string, rows [][]any) error {
	statements, err := common.BuildInsertStatements(p.qb, pq.QuoteIdentifier, tableName, columns, rows, common.PostgresMaxParams)
	if err != nil {
		return err
	}

	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// TruncateTable deletes every row of tableName and restarts its sequences. Tables that
// reference it keep their rows; with foreign key checks off nothing cascades.
func (p *Adapter) TruncateTable(ctx context.Context, tableName string) error {
	if _, err := p.conn.Exec(ctx, deleteAllSQL(tableName)); err != nil {
		return err
	}
	_, err := p.conn.Exec(ctx, resetSequencesQuery, pq.QuoteIdentifier(tableName))
	return err
}

func deleteAllSQL(tableName string) string {
	return "DELETE FROM " + pq.QuoteIdentifier(tableName)
}

// NextIdentity returns the value the column's sequence hands out next, or MAX+1 when
// the column has no sequence.
func (p *Adapter) NextIdentity(ctx context.Context, tableName, column string) (int64, error) {
	var next int64
	err := p.conn.QueryRow(ctx, nextIdentityQuery, pq.QuoteIdentifier(tableName), column).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", pq.QuoteIdentifier(column), pq.QuoteIdentifier(tableName))
	if err := p.conn.QueryRow(ctx, query).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

// SetForeignKeyChecks switches the session between replica and origin roles; in
// replica mode foreign key triggers do not fire.
func (p *Adapter) SetForeignKeyChecks(ctx context.Context, enabled bool) error {
	role := "replica"
	if enabled {
		role = "origin"
	}
	_, err := p.conn.Exec(ctx, "SET session_replication_role = "+role)
	return err
}
