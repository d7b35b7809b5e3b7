package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Rana718/tableseed/pkg/types"
	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// RunFunc is the body of a seeding run. Rows it records are written when the run ends.
type RunFunc func(ctx context.Context, s *TableSeeder) error

// TableSeeder buffers inserts for one seeding run and writes them in batches on Flush.
// It is not safe for concurrent use.
type TableSeeder struct {
	db        Database
	opts      Options
	out       io.Writer
	log       zerolog.Logger
	runID     string
	createdAt time.Time
	updatedAt time.Time
	generator *DataGenerator
	batch     *pendingBatch
	inserted  *columnRegistry
	schemas   map[string]*types.SchemaTable
	flushed   bool
}

func New(db Database, opts Options) (*TableSeeder, error) {
	if db == nil {
		return nil, errors.New("seeder: nil database")
	}

	locale := opts.Locale
	if locale == "" {
		locale = opts.Language
	}
	if locale == "" {
		locale = DefaultLanguage
	}

	generator, err := NewDataGenerator(locale, opts.FakerSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to create data generator: %w", err)
	}

	now := time.Now()
	createdAt, updatedAt := opts.CreatedAt, opts.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	runID := ulid.Make().String()
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &TableSeeder{
		db:        db,
		opts:      opts,
		out:       out,
		log:       logger.With().Str("run_id", runID).Logger(),
		runID:     runID,
		createdAt: createdAt,
		updatedAt: updatedAt,
		generator: generator,
		batch:     newPendingBatch(),
		inserted:  newColumnRegistry(),
		schemas:   make(map[string]*types.SchemaTable),
	}, nil
}

// Run executes body with a fresh TableSeeder and always flushes it afterwards, including
// when body fails or panics. A body error and a flush error are both returned.
func Run(ctx context.Context, db Database, opts Options, body RunFunc) (err error) {
	s, err := New(db, opts)
	if err != nil {
		return err
	}

	defer func() {
		_, flushErr := s.Flush(ctx)
		err = errors.Join(err, flushErr)
	}()

	if err := body(ctx, s); err != nil {
		return fmt.Errorf("seeder run failed: %w", err)
	}
	return nil
}

func (s *TableSeeder) RunID() string {
	return s.runID
}

func (s *TableSeeder) Locale() string {
	return s.generator.Locale()
}

func (s *TableSeeder) Faker() *DataGenerator {
	return s.generator
}

// Schema returns the (cached) schema of tableName.
func (s *TableSeeder) Schema(ctx context.Context, tableName string) (*types.SchemaTable, error) {
	if schema, ok := s.schemas[tableName]; ok {
		return schema, nil
	}

	schema, err := s.db.GetTableSchema(ctx, tableName)
	if err != nil {
		return nil, &SchemaLookupError{Table: tableName, Err: err}
	}
	if schema == nil {
		return nil, &SchemaLookupError{Table: tableName, Err: errors.New("table not found")}
	}

	s.schemas[tableName] = schema
	return schema, nil
}

// Insert records a single row. created_at and updated_at are filled from the seeder's
// timestamps when the table has them and the record does not.
func (s *TableSeeder) Insert(ctx context.Context, tableName string, record Record) error {
	if s.flushed {
		return ErrAlreadyFlushed
	}
	columns := record.Columns()
	if err := checkColumns(tableName, columns, true); err != nil {
		return err
	}

	schema, err := s.Schema(ctx, tableName)
	if err != nil {
		return err
	}

	values := record.Values()
	for _, ts := range s.timestampColumns(schema, columns) {
		columns = append(columns, ts.name)
		values = append(values, ts.value)
	}

	if len(columns) == 0 {
		return &RowShapeMismatch{Table: tableName}
	}

	s.inserted.add(tableName, columns)
	s.batch.add(tableName, columns, [][]any{values})
	return nil
}

func (s *TableSeeder) InsertMap(ctx context.Context, tableName string, values map[string]any) error {
	return s.Insert(ctx, tableName, RecordFromMap(values))
}

// BatchInsert records rows sharing one column list. Every row must have exactly
// len(columns) values; otherwise nothing is recorded.
func (s *TableSeeder) BatchInsert(ctx context.Context, tableName string, columns []string, rows [][]any) error {
	if s.flushed {
		return ErrAlreadyFlushed
	}
	if err := checkColumns(tableName, columns, len(rows) == 0); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return &RowShapeMismatch{Table: tableName, Row: i, Expected: len(columns), Got: len(row)}
		}
	}

	schema, err := s.Schema(ctx, tableName)
	if err != nil {
		return err
	}

	cols := append([]string(nil), columns...)
	var extra []any
	for _, ts := range s.timestampColumns(schema, columns) {
		cols = append(cols, ts.name)
		extra = append(extra, ts.value)
	}

	buffered := make([][]any, len(rows))
	for i, row := range rows {
		r := make([]any, 0, len(cols))
		r = append(r, row...)
		buffered[i] = append(r, extra...)
	}

	s.inserted.add(tableName, cols)
	s.batch.add(tableName, cols, buffered)
	return nil
}

// InsertedColumns returns every column supplied for tableName so far, in first-seen order.
func (s *TableSeeder) InsertedColumns(tableName string) []string {
	return s.inserted.Columns(tableName)
}

// Pending returns the number of buffered rows for tableName.
func (s *TableSeeder) Pending(tableName string) int {
	return s.batch.RowCount(tableName)
}

// Flush truncates (when enabled) and writes every buffered group, then reports columns
// that were never supplied. It runs once; database failures are not retried and abort
// the remaining groups. The returned Summary lists what was written before a failure.
func (s *TableSeeder) Flush(ctx context.Context) (*Summary, error) {
	if s.flushed {
		return nil, ErrAlreadyFlushed
	}
	s.flushed = true

	summary := &Summary{RunID: s.runID}
	tables := s.batch.Tables()

	if s.opts.Truncate && len(tables) > 0 {
		if err := s.truncate(ctx, tables); err != nil {
			return summary, err
		}
	}

	for _, table := range tables {
		total := 0
		for _, key := range s.batch.Groups(table) {
			columns := s.batch.Columns(table, key)
			rows := s.batch.Rows(table, key)

			s.log.Debug().Str("table", table).Strs("columns", columns).Int("rows", len(rows)).Msg("batch insert")
			if err := s.db.BatchInsert(ctx, table, columns, rows); err != nil {
				if total > 0 {
					summary.Tables = append(summary.Tables, TableCount{Table: table, Rows: total})
				}
				s.log.Error().Err(err).Str("table", table).Msg("batch insert failed")
				return summary, &DatabaseOperationError{Op: "batch insert", Table: table, Err: err}
			}
			total += len(rows)
		}

		summary.Tables = append(summary.Tables, TableCount{Table: table, Rows: total})
		color.New(color.FgGreen).Fprintf(s.out, "      %d %s inserted in %s\n", total, pluralRows(total), table)
	}

	summary.Missing = MissingColumns(s.inserted.Tables(), s.inserted.columns, s.schemas)
	if report := FormatMissingReport(summary.Missing); report != "" {
		color.New(color.FgYellow).Fprint(s.out, report)
	}

	s.log.Debug().Int("tables", len(summary.Tables)).Int("rows", summary.Total()).Msg("flush complete")
	return summary, nil
}

func (s *TableSeeder) truncate(ctx context.Context, tables []string) (err error) {
	if err := s.db.SetForeignKeyChecks(ctx, false); err != nil {
		return &DatabaseOperationError{Op: "disable foreign key checks", Err: err}
	}
	defer func() {
		if enableErr := s.db.SetForeignKeyChecks(ctx, true); enableErr != nil {
			err = errors.Join(err, &DatabaseOperationError{Op: "enable foreign key checks", Err: enableErr})
		}
	}()

	for _, table := range tables {
		s.log.Debug().Str("table", table).Msg("truncate")
		if err := s.db.TruncateTable(ctx, table); err != nil {
			return &DatabaseOperationError{Op: "truncate", Table: table, Err: err}
		}
	}
	return nil
}

type timestampValue struct {
	name  string
	value any
}

// timestampColumns lists created_at then updated_at when the schema has them and
// columns does not.
func (s *TableSeeder) timestampColumns(schema *types.SchemaTable, columns []string) []timestampValue {
	var out []timestampValue
	if !contains(columns, CreatedAtColumn) && schema.HasColumn(CreatedAtColumn) {
		out = append(out, timestampValue{CreatedAtColumn, s.createdAt})
	}
	if !contains(columns, UpdatedAtColumn) && schema.HasColumn(UpdatedAtColumn) {
		out = append(out, timestampValue{UpdatedAtColumn, s.updatedAt})
	}
	return out
}

func checkColumns(tableName string, columns []string, allowEmpty bool) error {
	if len(columns) == 0 && !allowEmpty {
		return &RowShapeMismatch{Table: tableName}
	}
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if strings.Contains(col, columnKeySeparator) {
			return &RowShapeMismatch{Table: tableName, Column: col, Invalid: true}
		}
		if seen[col] {
			return &RowShapeMismatch{Table: tableName, Column: col}
		}
		seen[col] = true
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func pluralRows(n int) string {
	if n == 1 {
		return "row"
	}
	return "rows"
}
