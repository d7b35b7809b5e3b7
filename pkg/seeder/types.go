package seeder

import (
	"context"
	"io"
	"time"

	"github.com/Rana718/tableseed/pkg/types"
	"github.com/rs/zerolog"
)

const (
	CreatedAtColumn = "created_at"
	UpdatedAtColumn = "updated_at"

	DefaultLanguage = "en-US"
)

// Database is the migration layer the seeder writes through.
type Database interface {
	GetTableSchema(ctx context.Context, tableName string) (*types.SchemaTable, error)
	BatchInsert(ctx context.Context, tableName string, columns []string, rows [][]any) error
	TruncateTable(ctx context.Context, tableName string) error
	SetForeignKeyChecks(ctx context.Context, enabled bool) error
}

// IdentityReader reports the value the next row inserted into tableName will get for an
// auto-increment column. FakeTables needs it to reference parent rows when the run
// does not truncate.
type IdentityReader interface {
	NextIdentity(ctx context.Context, tableName, column string) (int64, error)
}

type Options struct {
	Truncate  bool      // Truncate every touched table before flushing
	Locale    string    // Faker locale; derived from Language when empty
	Language  string    // Application language, e.g. "en-US"
	CreatedAt time.Time // Value injected into created_at; zero means construction time
	UpdatedAt time.Time // Value injected into updated_at; zero means construction time
	FakerSeed int64     // Zero seeds from the clock
	Out       io.Writer // Progress output, defaults to os.Stdout
	Logger    *zerolog.Logger
}

func DefaultOptions() Options {
	return Options{
		Truncate: true,
		Language: DefaultLanguage,
	}
}

type TableCount struct {
	Table string
	Rows  int
}

// Summary describes what a flush wrote. On failure it holds the tables flushed so far.
type Summary struct {
	RunID   string
	Tables  []TableCount
	Missing []MissingTable
}

func (s *Summary) Total() int {
	total := 0
	for _, t := range s.Tables {
		total += t.Rows
	}
	return total
}

// FakeSpec asks the fake seeder for Count generated rows in Table.
type FakeSpec struct {
	Table string
	Count int
}
