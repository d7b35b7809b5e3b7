package database

import (
	"context"

	"github.com/Rana718/tableseed/pkg/seeder"
)

// DatabaseAdapter is a seeder.Database with a connection lifecycle. Adapters hold a single
// session for their whole life so foreign key toggles apply to every later statement.
type DatabaseAdapter interface {
	seeder.Database
	seeder.IdentityReader

	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	GetAllTableNames(ctx context.Context) ([]string, error)
}
