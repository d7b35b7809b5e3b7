package sqlite

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rana718/tableseed/pkg/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email VARCHAR(255),
	created_at DATETIME,
	updated_at DATETIME
);
CREATE TABLE posts (
	id INTEGER PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	title TEXT NOT NULL
);
CREATE TABLE tags (
	post_id INTEGER NOT NULL REFERENCES posts,
	label TEXT NOT NULL,
	PRIMARY KEY (post_id, label)
);
`

func setupAdapter(t *testing.T) *Adapter {
	t.Helper()
	ctx := context.Background()

	a := New()
	require.NoError(t, a.Connect(ctx, "sqlite://"+filepath.Join(t.TempDir(), "seed.db")))
	t.Cleanup(func() { a.Close() })

	_, err := a.conn.ExecContext(ctx, testSchema)
	require.NoError(t, err)
	return a
}

func countRows(t *testing.T, a *Adapter, table string) int {
	t.Helper()
	var n int
	require.NoError(t, a.conn.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+quote(table)).Scan(&n))
	return n
}

func TestGetTableSchema(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	users, err := a.GetTableSchema(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email", "created_at", "updated_at"}, users.ColumnNames())

	id := users.Columns[0]
	assert.True(t, id.IsPrimary)
	assert.True(t, id.IsAutoIncrement)
	assert.False(t, users.Columns[1].Nullable)
	assert.True(t, users.Columns[2].Nullable)
	assert.Equal(t, "TEXT", users.Columns[2].Type)

	posts, err := a.GetTableSchema(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, "users", posts.Columns[1].ForeignKeyTable)
	assert.Equal(t, "id", posts.Columns[1].ForeignKeyColumn)
	assert.Equal(t, []string{"users"}, posts.Dependencies())

	tags, err := a.GetTableSchema(ctx, "tags")
	require.NoError(t, err)
	assert.False(t, tags.Columns[0].IsAutoIncrement)
	assert.Equal(t, "id", tags.Columns[0].ForeignKeyColumn)
}

func TestGetTableSchema_Unknown(t *testing.T) {
	a := setupAdapter(t)

	_, err := a.GetTableSchema(context.Background(), "ghosts")
	assert.Error(t, err)

	_, err = a.GetTableSchema(context.Background(), `users"; DROP TABLE users; --`)
	assert.Error(t, err)
	assert.Equal(t, 0, countRows(t, a, "users"))
}

func TestGetAllTableNames(t *testing.T) {
	a := setupAdapter(t)

	names, err := a.GetAllTableNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "tags", "users"}, names)
}

func TestBatchInsert_Chunks(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	rows := make([][]any, 700)
	for i := range rows {
		rows[i] = []any{"user", nil}
	}
	require.NoError(t, a.BatchInsert(ctx, "users", []string{"name", "email"}, rows))
	assert.Equal(t, 700, countRows(t, a, "users"))
}

func TestTruncateTable_RestartsIdentity(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.BatchInsert(ctx, "users", []string{"name"}, [][]any{{"A"}, {"B"}}))
	require.NoError(t, a.TruncateTable(ctx, "users"))
	assert.Equal(t, 0, countRows(t, a, "users"))

	require.NoError(t, a.BatchInsert(ctx, "users", []string{"name"}, [][]any{{"C"}}))
	var id int
	require.NoError(t, a.conn.QueryRowContext(ctx, "SELECT id FROM users WHERE name = 'C'").Scan(&id))
	assert.Equal(t, 1, id)
}

func TestSetForeignKeyChecks(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	require.NoError(t, a.SetForeignKeyChecks(ctx, true))
	err := a.BatchInsert(ctx, "posts", []string{"user_id", "title"}, [][]any{{42, "orphan"}})
	assert.Error(t, err)
	assert.Equal(t, 0, countRows(t, a, "posts"))

	require.NoError(t, a.SetForeignKeyChecks(ctx, false))
	require.NoError(t, a.BatchInsert(ctx, "posts", []string{"user_id", "title"}, [][]any{{42, "orphan"}}))
	assert.Equal(t, 1, countRows(t, a, "posts"))
}

func TestSeederRun(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()
	require.NoError(t, a.SetForeignKeyChecks(ctx, true))

	// stale data that the run truncates
	require.NoError(t, a.BatchInsert(ctx, "users", []string{"name"}, [][]any{{"old"}}))
	require.NoError(t, a.BatchInsert(ctx, "posts", []string{"user_id", "title"}, [][]any{{1, "old"}}))

	var out bytes.Buffer
	opts := seeder.DefaultOptions()
	opts.Out = &out
	opts.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := seeder.Run(ctx, a, opts, func(ctx context.Context, s *seeder.TableSeeder) error {
		if err := s.Insert(ctx, "users", seeder.Record{}.Set("name", "Ada")); err != nil {
			return err
		}
		if err := s.Insert(ctx, "users", seeder.Record{}.Set("name", "Linus")); err != nil {
			return err
		}
		return s.BatchInsert(ctx, "posts", []string{"user_id", "title"}, [][]any{{1, "hello"}, {2, "world"}})
	})
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, a, "users"))
	assert.Equal(t, 2, countRows(t, a, "posts"))
	assert.Contains(t, out.String(), "2 rows inserted in users")
	assert.Contains(t, out.String(), "2 rows inserted in posts")
	assert.Contains(t, out.String(), "email => TEXT")

	var ids []int
	rows, err := a.conn.QueryContext(ctx, "SELECT id FROM users ORDER BY id")
	require.NoError(t, err)
	for rows.Next() {
		var id int
		require.NoError(t, rows.Scan(&id))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Close())
	assert.Equal(t, []int{1, 2}, ids)
}

func TestFakeTables(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()
	require.NoError(t, a.SetForeignKeyChecks(ctx, true))

	opts := seeder.DefaultOptions()
	opts.Out = &bytes.Buffer{}
	opts.FakerSeed = 1

	err := seeder.Run(ctx, a, opts, func(ctx context.Context, s *seeder.TableSeeder) error {
		return seeder.FakeTables(ctx, s, []seeder.FakeSpec{{Table: "posts", Count: 20}, {Table: "users", Count: 5}})
	})
	require.NoError(t, err)

	assert.Equal(t, 5, countRows(t, a, "users"))
	assert.Equal(t, 20, countRows(t, a, "posts"))

	var orphans int
	require.NoError(t, a.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE user_id NOT IN (SELECT id FROM users)").Scan(&orphans))
	assert.Equal(t, 0, orphans)
}

func TestNextIdentity(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	next, err := a.NextIdentity(ctx, "users", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)

	for i := 0; i < 5; i++ {
		_, err := a.conn.ExecContext(ctx, "INSERT INTO users (name) VALUES ('gone')")
		require.NoError(t, err)
	}
	_, err = a.conn.ExecContext(ctx, "DELETE FROM users")
	require.NoError(t, err)

	// AUTOINCREMENT keeps counting after the rows are gone
	next, err = a.NextIdentity(ctx, "users", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(6), next)

	_, err = a.conn.ExecContext(ctx, "INSERT INTO posts (id, user_id, title) VALUES (41, 1, 'x')")
	require.NoError(t, err)
	next, err = a.NextIdentity(ctx, "posts", "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), next)
}

func TestFakeTables_WithoutTruncate(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := a.conn.ExecContext(ctx, "INSERT INTO users (name) VALUES ('gone')")
		require.NoError(t, err)
	}
	_, err := a.conn.ExecContext(ctx, "DELETE FROM users")
	require.NoError(t, err)

	opts := seeder.DefaultOptions()
	opts.Truncate = false
	opts.Out = &bytes.Buffer{}
	opts.FakerSeed = 3

	err = seeder.Run(ctx, a, opts, func(ctx context.Context, s *seeder.TableSeeder) error {
		return seeder.FakeTables(ctx, s, []seeder.FakeSpec{{Table: "users", Count: 3}, {Table: "posts", Count: 5}})
	})
	require.NoError(t, err)

	var minID, maxID int
	require.NoError(t, a.conn.QueryRowContext(ctx, "SELECT MIN(id), MAX(id) FROM users").Scan(&minID, &maxID))
	assert.Equal(t, 6, minID)
	assert.Equal(t, 8, maxID)

	var orphans int
	require.NoError(t, a.conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM posts WHERE user_id NOT IN (SELECT id FROM users)").Scan(&orphans))
	assert.Equal(t, 0, orphans)
	assert.Equal(t, 5, countRows(t, a, "posts"))
}

func TestTruncateTable_LeavesReferencingTables(t *testing.T) {
	a := setupAdapter(t)
	ctx := context.Background()

	_, err := a.conn.ExecContext(ctx, "INSERT INTO users (name) VALUES ('a')")
	require.NoError(t, err)
	_, err = a.conn.ExecContext(ctx, "INSERT INTO posts (user_id, title) VALUES (1, 'kept')")
	require.NoError(t, err)

	require.NoError(t, a.SetForeignKeyChecks(ctx, false))
	require.NoError(t, a.TruncateTable(ctx, "users"))
	require.NoError(t, a.SetForeignKeyChecks(ctx, true))

	assert.Equal(t, 0, countRows(t, a, "users"))
	assert.Equal(t, 1, countRows(t, a, "posts"))
}
