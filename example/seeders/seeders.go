// Package seeders registers the example seeders for example/schema/schema.sql.
package seeders

import (
	"context"
	"fmt"

	"github.com/Rana718/tableseed/pkg/seeder"
)

func init() {
	seeder.Register("users", Users)
	seeder.Register("posts", Posts)
	seeder.Register("comments", Comments)
}

// Users writes two fixed accounts and a handful of generated ones.
func Users(ctx context.Context, s *seeder.TableSeeder) error {
	if err := s.Insert(ctx, "users", seeder.Record{}.
		Set("name", "Admin").
		Set("email", "admin@example.com")); err != nil {
		return err
	}

	if err := s.InsertMap(ctx, "users", map[string]any{
		"name":  "Editor",
		"email": "editor@example.com",
	}); err != nil {
		return err
	}

	f := s.Faker().Faker()
	rows := make([][]any, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, []any{f.Name(), fmt.Sprintf("%d.%s", i, f.Email())})
	}
	return s.BatchInsert(ctx, "users", []string{"name", "email"}, rows)
}

// Posts gives every user id 1..10 two posts. Only the first is published,
// so the published column lands in its own batch.
func Posts(ctx context.Context, s *seeder.TableSeeder) error {
	f := s.Faker().Faker()
	for userID := 1; userID <= 10; userID++ {
		if err := s.Insert(ctx, "posts", seeder.Record{}.
			Set("user_id", userID).
			Set("title", f.Sentence(4)).
			Set("body", f.Paragraph(1, 3, 12, " ")).
			Set("published", true)); err != nil {
			return err
		}
		if err := s.Insert(ctx, "posts", seeder.Record{}.
			Set("user_id", userID).
			Set("title", f.Sentence(4))); err != nil {
			return err
		}
	}
	return nil
}

func Comments(ctx context.Context, s *seeder.TableSeeder) error {
	f := s.Faker().Faker()
	rows := make([][]any, 0, 40)
	for i := 0; i < 40; i++ {
		rows = append(rows, []any{f.Number(1, 20), f.Name(), f.Sentence(8)})
	}
	return s.BatchInsert(ctx, "comments", []string{"post_id", "author", "body"}, rows)
}
