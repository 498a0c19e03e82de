// Package migrate creates the tracker tables and indexes on startup. There
// is no schema versioning; everything is IF NOT EXISTS.
package migrate

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/fitlog/fitlog/internal/tracker/exercises"
	"github.com/fitlog/fitlog/internal/tracker/users"
)

// CreateTables creates the users and exercises tables
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []interface{}{
		(*users.UserSchema)(nil),
		(*exercises.ExerciseSchema)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates the supporting indexes
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	for _, indexSQL := range exercises.Indexes {
		_, err := db.ExecContext(ctx, indexSQL)
		if err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}

	return nil
}
