package migration

import (
	"context"

	"cv-builder/internal/logger"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations are applied in order on every startup.
var Migrations = []Migration{
	{
		Name: "create_cvs",
		SQL: `
		CREATE TABLE IF NOT EXISTS cvs (
			id UUID PRIMARY KEY,
			owner_id TEXT NOT NULL DEFAULT 'anonymous',
			name TEXT NOT NULL,
			data JSONB NOT NULL DEFAULT '{}'::jsonb,
			template TEXT NOT NULL DEFAULT 'modern',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	},
	{
		Name: "index_cvs_owner_created",
		SQL:  `CREATE INDEX IF NOT EXISTS cvs_owner_created_idx ON cvs (owner_id, created_at DESC);`,
	},
}

// RunMigrations executes all migrations against pool, stopping at the first failure.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	logger.Info().Msg("starting database migrations")

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			logger.Error().Err(err).Str("name", m.Name).Msg("migration failed")
			return err
		}
		logger.Info().Str("name", m.Name).Msg("migration completed")
	}

	logger.Info().Msg("all migrations completed successfully")
	return nil
}
