package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Every SQL file under migrations/ ships inside the binary. Each file holds
// the up statements, then the tern separator, then the down statements.
//
//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable records the applied migration version.
const VersionTable = "schema_version"

// Migrate brings the schema at dsn up to the latest embedded migration.
func Migrate(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	return withMigrator(ctx, dsn, func(m *tern.Migrator) error {
		from, err := m.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("retrieving current database migration version: %w", err)
		}

		if err := m.Migrate(ctx); err != nil {
			return err
		}

		if from == int32(len(m.Migrations)) {
			logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
		} else {
			logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
		}
		return nil
	})
}

// Reset runs every down migration, then every up migration, leaving an empty
// schema at the latest version. Existing rows are lost.
func Reset(ctx context.Context, logger *zerolog.Logger, dsn string) error {
	return withMigrator(ctx, dsn, func(m *tern.Migrator) error {
		if err := m.MigrateTo(ctx, 0); err != nil {
			return fmt.Errorf("dropping database schema: %w", err)
		}
		if err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("recreating database schema: %w", err)
		}

		logger.Info().Msgf("database schema reset, version %d", len(m.Migrations))
		return nil
	})
}

// withMigrator opens a single connection, loads the embedded migrations and
// hands the migrator to fn.
func withMigrator(ctx context.Context, dsn string, fn func(m *tern.Migrator) error) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, VersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	return fn(m)
}
