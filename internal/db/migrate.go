package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/happythoughts/apiserver/config"
)

//go:embed migrations/*.json
var migrationsFS embed.FS

const migrationsCollection = "schema_migrations"

// MigrateUp applies all pending migrations.
func MigrateUp(ctx context.Context, cfg config.Config) error {
	return runMigrations(ctx, cfg, func(m *migrate.Migrate) error {
		return m.Up()
	})
}

// MigrateDown rolls back every applied migration.
func MigrateDown(ctx context.Context, cfg config.Config) error {
	return runMigrations(ctx, cfg, func(m *migrate.Migrate) error {
		return m.Down()
	})
}

// runMigrations uses its own client: closing the migrator disconnects it.
func runMigrations(ctx context.Context, cfg config.Config, apply func(*migrate.Migrate) error) error {
	client, err := Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}

	driver, err := mongodb.WithInstance(client, &mongodb.Config{
		DatabaseName:         cfg.Database.DBName,
		MigrationsCollection: migrationsCollection,
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("init migration driver failed: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("init migration source failed: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "mongodb", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := apply(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("migrate failed: %w", err)
	}
	return nil
}
