package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var MigrationFiles embed.FS

// Latest is the highest migration version shipped in MigrationFiles.
const Latest = 2

// RunMigrations brings the timesheet schema (work_intervals, daily_totals, rollup_checkpoints)
// up to date. If autoMigrate is false, it only logs the current version.
func RunMigrations(db *sql.DB, autoMigrate bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		if err := recoverDirty(m, version); err != nil {
			return err
		}
	}

	if !autoMigrate {
		slog.Info("[Migrations] Auto-migration disabled, schema left as is",
			"current_version", version,
			"latest_version", Latest,
			"dirty", dirty,
		)
		return nil
	}

	slog.Info("[Migrations] Applying pending migrations",
		"current_version", version,
		"latest_version", Latest,
	)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("[Migrations] Schema is up to date", "version", version)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get updated migration version: %w", err)
	}
	slog.Info("[Migrations] Schema migrated", "from_version", version, "to_version", newVersion)
	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(MigrationFiles, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// recoverDirty forces the version back to the last completed step so Up re-applies the
// interrupted one. Every up script uses IF NOT EXISTS and can be re-run.
func recoverDirty(m *migrate.Migrate, version uint) error {
	target := dirtyRecoveryTarget(version)
	slog.Warn("[Migrations] Schema is dirty, a migration was interrupted",
		"version", version,
		"forcing_to", target,
	)
	if err := m.Force(target); err != nil {
		return fmt.Errorf("failed to recover dirty migration state at version %d: %w", version, err)
	}
	return nil
}

// dirtyRecoveryTarget returns the version to force for a dirty version; -1 means no version.
func dirtyRecoveryTarget(version uint) int {
	if version <= 1 {
		return -1
	}
	return int(version) - 1
}
