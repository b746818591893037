package migration

import (
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const migrationsDir = "migrations/postgres"

//go:embed migrations/postgres/*.sql
var embeddedMigrations embed.FS

// Source returns the embedded postgres migrations
func Source() (fs.FS, error) {
	return fs.Sub(embeddedMigrations, migrationsDir)
}

// RunMigrations applies every pending postgres migration.
// The handle stays open, it is shared with the caller.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return ierr.NewError("migration database handle is required").
			Mark(ierr.ErrInvalidOperation)
	}

	sub, err := Source()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to open embedded migrations").
			Mark(ierr.ErrSystem)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create migration source").
			Mark(ierr.ErrSystem)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create migration driver").
			Mark(ierr.ErrDatabase)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create migrator").
			Mark(ierr.ErrDatabase)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return ierr.WithError(err).
			WithHint("Failed to apply migrations").
			Mark(ierr.ErrDatabase)
	}

	return nil
}
