package sqlite

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/registrar/internal/registrar/store/drivers/sqlite/migrations"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// ApplyMigrations brings the schema up to the newest embedded migration.
// The default program catalog ships as a migration, so a database that is
// already current is left untouched.
func (m *Store) ApplyMigrations() error {
	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return fmt.Errorf("sqlite: open embedded migrations: %w", err)
	}
	defer src.Close()

	target, err := sqlitemigrate.WithInstance(m.db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("sqlite: migration driver: %w", err)
	}

	runner, err := migrate.NewWithInstance("iofs", src, "sqlite", target)
	if err != nil {
		return fmt.Errorf("sqlite: migrator: %w", err)
	}

	if err := runner.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		version, dirty, _ := runner.Version()
		return fmt.Errorf("sqlite: migrate up (at version %d, dirty=%t): %w", version, dirty, err)
	}
	return nil
}
