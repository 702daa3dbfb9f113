package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/storefront/internal/database"
)

// RunMigrations applies every pending migration under dir for the configured driver,
// or reverts the last rollback migrations when rollback is positive. Migrations live
// in dir/postgresql or dir/mysql. Having nothing to apply is not an error.
func RunMigrations(logger *slog.Logger, dir, driver, connectionString string, rollback int) error {
	if rollback < 0 {
		return fmt.Errorf("rollback must not be negative, got %d", rollback)
	}

	logger.Info("running database migrations",
		slog.String("driver", driver),
		slog.Int("rollback", rollback),
	)

	sourceURL, databaseURL, err := migrationURLs(dir, driver, connectionString)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if rollback > 0 {
		err = m.Steps(-rollback)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}

// migrationURLs maps the driver to its migration folder and the connection string to the
// URL form golang-migrate expects. MySQL DSNs ("user:pass@tcp(host)/db") get a mysql:// scheme.
func migrationURLs(dir, driver, connectionString string) (string, string, error) {
	switch driver {
	case database.DriverPostgres:
		return "file://" + filepath.Join(dir, "postgresql"), connectionString, nil
	case database.DriverMySQL:
		databaseURL := connectionString
		if !strings.HasPrefix(databaseURL, "mysql://") {
			databaseURL = "mysql://" + databaseURL
		}
		return "file://" + filepath.Join(dir, "mysql"), databaseURL, nil
	default:
		return "", "", database.CheckDriver(driver)
	}
}
