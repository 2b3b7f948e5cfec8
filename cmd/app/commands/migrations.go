package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/allisson/pantoken/internal/config"
	"github.com/allisson/pantoken/internal/database"
)

// migrationsDir maps a configured driver to its directory under migrations/.
var migrationsDir = map[string]string{
	config.DriverSQLite:   "sqlite3",
	config.DriverPostgres: "postgresql",
	config.DriverMySQL:    "mysql",
}

// RunMigrations applies every pending migration for driver. The connection string is
// the same one the server uses, so no separate migrate URL is needed.
// The memory driver has nothing to migrate.
func RunMigrations(logger *slog.Logger, driver, connectionString string) error {
	return runMigrations(logger, "migrations", driver, connectionString)
}

func runMigrations(logger *slog.Logger, migrationsRoot, driver, connectionString string) error {
	if driver == config.DriverMemory {
		logger.Info("memory driver selected, no migrations to run")
		return nil
	}

	dir, ok := migrationsDir[driver]
	if !ok {
		return fmt.Errorf("failed to create migrate instance: unsupported driver %q", driver)
	}

	logger.Info("running database migrations", slog.String("driver", driver))

	db, err := database.Connect(database.Config{
		Driver:             driver,
		ConnectionString:   connectionString,
		MaxOpenConnections: 1,
		MaxIdleConnections: 1,
		ConnMaxLifetime:    time.Minute,
	})
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	var instance migratedb.Driver
	switch driver {
	case config.DriverSQLite:
		instance, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	case config.DriverPostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	case config.DriverMySQL:
		instance, err = mysql.WithInstance(db, &mysql.Config{})
	}
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s/%s", migrationsRoot, dir), driver, instance)
	if err != nil {
		_ = instance.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer closeMigrate(m, logger)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("migrations completed successfully")
	return nil
}
