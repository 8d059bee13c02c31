package repositories

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// RunMigrations applies every pending migration under migrationPath.
func RunMigrations(databaseURL, migrationPath string, zl *zap.Logger) error {
	m, err := migrate.New(fmt.Sprintf("file://%s", migrationPath), databaseURL)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	zl.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
