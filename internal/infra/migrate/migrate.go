package migrate

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/db"
	migrationsFS "github.com/Miraines/MoonyAndStarry/todo-service/scripts/db/migrations"
)

// Up applies all pending migrations for the given dialect using the provided database handle.
func Up(sqlDB *sql.DB, dialect db.Dialect) error {
	var (
		driver database.Driver
		err    error
	)
	switch dialect {
	case db.Postgres:
		driver, err = postgres.WithInstance(sqlDB, &postgres.Config{})
		if err == nil {
			// отпускаем выделенное драйвером соединение; сам *sql.DB не закрывается
			defer driver.Close()
		}
	case db.SQLite:
		// Close у sqlite3-драйвера закрыл бы весь *sql.DB, поэтому не вызываем
		driver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS.FS, string(dialect))
	if err != nil {
		return err
	}
	defer source.Close()

	m, err := migrate.NewWithInstance("iofs", source, string(dialect), driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
