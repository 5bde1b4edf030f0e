package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"

	sqliteScheme = "sqlite://"
)

type Database struct {
	Gorm    *gorm.DB
	SQL     *sql.DB
	Dialect Dialect
}

// Open picks the gorm dialector from the DSN: "sqlite://<path>" (":memory:" allowed)
// or anything else handed to the postgres driver as is. Gorm logs through log.
func Open(cfg *config.Config, log *zap.Logger) (*Database, error) {
	dialect, dialector := dialectorFor(cfg.DatabaseURL)

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}

	if dialect == SQLite {
		// один писатель; для :memory: каждое новое соединение видело бы пустую базу
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)
	}

	return &Database{Gorm: gdb, SQL: sqlDB, Dialect: dialect}, nil
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

func dialectorFor(dsn string) (Dialect, gorm.Dialector) {
	if path, ok := SQLitePath(dsn); ok {
		return SQLite, sqlite.Open(path)
	}
	return Postgres, postgres.Open(dsn)
}

// SQLitePath accepts both sqlite://file.db and the sqlite:///./file.db form.
func SQLitePath(dsn string) (string, bool) {
	if !strings.HasPrefix(dsn, sqliteScheme) {
		return "", false
	}
	path := strings.TrimPrefix(strings.TrimPrefix(dsn, sqliteScheme), "/")
	if path == "" {
		path = ":memory:"
	}
	return path, true
}
