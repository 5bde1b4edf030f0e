package db

import (
	"testing"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSQLitePath(t *testing.T) {
	cases := map[string]string{
		"sqlite://:memory:":         ":memory:",
		"sqlite://":                 ":memory:",
		"sqlite://todo.db":          "todo.db",
		"sqlite:///./todo_app.db":   "./todo_app.db",
		"sqlite:////var/lib/app.db": "/var/lib/app.db",
	}
	for dsn, want := range cases {
		got, ok := SQLitePath(dsn)
		require.True(t, ok, dsn)
		require.Equal(t, want, got, dsn)
	}

	for _, dsn := range []string{
		"postgres://u:p@localhost:5432/todo?sslmode=disable",
		"host=localhost user=u dbname=todo",
	} {
		_, ok := SQLitePath(dsn)
		require.False(t, ok, dsn)
	}
}

func TestOpen_SQLiteMemory(t *testing.T) {
	d, err := Open(&config.Config{DatabaseURL: "sqlite://:memory:"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.Equal(t, SQLite, d.Dialect)
	require.NoError(t, d.SQL.Ping())
	require.Equal(t, 1, d.SQL.Stats().MaxOpenConnections)
}
