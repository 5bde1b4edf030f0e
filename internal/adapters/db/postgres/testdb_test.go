package postgres

import (
	"testing"

	authModel "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
	todoModel "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// every new connection to :memory: would see an empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&authModel.User{}, &todoModel.Todo{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
