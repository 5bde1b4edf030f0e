package postgres

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/model"
	repo "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/repo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresTodoRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostgresTodoRepo(db *gorm.DB) *PostgresTodoRepo {
	return &PostgresTodoRepo{db: db, now: time.Now}
}

func (p *PostgresTodoRepo) WithinTx(ctx context.Context, fn func(tx repo.TodoRepo) error) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresTodoRepo{db: tx, now: p.now})
	})
}

func (p *PostgresTodoRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	t.ID = 0
	t.CreatedAt = p.now().UTC()
	t.UpdatedAt = nil
	if err := p.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Todo{}, customErrors.WrapInternal(err, "CreateTodo")
	}
	return t, nil
}

func (p *PostgresTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	err := p.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("id ASC").
		Find(&todos).Error
	if err != nil {
		return nil, customErrors.WrapInternal(err, "ListTodos")
	}
	return todos, nil
}

// GetForUpdate takes a row lock; dialects without FOR UPDATE (sqlite) drop the clause.
func (p *PostgresTodoRepo) GetForUpdate(ctx context.Context, id int64) (model.Todo, error) {
	var t model.Todo
	res := p.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Todo{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Todo{}, customErrors.WrapInternal(err, "GetTodo")
	}
	return t, nil
}

func (p *PostgresTodoRepo) Update(ctx context.Context, id int64, patch model.TodoPatch) (model.Todo, error) {
	updates := map[string]interface{}{
		"updated_at": p.now().UTC(),
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}

	return p.updateAndReload(ctx, id, updates, "UpdateTodo")
}

// Toggle flips in SQL so the new value never depends on a stale read.
func (p *PostgresTodoRepo) Toggle(ctx context.Context, id int64) (model.Todo, error) {
	updates := map[string]interface{}{
		"completed":  gorm.Expr("NOT completed"),
		"updated_at": p.now().UTC(),
	}
	return p.updateAndReload(ctx, id, updates, "ToggleTodo")
}

func (p *PostgresTodoRepo) Delete(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Delete(&model.Todo{}, id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteTodo")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}

func (p *PostgresTodoRepo) updateAndReload(ctx context.Context, id int64, updates map[string]interface{}, op string) (model.Todo, error) {
	db := p.db.WithContext(ctx)

	res := db.Model(&model.Todo{}).Where("id = ?", id).Updates(updates)
	if err := res.Error; err != nil {
		return model.Todo{}, customErrors.WrapInternal(err, op)
	}
	if res.RowsAffected == 0 {
		return model.Todo{}, customErrors.ErrNotFound
	}

	var t model.Todo
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		return model.Todo{}, customErrors.WrapInternal(err, op)
	}
	return t, nil
}
