package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/model"
)

type TodoRepo interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)

	ListByOwner(ctx context.Context, ownerID int64) ([]model.Todo, error)

	// GetForUpdate loads a todo and, inside WithinTx, locks its row until commit.
	GetForUpdate(ctx context.Context, id int64) (model.Todo, error)

	Update(ctx context.Context, id int64, patch model.TodoPatch) (model.Todo, error)

	Toggle(ctx context.Context, id int64) (model.Todo, error)

	Delete(ctx context.Context, id int64) error

	WithinTx(ctx context.Context, fn func(tx TodoRepo) error) error
}
