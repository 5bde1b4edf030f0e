package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}
