package service

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/app/auth/access"
	customErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	authModel "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/model"
	repo "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/repo"
	"github.com/go-playground/validator/v10"
)

type Service interface {
	Create(ctx context.Context, identity authModel.Identity, in dto.CreateTodoDTO) (model.Todo, error)
	List(ctx context.Context, identity authModel.Identity) ([]model.Todo, error)
	Update(ctx context.Context, identity authModel.Identity, id int64, in dto.UpdateTodoDTO) (model.Todo, error)
	Delete(ctx context.Context, identity authModel.Identity, id int64) error
	Toggle(ctx context.Context, identity authModel.Identity, id int64) (model.Todo, error)
}

type todoService struct {
	todoRepo repo.TodoRepo
	v        *validator.Validate
}

func New(tr repo.TodoRepo, v *validator.Validate) Service {
	return &todoService{todoRepo: tr, v: v}
}

func (s *todoService) Create(ctx context.Context, identity authModel.Identity, in dto.CreateTodoDTO) (model.Todo, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Todo{}, customErrors.NewInvalidArgument("title must not be empty")
	}

	return s.todoRepo.Create(ctx, model.Todo{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		UserID:      identity.UserID,
	})
}

func (s *todoService) List(ctx context.Context, identity authModel.Identity) ([]model.Todo, error) {
	return s.todoRepo.ListByOwner(ctx, identity.UserID)
}

func (s *todoService) Update(ctx context.Context, identity authModel.Identity, id int64, in dto.UpdateTodoDTO) (model.Todo, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Todo{}, customErrors.NewInvalidArgument("title must not be empty")
	}

	patch := model.TodoPatch{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	}

	var updated model.Todo
	err := s.owned(ctx, identity, id, func(tx repo.TodoRepo) (err error) {
		updated, err = tx.Update(ctx, id, patch)
		return err
	})
	return updated, err
}

func (s *todoService) Delete(ctx context.Context, identity authModel.Identity, id int64) error {
	return s.owned(ctx, identity, id, func(tx repo.TodoRepo) error {
		return tx.Delete(ctx, id)
	})
}

func (s *todoService) Toggle(ctx context.Context, identity authModel.Identity, id int64) (model.Todo, error) {
	var toggled model.Todo
	err := s.owned(ctx, identity, id, func(tx repo.TodoRepo) (err error) {
		toggled, err = tx.Toggle(ctx, id)
		return err
	})
	return toggled, err
}

// owned runs fn in one transaction after the todo is locked, found (404) and owned (403).
func (s *todoService) owned(ctx context.Context, identity authModel.Identity, id int64, fn func(tx repo.TodoRepo) error) error {
	return s.todoRepo.WithinTx(ctx, func(tx repo.TodoRepo) error {
		current, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := access.Check(identity, current.UserID); err != nil {
			return err
		}
		return fn(tx)
	})
}
