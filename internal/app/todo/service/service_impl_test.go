package service_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	authsvc "github.com/Miraines/MoonyAndStarry/todo-service/internal/app/auth/service"
	todosvc "github.com/Miraines/MoonyAndStarry/todo-service/internal/app/todo/service"
	authErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	authModel "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/model"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/repo"
	"github.com/stretchr/testify/require"
)

/* ──────────────────────────────── stubs ──────────────────────────────── */

type todoRepoStub struct {
	mu     *sync.Mutex
	todos  map[int64]model.Todo
	nextID *int64
	inTx   bool
}

func newTodoRepoStub() *todoRepoStub {
	var id int64
	return &todoRepoStub{mu: &sync.Mutex{}, todos: map[int64]model.Todo{}, nextID: &id}
}

func (r *todoRepoStub) Create(_ context.Context, t model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*r.nextID++
	t.ID = *r.nextID
	t.CreatedAt = time.Now()
	r.todos[t.ID] = t
	return t, nil
}

func (r *todoRepoStub) ListByOwner(_ context.Context, ownerID int64) ([]model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Todo
	for _, t := range r.todos {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *todoRepoStub) GetForUpdate(_ context.Context, id int64) (model.Todo, error) {
	if !r.inTx {
		return model.Todo{}, errors.New("GetForUpdate outside transaction")
	}
	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, authErrors.ErrNotFound
	}
	return t, nil
}

func (r *todoRepoStub) Update(_ context.Context, id int64, patch model.TodoPatch) (model.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, authErrors.ErrNotFound
	}
	patch.Apply(&t)
	now := time.Now()
	t.UpdatedAt = &now
	r.todos[id] = t
	return t, nil
}

func (r *todoRepoStub) Toggle(_ context.Context, id int64) (model.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return model.Todo{}, authErrors.ErrNotFound
	}
	t.Completed = !t.Completed
	now := time.Now()
	t.UpdatedAt = &now
	r.todos[id] = t
	return t, nil
}

func (r *todoRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return authErrors.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

// WithinTx serializes callers on the shared mutex, like a row lock held until commit.
func (r *todoRepoStub) WithinTx(_ context.Context, fn func(tx repo.TodoRepo) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx := *r
	tx.inTx = true
	return fn(&tx)
}

/* ───────────────────────────── helpers ───────────────────────────── */

var (
	alice = authModel.Identity{UserID: 1, Email: "alice@example.com"}
	bob   = authModel.Identity{UserID: 2, Email: "bob@example.com"}
)

func newSvc() (todosvc.Service, *todoRepoStub) {
	r := newTodoRepoStub()
	return todosvc.New(r, authsvc.NewValidator()), r
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

/* ───────────────────────────── tests ───────────────────────────── */

func TestTodoService_CreateList(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk"})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.Equal(t, alice.UserID, created.UserID)
	require.False(t, created.Completed)
	require.Nil(t, created.Description)

	_, err = svc.Create(ctx, bob, dto.CreateTodoDTO{Title: "bob's"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "walk dog", Description: strPtr("park"), Completed: true})
	require.NoError(t, err)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, int64(1), list[0].ID)
	require.Equal(t, int64(3), list[1].ID)
	require.True(t, list[1].Completed)
}

func TestTodoService_CreateBlankTitle(t *testing.T) {
	svc, r := newSvc()
	for _, title := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), alice, dto.CreateTodoDTO{Title: title})
		require.True(t, authErrors.IsInvalidArgument(err))
	}
	require.Empty(t, r.todos)
}

func TestTodoService_PartialUpdate(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk", Description: strPtr("2 litres")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, alice, created.ID, dto.UpdateTodoDTO{Completed: boolPtr(true)})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "buy milk", updated.Title)
	require.Equal(t, "2 litres", *updated.Description)
	require.NotNil(t, updated.UpdatedAt)

	updated, err = svc.Update(ctx, alice, created.ID, dto.UpdateTodoDTO{Title: strPtr("buy oat milk")})
	require.NoError(t, err)
	require.Equal(t, "buy oat milk", updated.Title)
	require.True(t, updated.Completed)
	require.Equal(t, "2 litres", *updated.Description)
}

func TestTodoService_UpdateBlankTitle(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, alice, created.ID, dto.UpdateTodoDTO{Title: strPtr(" ")})
	require.True(t, authErrors.IsInvalidArgument(err))
}

func TestTodoService_OwnershipEnforced(t *testing.T) {
	svc, r := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, created.ID, dto.UpdateTodoDTO{Title: strPtr("hacked")})
	require.True(t, authErrors.IsForbidden(err))
	_, err = svc.Toggle(ctx, bob, created.ID)
	require.True(t, authErrors.IsForbidden(err))
	err = svc.Delete(ctx, bob, created.ID)
	require.True(t, authErrors.IsForbidden(err))

	require.Equal(t, "buy milk", r.todos[created.ID].Title)
	require.False(t, r.todos[created.ID].Completed)

	_, err = svc.Update(ctx, alice, created.ID, dto.UpdateTodoDTO{Title: strPtr("buy bread")})
	require.NoError(t, err)
	_, err = svc.Toggle(ctx, alice, created.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, alice, created.ID))
}

func TestTodoService_NotFoundBeforeForbidden(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	_, err := svc.Update(ctx, bob, 42, dto.UpdateTodoDTO{Title: strPtr("x")})
	require.True(t, authErrors.IsNotFound(err))
	_, err = svc.Toggle(ctx, bob, 42)
	require.True(t, authErrors.IsNotFound(err))
	require.True(t, authErrors.IsNotFound(svc.Delete(ctx, bob, 42)))
}

func TestTodoService_Toggle(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk"})
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, alice, created.ID)
	require.NoError(t, err)
	require.True(t, toggled.Completed)

	toggled, err = svc.Toggle(ctx, alice, created.ID)
	require.NoError(t, err)
	require.False(t, toggled.Completed)
}

func TestTodoService_ConcurrentToggles(t *testing.T) {
	svc, r := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk"})
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Toggle(ctx, alice, created.ID)
		}()
	}
	wg.Wait()

	// an even number of serialized flips lands back where it started
	require.False(t, r.todos[created.ID].Completed)
}

func TestTodoService_DeleteIsPermanent(t *testing.T) {
	svc, _ := newSvc()
	ctx := context.Background()

	created, err := svc.Create(ctx, alice, dto.CreateTodoDTO{Title: "buy milk"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, alice, created.ID))
	require.True(t, authErrors.IsNotFound(svc.Delete(ctx, alice, created.ID)))

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, list)
}
