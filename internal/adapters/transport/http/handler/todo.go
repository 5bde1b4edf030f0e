package handler

import (
	"net/http"
	"strconv"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/middleware"
	todosvc "github.com/Miraines/MoonyAndStarry/todo-service/internal/app/todo/service"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
	todoModel "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/todo/model"
	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	svc todosvc.Service
}

func NewTodoHandler(svc todosvc.Service) *TodoHandler {
	return &TodoHandler{svc: svc}
}

func (h *TodoHandler) Create(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	var body dto.CreateTodoDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	todo, err := h.svc.Create(c.Request.Context(), identity, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) List(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}

	todos, err := h.svc.List(c.Request.Context(), identity)
	if err != nil {
		handleError(c, err)
		return
	}
	out := make([]dto.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func (h *TodoHandler) Update(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}
	var body dto.UpdateTodoDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	todo, err := h.svc.Update(c.Request.Context(), identity, id, body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(todo))
}

func (h *TodoHandler) Delete(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), identity, id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgTodoDeleted})
}

func (h *TodoHandler) Toggle(c *gin.Context) {
	identity, ok := callerIdentity(c)
	if !ok {
		return
	}
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.svc.Toggle(c.Request.Context(), identity, id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTodoResponse(todo))
}

func callerIdentity(c *gin.Context) (model.Identity, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		middleware.Unauthorized(c, msgInvalidToken)
	}
	return id, ok
}

func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abort(c, http.StatusBadRequest, msgInvalidTodoID)
		return 0, false
	}
	return id, true
}

func toTodoResponse(t todoModel.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
