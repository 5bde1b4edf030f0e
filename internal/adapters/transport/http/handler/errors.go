package handler

import (
	"net/http"
	"strings"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/middleware"
	authErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	"github.com/gin-gonic/gin"
)

const (
	msgInvalidEmail       = "Invalid email format"
	msgWeakPassword       = "Password must be at least 8 characters long"
	msgUserExists         = "User with this email already exists"
	msgBadCredentials     = "Incorrect email or password"
	msgInvalidToken       = "Could not validate credentials"
	msgForbidden          = "Not authorized to access this todo"
	msgTodoNotFound       = "Todo not found"
	msgTooManyAttempts    = "Too many failed login attempts, try again later"
	msgInternal           = "Internal server error"
	msgInvalidTodoID      = "Invalid todo id"
	msgTodoDeleted        = "Todo deleted successfully"
	msgInvalidBody        = "Invalid request body"
	invalidArgumentPrefix = "invalid argument: "
)

// handleError maps domain errors to a status and a {"detail"} body.
// Anything unrecognised is a 500; the cause goes to c.Errors for the request logger.
func handleError(c *gin.Context, err error) {
	switch {
	case authErrors.IsInvalidEmail(err):
		abort(c, http.StatusBadRequest, msgInvalidEmail)
	case authErrors.IsWeakPassword(err):
		abort(c, http.StatusBadRequest, msgWeakPassword)
	case authErrors.IsInvalidArgument(err):
		abort(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), invalidArgumentPrefix))
	case authErrors.IsAlreadyExists(err):
		abort(c, http.StatusConflict, msgUserExists)
	case authErrors.IsInvalidCredentials(err):
		middleware.Unauthorized(c, msgBadCredentials)
	case authErrors.IsInvalidToken(err):
		middleware.Unauthorized(c, msgInvalidToken)
	case authErrors.IsForbidden(err):
		abort(c, http.StatusForbidden, msgForbidden)
	case authErrors.IsNotFound(err):
		abort(c, http.StatusNotFound, msgTodoNotFound)
	case authErrors.IsTooManyAttempts(err):
		abort(c, http.StatusTooManyRequests, msgTooManyAttempts)
	default:
		_ = c.Error(err)
		abort(c, http.StatusInternalServerError, msgInternal)
	}
}

func abort(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: detail})
}
