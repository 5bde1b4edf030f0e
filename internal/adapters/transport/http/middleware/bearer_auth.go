package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	authErrors "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdentityKey = "identity"

	msgNotAuthenticated  = "Not authenticated"
	msgInvalidCredential = "Could not validate credentials"
)

type Identifier interface {
	Identify(ctx context.Context, accessToken string) (model.Identity, error)
}

// BearerAuth resolves the Authorization header into an Identity stored under IdentityKey.
func BearerAuth(identifier Identifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			Unauthorized(c, msgNotAuthenticated)
			return
		}

		identity, err := identifier.Identify(c.Request.Context(), token)
		if err != nil {
			switch {
			case authErrors.IsTokenExpired(err):
				log.Info("bearer rejected", zap.String("reason", "expired"))
			case authErrors.IsInvalidToken(err):
				log.Info("bearer rejected", zap.String("reason", "invalid"))
			default:
				log.Error("identify bearer", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
				return
			}
			Unauthorized(c, msgInvalidCredential)
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity BearerAuth stored on the context.
func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}

func Unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Detail: detail})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
