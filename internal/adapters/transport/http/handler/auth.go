package handler

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/dto"
	appsvc "github.com/Miraines/MoonyAndStarry/todo-service/internal/app/auth/service"
	lg "github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/log"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc appsvc.Service
	log *zap.Logger
}

func NewAuthHandler(svc appsvc.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	h.log.Info("/auth/signup", lg.HashedEmail(body.Email))

	user, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{ID: user.ID, Email: user.Email})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		abort(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	h.log.Info("/auth/login", lg.HashedEmail(body.Email))

	token, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int64(token.ExpiresIn.Seconds()),
	})
}
