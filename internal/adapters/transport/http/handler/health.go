package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "Todo API"

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *zap.Logger
	now func() time.Time
}

func NewHealthHandler(db Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log, now: time.Now}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Todo Web Application API"})
}

// Check always answers 200; a failed ping only downgrades the status to degraded.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	connected := true
	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("health: database ping failed", zap.Error(err))
		connected = false
	}

	status := "healthy"
	if !connected {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             status,
		"service":            serviceName,
		"database_connected": connected,
		"timestamp":          h.now().UTC().Format(time.RFC3339Nano),
	})
}
