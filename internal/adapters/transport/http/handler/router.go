package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const rateLimitCacheSize = 10_000

type Handlers struct {
	Auth   *AuthHandler
	Todo   *TodoHandler
	Health *HealthHandler
}

// NewEngine builds a gin engine with the global middleware chain. The rate
// limiter's cleanup loop lives until ctx is done. Forwarded-for headers are
// honoured only from cfg.TrustedProxies; with none configured the client IP
// is the socket peer.
func NewEngine(ctx context.Context, cfg *config.Config, log *zap.Logger, reg prometheus.Registerer) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.NewHTTPMetrics(reg).Handler())
	if cfg.RateLimitRPS > 0 {
		router.Use(middleware.NewHTTPRateLimitPerIP(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, rateLimitCacheSize, time.Hour))
	}

	// без списка origin браузерные cross-origin запросы просто не разрешаются
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{
				"Origin", "Content-Type", "Accept",
				"Authorization",
				"X-Requested-With",
				middleware.RequestIDHeader,
			},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	return router, nil
}

// Setup registers every route; bearer guards the /todos group.
func Setup(router *gin.Engine, h Handlers, bearer gin.HandlerFunc, gatherer prometheus.Gatherer) {
	router.GET("/", h.Health.Root)
	router.GET("/health", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
	}

	todos := router.Group("/todos", bearer)
	{
		todos.POST("/", h.Todo.Create)
		todos.GET("/", h.Todo.List)
		todos.PUT("/:id", h.Todo.Update)
		todos.DELETE("/:id", h.Todo.Delete)
		todos.PATCH("/:id/toggle", h.Todo.Toggle)
	}

	router.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, "Not Found")
	})
}
