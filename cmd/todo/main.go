package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	myPostgresRepo "github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/db/postgres"
	myRedisRepo "github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/db/redis"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/handler"
	httpmw "github.com/Miraines/MoonyAndStarry/todo-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/app/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/app/auth/password"
	appsvc "github.com/Miraines/MoonyAndStarry/todo-service/internal/app/auth/service"
	todosvc "github.com/Miraines/MoonyAndStarry/todo-service/internal/app/todo/service"
	authRepo "github.com/Miraines/MoonyAndStarry/todo-service/internal/domain/auth/repo"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/db"
	lg "github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/log"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/migrate"
	"github.com/Miraines/MoonyAndStarry/todo-service/internal/infra/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		lg.Must("", false).Fatal("failed to load config", zap.Error(err))
	}

	zapLog, err := lg.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		lg.Must("", false).Fatal("failed to build logger", zap.Error(err))
	}
	defer zapLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.Open(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()
	if err := migrate.Up(database.SQL, database.Dialect); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	var attempts authRepo.LoginAttemptRepo
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		attempts = myRedisRepo.NewRedisLoginAttemptRepo(redisCli)
	} else {
		zapLog.Warn("REDIS_ADDRESS is not set, login throttling disabled")
	}

	hasher, err := password.NewHasher(password.DefaultParams, cfg.PasswordPepper)
	if err != nil {
		zapLog.Fatal("failed to init password hasher", zap.Error(err))
	}
	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}
	validate := appsvc.NewValidator()

	userRepo := myPostgresRepo.NewPostgresUserRepo(database.Gorm)
	todoRepo := myPostgresRepo.NewPostgresTodoRepo(database.Gorm)
	authSvc := appsvc.New(userRepo, attempts, jwtUtil, hasher, cfg, validate, zapLog)
	todoSvc := todosvc.New(todoRepo, validate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := handler.NewEngine(ctx, cfg, zapLog, registry)
	if err != nil {
		zapLog.Fatal("failed to build router", zap.Error(err))
	}
	handler.Setup(router, handler.Handlers{
		Auth:   handler.NewAuthHandler(authSvc, zapLog),
		Todo:   handler.NewTodoHandler(todoSvc),
		Health: handler.NewHealthHandler(database.SQL, zapLog),
	}, httpmw.BearerAuth(authSvc, zapLog), registry)

	if err := server.StartHTTPServer(ctx, cfg, router, zapLog); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
