package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-tracker/internal/config"
	"github.com/iliyamo/task-tracker/internal/database"
	"github.com/iliyamo/task-tracker/internal/handler"
	"github.com/iliyamo/task-tracker/internal/middleware"
	"github.com/iliyamo/task-tracker/internal/queue"
	"github.com/iliyamo/task-tracker/internal/repository"
	"github.com/iliyamo/task-tracker/internal/router"
	"github.com/iliyamo/task-tracker/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema init failed: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db)
	seq := repository.NewSequenceRepo(db)

	authSvc := service.NewAuthService(cfg, users, seq)
	taskSvc := service.NewTaskService(tasks, seq, queue.Publisher{})

	invalidator := middleware.CacheInvalidator{RDB: rdb, Prefix: cacheCfg.Prefix}
	authHandler := handler.NewAuthHandler(authSvc)
	taskHandler := handler.NewTaskHandler(taskSvc, authSvc, invalidator)

	// Background consumer mirrors task events into logs/tasks.log.
	go queue.StartTaskConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, rlCfg, rdb)
	router.RegisterTasks(e, taskHandler, cfg.JWTSecret, cacheCfg, rlCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
