package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/task-tracker/internal/config"
	"github.com/iliyamo/task-tracker/internal/handler"
	"github.com/iliyamo/task-tracker/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, used by
// load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints. Register, login and
// refresh are open (refresh authenticates itself via the bearer refresh
// token) and are rate-limited per client IP; /me requires a valid access
// token and is limited with the configured strategy. The limiter on the /me
// group runs after JWTAuth so its bucket key carries the verified subject.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	open := middleware.NewTokenBucket(rlCfg.ForIP(), rdb)
	e.POST("/register", a.Register, open)
	e.POST("/login", a.Login, open)
	e.POST("/refresh", a.Refresh, open)

	me := e.Group("")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.NewTokenBucket(rlCfg, rdb))
	me.GET("/me", a.Me)
}

// RegisterTasks registers the task CRUD endpoints. All of them sit behind
// the access-token middleware; the rate limiter is attached after it so
// subject-based key strategies see the verified subject rather than lumping
// every caller into one anonymous bucket. Reads additionally go through the
// per-user response cache.
func RegisterTasks(e *echo.Echo, t *handler.TaskHandler, jwtSecret string, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.NewTokenBucket(rlCfg, rdb))

	g.POST("/create-task", t.CreateTask)
	g.GET("/get-task", t.GetTask, middleware.NewRedisCache(cacheCfg, rdb))
	g.PATCH("/update-task/:task_id", t.UpdateTask)
	g.DELETE("/delete-task/:task_id", t.DeleteTask)
}
