package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/directorylabs/user-directory/internal/api/handler"
	"github.com/directorylabs/user-directory/internal/api/middleware"
	"github.com/directorylabs/user-directory/internal/core/service"
	mongodb "github.com/directorylabs/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/directorylabs/user-directory/internal/infrastructure/db/redis"
	"github.com/directorylabs/user-directory/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cacheTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(middleware.Trace())
	e.Use(echoprometheus.NewMiddleware("userdir"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	userCache := redisdb.NewUserCache(rdb)
	resolver := service.NewResolver(userRepo, userCache, cacheTTL, log)
	userService := service.NewUserService(userRepo, resolver, log)
	userHandler := handler.NewUserHandler(userService)

	// --- User routes ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.FindAll)
	e.GET("/users/:idOrName", userHandler.FindOne)
	e.DELETE("/users/:idOrName", userHandler.Delete)

	// --- Role routes ---
	e.GET("/users/:idOrName/roles", userHandler.HasRoles)
	e.PUT("/users/:idOrName/roles/add", userHandler.AddRoles)
	e.PUT("/users/:idOrName/roles/remove", userHandler.RemoveRoles)

	// --- Health probes and metrics (no envelope) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
