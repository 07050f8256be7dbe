package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"carshare/database"
	"carshare/internal/config"
	"carshare/internal/httpapi/handler"
	"carshare/internal/httpapi/middleware"
	"carshare/internal/httpapi/models"
	"carshare/internal/httpapi/repository"
	"carshare/internal/httpapi/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if cfg.SeedCatalog {
		if err := database.SeedCatalog(db, logger); err != nil {
			log.Fatalf("could not seed catalog: %v", err)
		}
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	ownershipRepo := repository.NewOwnershipRepository(db)
	carStore := repository.NewStore[models.Car](db)
	brandStore := repository.NewStore[models.CarBrand](db)
	modelStore := repository.NewStore[models.CarModel](db)

	// Services
	revocations := service.NewRedisRevocationStore(redisClient, cfg.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, revocations, cfg)
	ownershipService := service.NewOwnershipService(ownershipRepo, userRepo)
	carService := service.NewCarService(db, carStore, ownershipRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	carHandler := handler.NewCarHandler(carService, ownershipService)
	catalogHandler := handler.NewCatalogHandler(brandStore, modelStore)

	// Middleware
	authed := middleware.AuthMiddleware(authService)
	limited := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst).Middleware()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authHandler.RegisterRoutes(api.Group("/auth"), limited, authed)
	catalogHandler.RegisterRoutes(api)
	carHandler.RegisterRoutes(api.Group("/cars", authed))

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
