package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sanketnagtilak/mern-project/config"
	"github.com/sanketnagtilak/mern-project/handlers"
	"github.com/sanketnagtilak/mern-project/middleware"
	"github.com/sanketnagtilak/mern-project/repository"
	"github.com/sanketnagtilak/mern-project/routes"
	"github.com/sanketnagtilak/mern-project/services"
	"github.com/sanketnagtilak/mern-project/utils"
	"github.com/sanketnagtilak/mern-project/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	client, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	if err := config.EnsureIndexes(context.Background(), db, cfg); err != nil {
		log.Fatalf("indexes: %v", err)
	}

	health := map[string]func(context.Context) error{
		"mongo": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	var cache services.ListingCache
	if cfg.RedisAddr != "" {
		redisCache := utils.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL())
		defer redisCache.Close()
		cache = redisCache
		health["redis"] = redisCache.Ping
		log.Printf("Caching listing searches in Redis at %s", cfg.RedisAddr)
	}

	images, err := repository.NewImageRepository(db)
	if err != nil {
		log.Fatalf("images: %v", err)
	}

	tokens := services.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.JWTExpiry()}
	agentSvc := services.NewAgentService(repository.NewAgentRepository(db.Collection(cfg.AgentsCollection)), tokens)
	userSvc := services.NewUserService(repository.NewUserRepository(db.Collection(cfg.UsersCollection)), tokens)
	listingSvc := services.NewListingService(
		repository.NewListingRepository(db.Collection(cfg.ListingsCollection)),
		agentSvc,
		images,
		repository.NewMongoTxRunner(client, cfg.MongoTransactions),
		cache,
	)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = utils.NewRequestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	routes.RegisterRoutes(e, routes.Controllers{
		Listings: handlers.NewListingController(listingSvc),
		Users:    handlers.NewUserController(userSvc, listingSvc, cfg.CookieSecure, cfg.JWTExpiry()),
		Agents:   handlers.NewAgentController(agentSvc),
		Health:   health,
	}, middleware.JWTMiddleware(cfg.JWTSecret))

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
