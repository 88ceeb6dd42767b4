package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ashiato/app/echo-server/router"
	"ashiato/business/follow"
	"ashiato/business/recommendation"
	"ashiato/business/spot"
	userService "ashiato/business/user"
	"ashiato/internal/middleware"
	"ashiato/internal/repository/notification"
	"ashiato/internal/repository/pagemeta"
	psqlRepo "ashiato/internal/repository/postgres"
	redisRepo "ashiato/internal/repository/redis"
	"ashiato/internal/rest"
	"ashiato/pkg/config"
	"ashiato/pkg/database"
	redisdb "ashiato/pkg/database/redis"
	"ashiato/pkg/logger"
	"ashiato/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Ashiato", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		_ = redisdb.CloseRedisClient(redisClient)
	}()

	metrics.Init()

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	spotRepo := psqlRepo.NewSpotRepository(db)
	followRepo := psqlRepo.NewFollowRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	prefsRepo := psqlRepo.NewPreferencesRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)
	pageMetaRepo := pagemeta.NewRepository()

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	spotService := spot.NewService(spotRepo, pageMetaRepo)
	followService := follow.NewService(followRepo, userRepo)
	recoService := recommendation.NewService(spotRepo, followRepo, interactionRepo, prefsRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	spotHandler := rest.NewSpotHandler(spotService)
	followHandler := rest.NewFollowHandler(followService)
	recoHandler := rest.NewRecommendationHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware backed by the Redis session store
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupSpotRoutes(api, spotHandler, authRequired)
	router.SetupFollowRoutes(api, followHandler, authRequired)
	router.SetupRecommendationRoutes(api, recoHandler, authRequired)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
