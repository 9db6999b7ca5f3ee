package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/application"
	"github.com/gosafe-transit/service-routes/internal/auth"
	"github.com/gosafe-transit/service-routes/internal/client"
	"github.com/gosafe-transit/service-routes/internal/config"
	"github.com/gosafe-transit/service-routes/internal/database"
	"github.com/gosafe-transit/service-routes/internal/events"
	"github.com/gosafe-transit/service-routes/internal/handler"
	"github.com/gosafe-transit/service-routes/internal/logger"
	"github.com/gosafe-transit/service-routes/internal/middleware"
	"github.com/gosafe-transit/service-routes/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-routes")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-routes",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.ContactModel{},
			&repository.HistoryModel{},
			&repository.SavedRouteModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize Kafka producer
	kafkaProducer := events.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize upstream clients
	nominatim := client.NewNominatimClient(
		cfg.Upstream.NominatimBaseURL,
		cfg.Upstream.UserAgent,
		cfg.Upstream.CountryCode,
		log,
	)
	osrm := client.NewOSRMClient(cfg.Upstream.OSRMBaseURL, cfg.Upstream.UserAgent, log)
	overpass := client.NewOverpassClient(cfg.Upstream.OverpassEndpoint, cfg.Upstream.UserAgent, log)

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	contactRepo := repository.NewGormContactRepository(db)
	historyRepo := repository.NewGormHistoryRepository(db)
	savedRepo := repository.NewGormSavedRouteRepository(db)

	// Initialize application services
	routeService := application.NewRouteService(nominatim, osrm, overpass, kafkaProducer, log)
	userService := application.NewUserService(userRepo, jwtManager, log)
	contactService := application.NewContactService(contactRepo, log)
	tripService := application.NewTripService(historyRepo, savedRepo, log)

	// Initialize HTTP handlers
	routeHandler := handler.NewRouteHandler(routeService, tripService)
	authHandler := handler.NewAuthHandler(userService, tripService)
	contactHandler := handler.NewContactHandler(contactService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register routes
	routeHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	authHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	contactHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-routes...")

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-routes stopped")
}
