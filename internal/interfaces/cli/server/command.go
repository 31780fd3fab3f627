package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	authapp "github.com/joshuahale/portfolio-backend/internal/application/auth"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/cache"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/config"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/database"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/migration"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/repository"
	"github.com/joshuahale/portfolio-backend/internal/infrastructure/scheduler"
	httpRouter "github.com/joshuahale/portfolio-backend/internal/interfaces/http"
	"github.com/joshuahale/portfolio-backend/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the portfolio backend HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	ginMode := mapEnvToGinMode(env)

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = ginMode

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if autoMigrate {
		if err := migration.Run(database.Get()); err != nil {
			logger.Fatal("migration failed", "error", err)
		}
		logger.Info("database migrations applied")
	}

	// Redis is only used for rate limiting; the server runs without it.
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	log := logger.NewLogger()

	router, err := httpRouter.NewRouter(database.Get(), redisClient, cfg, log)
	if err != nil {
		logger.Fatal("failed to build router", "error", err)
	}
	router.SetupRoutes()

	schedulerManager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		logger.Fatal("failed to create scheduler", "error", err)
	}

	sessionRepo := repository.NewSessionRepository(database.Get())
	userRepo := repository.NewUserRepository(database.Get())
	sessionTTL := time.Duration(cfg.Auth.Session.TTLDays) * 24 * time.Hour
	sessionService := authapp.NewSessionService(sessionRepo, userRepo, sessionTTL, log.Named("session"))

	purgeInterval := time.Duration(cfg.Auth.Session.PurgeIntervalHours) * time.Hour
	if err := schedulerManager.RegisterSessionPurgeJob(authapp.NewSessionPurgeJob(sessionService), purgeInterval); err != nil {
		logger.Fatal("failed to register session purge job", "error", err)
	}
	schedulerManager.Start()
	defer func() {
		if err := schedulerManager.Stop(); err != nil {
			logger.Error("failed to stop scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
