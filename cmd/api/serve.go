package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/skill-assessment-api/internal/auth"
	"github.com/redmonkez12/skill-assessment-api/internal/config"
	"github.com/redmonkez12/skill-assessment-api/internal/database"
	httpServer "github.com/redmonkez12/skill-assessment-api/internal/http"
	"github.com/redmonkez12/skill-assessment-api/internal/logging"
	"github.com/redmonkez12/skill-assessment-api/internal/metrics"
	"github.com/redmonkez12/skill-assessment-api/internal/profile"
	"github.com/redmonkez12/skill-assessment-api/internal/ratelimit"
	"github.com/redmonkez12/skill-assessment-api/internal/results"
	"github.com/redmonkez12/skill-assessment-api/internal/storage"
	"github.com/redmonkez12/skill-assessment-api/internal/user"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = port
	}

	logger := newLogger(cfg)
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"store", cfg.Database.Driver,
		"storage", cfg.Storage.Driver,
		"token_format", cfg.Auth.TokenFormat,
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	users, closeStore, err := initStore(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer closeStore()

	rateLimiter, closeLimiter, err := initRateLimiter(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize rate limiter: %w", err)
	}
	defer closeLimiter()

	tokenService, err := initTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	blobs, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	m := metrics.New()

	authService := auth.NewService(users, tokenService, m, logger, cfg.Auth.TokenDuration)
	profileService := profile.NewService(users, blobs, m, logger)
	recorder := results.NewRecorder(users, m)

	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:    auth.NewHandler(authService, rateLimiter),
		Profile: profile.NewHandler(profileService, cfg.Storage.MaxUploadSize),
		Results: results.NewHandler(recorder),
	}, auth.NewMiddleware(tokenService), m, logger)

	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	if cfg.Log.File == "" {
		return logging.NewLogger(cfg.Server.IsDevelopment())
	}
	return logging.NewFileLogger(cfg.Server.IsDevelopment(), logging.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
}

// initStore returns the user store selected by cfg.Driver and a func that releases it.
func initStore(ctx context.Context, cfg config.DatabaseConfig, logger *logging.Logger) (user.Store, func(), error) {
	if cfg.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		return user.NewMemoryStore(), func() {}, nil
	}

	sqlDB, err := database.Open(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		logger.Info("database migrations applied")
	}

	db := database.NewBunDB(sqlDB)
	return user.NewRepository(db), func() { db.Close() }, nil
}

// initRateLimiter prefers Redis so limits hold across instances and falls back
// to a per-process limiter.
func initRateLimiter(ctx context.Context, cfg *config.Config, logger *logging.Logger) (auth.RateLimiter, func(), error) {
	if !cfg.Redis.Enabled {
		limiter := ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		go limiter.Run(ctx)
		return limiter, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	logger.Info("redis rate limiter enabled", "addr", cfg.Redis.Address())

	return ratelimit.NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window), func() { client.Close() }, nil
}

func initTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatJWT:
		return auth.NewJWTService(cfg.JWTSecret)
	default:
		return auth.NewPasetoService(cfg.PasetoKey)
	}
}
