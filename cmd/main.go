// Command watchjournal-api starts the media-journal HTTP backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/watchjournal/backend/config"
	"github.com/watchjournal/backend/db"
	authhandler "github.com/watchjournal/backend/internal/auth/handler"
	authrepo "github.com/watchjournal/backend/internal/auth/repository/postgres"
	authservice "github.com/watchjournal/backend/internal/auth/service"
	entryhandler "github.com/watchjournal/backend/internal/entry/handler"
	entryrepo "github.com/watchjournal/backend/internal/entry/repository/postgres"
	entryservice "github.com/watchjournal/backend/internal/entry/service"
	"github.com/watchjournal/backend/internal/migrate"
	"github.com/watchjournal/backend/internal/server"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting", zap.String("env", cfg.Env), zap.String("port", cfg.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DBURL); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	database, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer database.Close()

	authRepo := authrepo.NewRepository(database)
	entryRepo := entryrepo.NewRepository(database)

	tokenService := authservice.NewTokenService(authRepo, cfg.TokenTTLMinutes)
	userService := authservice.NewUserService(authRepo, tokenService)
	entryService := entryservice.NewEntryService(entryRepo)

	app := server.New(cfg, logger, server.Handlers{
		Auth:    authhandler.NewAuthHandler(userService),
		Entries: entryhandler.NewEntryHandler(entryService),
		AuthMW:  authhandler.NewMiddleware(tokenService, authRepo),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, _ := zap.NewProduction()
		return logger
	}
	logger, _ := zap.NewDevelopment()
	return logger
}
