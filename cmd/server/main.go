package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/arnavshah/campfinder-api/pkg/config"
	"github.com/arnavshah/campfinder-api/pkg/database"
	"github.com/arnavshah/campfinder-api/pkg/handlers"
	"github.com/arnavshah/campfinder-api/pkg/logging"
	"github.com/arnavshah/campfinder-api/pkg/savedset"
	"github.com/gin-gonic/gin"
)

func main() {
	// Try root and parent directories for flexibility
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}

	h := &handlers.Handler{
		Catalog: database.NewStore(db),
		Tokens:  savedset.NewCodec(cfg.SavedSetSecret, cfg.SavedSetTTL),
		Log:     logger,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(h),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("could not run server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
