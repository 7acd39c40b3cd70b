// Package app boots the console server and its dependencies.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/trend-ops/trendradar-console/internal/cache"
	"github.com/trend-ops/trendradar-console/internal/config"
	"github.com/trend-ops/trendradar-console/internal/db"
	"github.com/trend-ops/trendradar-console/internal/http/api/console"
	"github.com/trend-ops/trendradar-console/internal/logging"
)

// Options holds command-line inputs for the server.
type Options struct {
	ConfigPath string // Config file path; empty falls back to env then default.
}

// Migrate opens the database and runs migrations, then exits.
func Migrate(_ context.Context, opts Options) error {
	cfg, errLoad := config.Load(config.ResolveConfigPath(opts.ConfigPath))
	if errLoad != nil {
		return errLoad
	}
	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the console API server and blocks until the context is
// cancelled or the listener fails.
func RunServer(ctx context.Context, opts Options) error {
	configPath := config.ResolveConfigPath(opts.ConfigPath)
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}

	exportCache, errCache := cache.New(ctx, cfg.Redis)
	if errCache != nil {
		return errCache
	}
	defer func() {
		if errClose := exportCache.Close(); errClose != nil {
			log.WithError(errClose).Warn("closing export cache")
		}
	}()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	console.RegisterConsoleRoutes(engine, conn, cfg.JWT, exportCache)

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	log.Infof("console listening on %s (config=%s)", cfg.Server.Addr, configPath)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
