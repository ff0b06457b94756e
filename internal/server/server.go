// Package server boots the storefront: configuration, database, cache,
// storage, catalogue, listeners, and the HTTP stack.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/lumina/app/catalog"
	"github.com/shashiranjanraj/lumina/app/listeners"
	"github.com/shashiranjanraj/lumina/app/routes"
	"github.com/shashiranjanraj/lumina/config"
	"github.com/shashiranjanraj/lumina/pkg/cache"
	"github.com/shashiranjanraj/lumina/pkg/database"
	"github.com/shashiranjanraj/lumina/pkg/logger"
	"github.com/shashiranjanraj/lumina/pkg/metrics"
	"github.com/shashiranjanraj/lumina/pkg/middleware"
	"github.com/shashiranjanraj/lumina/pkg/reqid"
	"github.com/shashiranjanraj/lumina/pkg/router"
	"github.com/shashiranjanraj/lumina/pkg/storage"
)

// Start boots everything and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if _, err := logger.ConnectMongoSink(); err != nil {
		logger.Warn("server: mongo log sink disabled", "error", err)
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, cache disabled", "error", err)
	}
	storage.Connect()

	cat := catalog.NewService(database.DB)
	if err := cat.Load(); err != nil {
		return err
	}

	listeners.Register(database.DB)

	r := router.New()
	r.Use(
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
	)
	routes.RegisterAPI(r, cat)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
