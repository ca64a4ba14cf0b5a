package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sleepdoctor/sleepdoc/internal/config"
	xredis "github.com/sleepdoctor/sleepdoc/internal/redis"
	"github.com/sleepdoctor/sleepdoc/internal/server"
	"github.com/sleepdoctor/sleepdoc/internal/storage"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

const (
	keyPort        = "port"
	keyBackend     = "rate_limit_backend"
	keyGracePeriod = "grace_period"
	keyMethods     = "methods"

	callGracePeriod = 2 * time.Second
	shutdownTimeout = 30 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the bridge channel over HTTP",
		Long:  "Accepts method calls at POST /channels/{channel} and answers with the reply envelope.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	logger := a.logger

	backend, err := initBackend(ctx, a.cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize rate limit backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close backend", xslog.Error(err))
		}
	}()

	shutdownCoordinator := server.NewShutdownCoordinator(callGracePeriod)

	httpServer := server.New(server.NewHandler(a.channel), server.Config{
		Addr:    ":" + a.cfg.Bridge.Port,
		Logger:  logger,
		Limiter: backend,
		BaseContext: func(net.Listener) context.Context {
			return xslog.WithLogger(shutdownCoordinator.BaseContext(), logger)
		},
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			xslog.Channel(a.channel.Name()),
			slog.Any(keyMethods, a.channel.Methods()),
			slog.String(keyPort, a.cfg.Bridge.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

		// cancel in-flight calls, including any parked on a consent prompt
		shutdownCoordinator.InitiateShutdown()
		logger.InfoContext(ctx, "call grace period complete, shutting down server",
			slog.Duration(keyGracePeriod, callGracePeriod))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.InfoContext(ctx, "server stopped")
		return nil
	})

	return g.Wait()
}

func initBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.Backend, error) {
	if !cfg.Redis.Enabled() {
		logger.InfoContext(ctx, "using in-memory rate limiting", slog.String(keyBackend, "memory"))
		return storage.NewMemoryBackend(cfg.RateLimit.Limit, cfg.RateLimit.Burst), nil
	}

	client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL})
	if err != nil {
		return nil, err
	}

	backend := storage.NewRedisBackend(client, int(cfg.RateLimit.Limit))
	if err := backend.Ping(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	logger.InfoContext(ctx, "using redis rate limiting", slog.String(keyBackend, "redis"))
	return backend, nil
}
