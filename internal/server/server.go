package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sleepdoctor/sleepdoc/internal/storage"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp/middleware"
)

type Config struct {
	Addr    string
	Logger  *slog.Logger
	Limiter storage.RateLimiter
	// BaseContext is the parent of every request context. Defaults to context.Background.
	BaseContext func(net.Listener) context.Context
}

// Routes builds the bridge API: channel calls are rate limited per client IP,
// the health check is not.
func Routes(h *Handler, cfg Config) http.Handler {
	mux := http.NewServeMux()

	callMux := http.NewServeMux()
	callMux.HandleFunc("POST /channels/{channel...}", h.HandleCall)
	var calls http.Handler = callMux
	if cfg.Limiter != nil {
		calls = middleware.Chain(callMux, middleware.RateLimit(cfg.Limiter))
	}
	mux.Handle("/channels/", calls)

	mux.HandleFunc("GET /health", HandleHealth)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Logging,
		middleware.SecurityHeaders,
	)
}

func New(h *Handler, cfg Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Routes(h, cfg),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// calls can wait on a consent prompt for minutes
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		BaseContext:  cfg.BaseContext,
	}
}
