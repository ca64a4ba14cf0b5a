package fitness

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	fitnessapi "google.golang.org/api/fitness/v1"
	"google.golang.org/api/option"

	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

// me addresses the authenticated account.
const me = "me"

// History reads the account's fitness history.
type History interface {
	Aggregate(ctx context.Context, req AggregateRequest) ([]Bucket, error)
	Read(ctx context.Context, req ReadRequest) ([]Dataset, error)
}

var _ History = (*Client)(nil)

type Client struct {
	svc      *fitnessapi.Service
	pageSize int64
	logger   *slog.Logger
}

type clientConfig struct {
	endpoint string
	timeout  time.Duration
	base     http.RoundTripper
	pageSize int64
	logger   *slog.Logger
}

type Option func(*clientConfig)

// WithEndpoint overrides the API base path, e.g. to point at a test server.
func WithEndpoint(endpoint string) Option {
	return func(cfg *clientConfig) { cfg.endpoint = endpoint }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

func WithTransport(base http.RoundTripper) Option {
	return func(cfg *clientConfig) { cfg.base = base }
}

func WithPageSize(n int64) Option {
	return func(cfg *clientConfig) { cfg.pageSize = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func New(ctx context.Context, tokenSource oauth2.TokenSource, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		timeout: 30 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: tokenSource,
			Base:   xhttp.NewTransport(cfg.base),
		},
		Timeout: cfg.timeout,
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.endpoint != "" {
		endpoint := cfg.endpoint
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}

	svc, err := fitnessapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating fitness service: %w", err)
	}

	return &Client{
		svc:      svc,
		pageSize: cfg.pageSize,
		logger:   cfg.logger,
	}, nil
}
