package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/client/fitness"
	"github.com/sleepdoctor/sleepdoc/internal/config"
	"github.com/sleepdoctor/sleepdoc/internal/consent"
	"github.com/sleepdoctor/sleepdoc/internal/db"
	"github.com/sleepdoctor/sleepdoc/internal/health"
	"github.com/sleepdoctor/sleepdoc/internal/oauth"
	"github.com/sleepdoctor/sleepdoc/internal/paths"
	"github.com/sleepdoctor/sleepdoc/internal/session"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

// app is the wired bridge shared by every command that talks to Google Fit.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	sqlDB   *sql.DB
	tokens  *oauth.DBTokenSource
	flow    *oauth.Flow
	reader  *health.Reader
	gate    *consent.Gate
	channel *bridge.Channel
}

type appOptions struct {
	// logOutput receives structured logs. Defaults to stderr.
	logOutput io.Writer
	// promptOutput receives the consent URL. Defaults to stderr.
	promptOutput io.Writer
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	cfg, err := config.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if opts.logOutput == nil {
		opts.logOutput = os.Stderr
	}
	if opts.promptOutput == nil {
		opts.promptOutput = os.Stderr
	}

	logger := xslog.NewLoggerFromEnv(opts.logOutput, cfg.Env).With(xslog.RunID(session.NewID()))
	slog.SetDefault(logger)

	sqlDB, querier, err := openDB(ctx)
	if err != nil {
		return nil, err
	}

	oauthCfg := oauth.NewConfig(cfg.Google)
	tokens := oauth.NewDBTokenSource(oauthCfg, querier)
	flow := oauth.NewFlow(oauthCfg, querier,
		oauth.WithOutput(opts.promptOutput),
		oauth.WithFlowLogger(logger),
		oauth.WithOnSaved(tokens.Reset),
	)

	fitnessOpts := []fitness.Option{
		fitness.WithTimeout(cfg.Fitness.Timeout),
		fitness.WithLogger(logger),
	}
	if cfg.Fitness.Endpoint != "" {
		fitnessOpts = append(fitnessOpts, fitness.WithEndpoint(cfg.Fitness.Endpoint))
	}

	history, err := fitness.New(ctx, tokens, fitnessOpts...)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	reader := health.NewReader(history, health.WithLogger(logger))
	gate := consent.NewGate(oauth.Scopes, tokens, flow, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		sqlDB:   sqlDB,
		tokens:  tokens,
		flow:    flow,
		reader:  reader,
		gate:    gate,
		channel: bridge.NewChannel(gate, reader, logger),
	}, nil
}

func (a *app) Close() error {
	return a.sqlDB.Close()
}

func openDB(ctx context.Context) (*sql.DB, *db.Queries, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, nil, err
	}

	dbPath, err := paths.DB()
	if err != nil {
		return nil, nil, err
	}

	sqlDB, querier, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return sqlDB, querier, nil
}
