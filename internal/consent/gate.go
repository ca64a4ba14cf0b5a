// Package consent decides whether the account may be read and prompts for the
// Fitness scopes when it may not.
package consent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

var ErrPermissionDenied = errors.New("google fit permission denied")

// PermissionChecker reports whether the stored account holds every scope in scopes.
type PermissionChecker interface {
	HasPermissions(ctx context.Context, scopes []string) (bool, error)
}

// Launcher starts an interactive consent prompt for scopes. The returned future
// resolves with nil once the user grants them.
type Launcher interface {
	Launch(ctx context.Context, scopes []string) (*Future, error)
}

type Gate struct {
	scopes   []string
	checker  PermissionChecker
	launcher Launcher
	logger   *slog.Logger
}

func NewGate(scopes []string, checker PermissionChecker, launcher Launcher, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		scopes:   scopes,
		checker:  checker,
		launcher: launcher,
		logger:   logger,
	}
}

func (g *Gate) Scopes() []string {
	return g.scopes
}

// Authorize returns nil when the account already holds every scope and otherwise
// prompts for consent and waits for the answer. A refused or failed prompt yields
// ErrPermissionDenied.
func (g *Gate) Authorize(ctx context.Context) error {
	ok, err := g.checker.HasPermissions(ctx, g.scopes)
	if err != nil {
		return fmt.Errorf("checking permissions: %w", err)
	}
	if ok {
		return nil
	}

	g.logger.InfoContext(ctx, "requesting fitness permissions", xslog.Scopes(g.scopes))

	future, err := g.launcher.Launch(ctx, g.scopes)
	if err != nil {
		return fmt.Errorf("launching consent: %w", err)
	}

	if err := future.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		g.logger.WarnContext(ctx, "fitness permissions refused", xslog.Error(err))
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	g.logger.InfoContext(ctx, "fitness permissions granted")
	return nil
}
