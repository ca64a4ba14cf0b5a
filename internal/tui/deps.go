package tui

import (
	"context"
	"log/slog"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/consent"
)

// Invoker is the bridge channel the viewer reads through.
type Invoker interface {
	Invoke(ctx context.Context, call bridge.Call, result bridge.Result)
}

type Deps struct {
	Ctx         context.Context
	Logger      *slog.Logger
	Channel     Invoker
	Permissions consent.PermissionChecker
	Scopes      []string
}
