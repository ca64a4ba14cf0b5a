package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/sleepdoctor/sleepdoc/internal/consent"
	"github.com/sleepdoctor/sleepdoc/internal/db"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

const (
	callbackPath = "/callback"
	shutdownTime = 5 * time.Second
)

var _ consent.Launcher = (*Flow)(nil)

// Flow runs the browser consent prompt against a loopback callback listener and
// stores the resulting token.
type Flow struct {
	config  *oauth2.Config
	querier db.Querier
	open    func(url string) error
	out     io.Writer
	logger  *slog.Logger
	// onSaved runs after a new token is stored.
	onSaved func()
}

type FlowOption func(*Flow)

// WithBrowser replaces the function that opens the consent URL.
func WithBrowser(open func(url string) error) FlowOption {
	return func(f *Flow) { f.open = open }
}

// WithOutput sets where the consent URL is printed for manual use.
func WithOutput(w io.Writer) FlowOption {
	return func(f *Flow) { f.out = w }
}

func WithFlowLogger(logger *slog.Logger) FlowOption {
	return func(f *Flow) { f.logger = logger }
}

func WithOnSaved(fn func()) FlowOption {
	return func(f *Flow) { f.onSaved = fn }
}

func NewFlow(config *oauth2.Config, querier db.Querier, opts ...FlowOption) *Flow {
	f := &Flow{
		config:  config,
		querier: querier,
		open:    openBrowser,
		out:     os.Stderr,
		logger:  slog.Default(),
		onSaved: func() {},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run prompts for the configured scopes and blocks until the user answers.
func (f *Flow) Run(ctx context.Context) error {
	future, err := f.Launch(ctx, f.config.Scopes)
	if err != nil {
		return err
	}
	return future.Wait(ctx)
}

type tokenResult struct {
	token *oauth2.Token
	err   error
}

type callbackHandler func(w http.ResponseWriter, r *http.Request) (*oauth2.Token, error)

// Launch opens the consent prompt and returns immediately. The future resolves
// once the callback arrives and its token is stored, or when ctx ends.
func (f *Flow) Launch(ctx context.Context, scopes []string) (*consent.Future, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to start listener: %w", err)
	}

	cfg := *f.config
	cfg.Scopes = scopes
	cfg.RedirectURL = "http://" + listener.Addr().String() + callbackPath

	state := GenerateState()
	verifier := oauth2.GenerateVerifier()

	resultCh := make(chan tokenResult, 1)
	server := startCallbackServer(listener, exchangeHandler(&cfg, state, verifier), resultCh)

	url := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam(ParamPrompt, "consent"),
	)

	_, _ = fmt.Fprintf(f.out, "Opening browser for authorization...\n")
	_, _ = fmt.Fprintf(f.out, "If the browser doesn't open, visit:\n%s\n\n", url)

	if err := f.open(url); err != nil {
		f.logger.WarnContext(ctx, "failed to open browser", xslog.Error(err))
	}

	future := consent.NewFuture()
	go func() {
		future.Resolve(f.await(ctx, server, resultCh))
	}()

	return future, nil
}

func (f *Flow) await(ctx context.Context, server *http.Server, resultCh <-chan tokenResult) error {
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTime)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			f.logger.Warn("failed to shutdown callback server", xslog.Error(err))
		}
	}()

	select {
	case result := <-resultCh:
		if result.err != nil {
			return result.err
		}
		if err := saveToken(ctx, f.querier, result.token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		f.onSaved()
		f.logger.InfoContext(ctx, "stored fitness token", xslog.Scopes(strings.Fields(grantedScope(result.token))))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func exchangeHandler(cfg *oauth2.Config, state string, verifier string) callbackHandler {
	return func(w http.ResponseWriter, r *http.Request) (*oauth2.Token, error) {
		query := r.URL.Query()

		if !ValidateState(state, query.Get(ParamState)) {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return nil, ErrInvalidState
		}

		if errParam := query.Get(ParamError); errParam != "" {
			errDesc := query.Get(ParamErrorDescription)
			http.Error(w, fmt.Sprintf("OAuth error: %s %s", errParam, errDesc), http.StatusBadRequest)
			if ErrorCode(errParam) == ErrorCodeAccessDenied {
				return nil, ErrAccessDenied
			}
			return nil, fmt.Errorf("oauth error: %s - %s", errParam, errDesc)
		}

		code := query.Get(ParamCode)
		if code == "" {
			http.Error(w, "Missing authorization code", http.StatusBadRequest)
			return nil, errors.New("missing authorization code")
		}

		token, err := cfg.Exchange(r.Context(), code, oauth2.VerifierOption(verifier))
		if err != nil {
			http.Error(w, "Failed to exchange authorization code", http.StatusInternalServerError)
			return nil, fmt.Errorf("failed to exchange code: %w", err)
		}

		return token, nil
	}
}

func startCallbackServer(listener net.Listener, handler callbackHandler, resultCh chan<- tokenResult) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		token, err := handler(w, r)
		if err == nil {
			writeSuccessHTML(w)
		}
		// only the first callback counts
		select {
		case resultCh <- tokenResult{token: token, err: err}:
		default:
		}
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case resultCh <- tokenResult{err: fmt.Errorf("server error: %w", err)}:
			default:
			}
		}
	}()

	return server
}

func writeSuccessHTML(w http.ResponseWriter) {
	xhttp.SetHeaderContentTypeTextHTML(w)
	_, _ = fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>Authorization Successful</title></head>
<body>
<h1>Authorization Successful</h1>
<p>Sleep Doctor can now read your Google Fit data. You can close this window.</p>
</body>
</html>`)
}
