package apperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
	"github.com/sleepdoctor/sleepdoc/internal/xslog"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	if rlErr := AsRateLimitError(err); rlErr != nil {
		writeRateLimitError(w, rlErr)
		return
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal("internal_error", "an unexpected error occurred", err)
	}

	logError(ctx, appErr)

	xhttp.WriteJSON(w, appErr.StatusCode, errorResponse{
		Error:   appErr.Code,
		Message: appErr.Message,
	})
}

func writeRateLimitError(w http.ResponseWriter, err *RateLimitError) {
	xhttp.SetHeaderRetryAfter(w, err.RetryAfter)
	if err.Reason != "" {
		w.Header().Set(xhttp.XRateLimitReason, err.Reason)
	}
	xhttp.WriteJSON(w, http.StatusTooManyRequests, errorResponse{
		Error:   err.Code,
		Message: err.Message,
	})
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		xslog.Code(err.Code),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}

	if err.StatusCode >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "server error", attrs...)
		return
	}
	logger.WarnContext(ctx, "client error", attrs...)
}
