package apperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	go_json "github.com/goccy/go-json"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		wantStatus     int
		wantBody       errorResponse
		wantRetryAfter string
	}{
		{
			name:       "bad request",
			err:        BadRequest("invalid_call", "malformed method call", errors.New("eof")),
			wantStatus: http.StatusBadRequest,
			wantBody:   errorResponse{Error: "invalid_call", Message: "malformed method call"},
		},
		{
			name:       "plain error becomes internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   errorResponse{Error: "internal_error", Message: "an unexpected error occurred"},
		},
		{
			name:           "rate limited",
			err:            TooManyRequests("rate_limited", "too many requests", 0, "ip_rate_limit"),
			wantStatus:     http.StatusTooManyRequests,
			wantBody:       errorResponse{Error: "rate_limited", Message: "too many requests"},
			wantRetryAfter: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var got errorResponse
			if err := go_json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			if got := rec.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}
		})
	}
}
