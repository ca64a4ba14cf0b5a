package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/health"
	"github.com/sleepdoctor/sleepdoc/internal/storage"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

type allowGate struct{}

func (allowGate) Authorize(context.Context) error { return nil }

type fixedReader struct{}

func (fixedReader) Sleep(context.Context) ([]health.SleepSegment, error) {
	return []health.SleepSegment{{Type: "Deep sleep", StartTime: 1000, EndTime: 2000}}, nil
}

func (fixedReader) Body(context.Context) ([]health.Measurement, error) {
	return nil, &health.ReadError{Code: health.CodeBodyReadError, Message: "Failed to read height data: offline"}
}

func newTestServer(t *testing.T, limiter storage.RateLimiter) *httptest.Server {
	t.Helper()
	ch := bridge.NewChannel(allowGate{}, fixedReader{}, nil)
	srv := httptest.NewServer(Routes(NewHandler(ch), Config{Limiter: limiter}))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url string, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST %s error = %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestHandleCall(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	channelURL := srv.URL + "/channels/" + bridge.ChannelName

	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success envelope",
			url:        channelURL,
			body:       `{"method":"getSleepData","args":null}`,
			wantStatus: http.StatusOK,
			wantBody:   `[[{"endTime":2000,"startTime":1000,"type":"Deep sleep"}]]`,
		},
		{
			name:       "error envelope",
			url:        channelURL,
			body:       `{"method":"getBodyData"}`,
			wantStatus: http.StatusOK,
			wantBody:   `["BODY_READ_ERROR","Failed to read height data: offline",null]`,
		},
		{
			name:       "not implemented",
			url:        channelURL,
			body:       `{"method":"getSteps"}`,
			wantStatus: http.StatusNoContent,
			wantBody:   ``,
		},
		{
			name:       "malformed call",
			url:        channelURL,
			body:       `{"args":1}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"malformed_call","message":"request body is not a method call"}` + "\n",
		},
		{
			name:       "unknown channel",
			url:        srv.URL + "/channels/com.example/other",
			body:       `{"method":"getSleepData"}`,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"unknown_channel","message":"no channel named com.example/other"}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp, body := post(t, tt.url, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if diff := cmp.Diff(tt.wantBody, body); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			if resp.Header.Get(xhttp.XRequestID) == "" {
				t.Error("response has no request id")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	b, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(b), `"status":"ok"`) {
		t.Errorf("body = %s, want status ok", b)
	}
}

func TestCallsAreRateLimited(t *testing.T) {
	t.Parallel()

	limiter := storage.NewMemoryBackend(1, 1)
	t.Cleanup(func() { _ = limiter.Close() })

	srv := newTestServer(t, limiter)
	channelURL := srv.URL + "/channels/" + bridge.ChannelName

	if resp, _ := post(t, channelURL, `{"method":"getSleepData"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("first call status = %d, want 200", resp.StatusCode)
	}

	resp, _ := post(t, channelURL, `{"method":"getSleepData"}`)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("second call status = %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("429 without Retry-After")
	}

	// health stays reachable
	hresp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	_ = hresp.Body.Close()
	if hresp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", hresp.StatusCode)
	}
}

func TestShutdownCoordinatorCancelsBaseContext(t *testing.T) {
	t.Parallel()

	sc := NewShutdownCoordinator(time.Millisecond)
	sc.InitiateShutdown()

	select {
	case <-sc.BaseContext().Done():
	default:
		t.Error("BaseContext() not cancelled after InitiateShutdown")
	}
}
