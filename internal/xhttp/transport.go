package xhttp

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sleepdoctor/sleepdoc/internal/version"
)

type sleepdocTransport struct {
	base http.RoundTripper
}

var _ http.RoundTripper = (*sleepdocTransport)(nil)

func (t *sleepdocTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(version.Header, version.Get())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

// NewTransport wraps base (http.DefaultTransport when nil) with standard sleepdoc headers.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &sleepdocTransport{base: base}
}

type ClientOption func(*http.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *http.Client) { c.Timeout = d }
}

func NewHTTPClient(opts ...ClientOption) *http.Client {
	c := &http.Client{Transport: NewTransport(nil)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
