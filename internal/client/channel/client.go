// Package channel calls a bridge channel served by `sleepdoc serve`.
package channel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/sleepdoctor/sleepdoc/internal/bridge"
	"github.com/sleepdoctor/sleepdoc/internal/xhttp"
)

// calls may sit on a consent prompt, so the default is generous
const defaultTimeout = 5 * time.Minute

const maxReplyBytes = 4 << 20

// HTTPError is a non-envelope response from the server.
type HTTPError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Code, e.Message, e.StatusCode)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	name       string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

// WithChannel targets a channel other than the health data channel.
func WithChannel(name string) Option {
	return func(client *Client) { client.name = name }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: xhttp.NewHTTPClient(xhttp.WithTimeout(defaultTimeout)),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		name:       bridge.ChannelName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return c.name
}

// Do sends call and decodes the reply envelope.
func (c *Client) Do(ctx context.Context, call bridge.Call) (bridge.Reply, error) {
	body, err := bridge.EncodeCall(call)
	if err != nil {
		return bridge.Reply{}, fmt.Errorf("failed to encode call: %w", err)
	}

	endpoint := c.baseURL + "/channels/" + c.name
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return bridge.Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(xhttp.ContentType, "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bridge.Reply{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplyBytes))
	if err != nil {
		return bridge.Reply{}, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		reply, err := bridge.DecodeReply(data)
		if err != nil {
			return bridge.Reply{}, fmt.Errorf("failed to decode reply: %w", err)
		}
		return reply, nil
	default:
		return bridge.Reply{}, parseHTTPError(resp.StatusCode, data)
	}
}

// Invoke resolves result with the remote reply. Transport failures resolve it
// with UNAVAILABLE.
func (c *Client) Invoke(ctx context.Context, call bridge.Call, result bridge.Result) {
	reply, err := c.Do(ctx, call)
	if err != nil {
		result.Error(bridge.CodeUnavailable, err.Error(), nil)
		return
	}

	switch reply.Outcome {
	case bridge.OutcomeSuccess:
		result.Success(reply.Value)
	case bridge.OutcomeError:
		result.Error(reply.Code, reply.Message, reply.Details)
	default:
		result.NotImplemented()
	}
}

func parseHTTPError(status int, data []byte) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	httpErr := &HTTPError{StatusCode: status}
	if err := go_json.Unmarshal(data, &body); err == nil {
		httpErr.Code = body.Error
		httpErr.Message = body.Message
	}
	return httpErr
}
