// Package backend is the HTTP client for the school backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-console-gateway/internal/dto"
	appErrors "github.com/noah-isme/sma-console-gateway/pkg/errors"
)

const maxErrorBody = 64 << 10

// Observer receives timing for every upstream call.
type Observer interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
	Observer   Observer
	// OnUnauthorized runs whenever the backend answers 401.
	OnUnauthorized func(ctx context.Context)
}

// Client talks to the school backend. The bearer token travels in the
// request context, see WithToken.
type Client struct {
	baseURL        string
	http           *http.Client
	stream         *http.Client
	logger         *zap.Logger
	observer       Observer
	onUnauthorized func(ctx context.Context)
}

// New builds a Client.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	// Streams live as long as their context, so they must not inherit the
	// per-request timeout.
	streamClient := &http.Client{Transport: httpClient.Transport}

	return &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		http:           httpClient,
		stream:         streamClient,
		logger:         logger,
		observer:       opts.Observer,
		onUnauthorized: opts.OnUnauthorized,
	}
}

type ctxKey int

const (
	tokenKey ctxKey = iota
	requestIDKey
)

// WithToken returns a context that authenticates backend calls with token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom extracts the bearer token carried by ctx.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// WithRequestID forwards a request id to the backend as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func (c *Client) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build backend request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id, _ := ctx.Value(requestIDKey).(string); id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	return req, nil
}

// send executes req and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, op string, req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		c.logger.Warn("backend unreachable", zap.String("operation", op), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrBackendUnreachable.Code, appErrors.ErrBackendUnreachable.Status, appErrors.MessageBackendUnreachable)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.observe(op, resp.StatusCode, start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(ctx, op, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrBackendUnreachable.Code, appErrors.ErrBackendUnreachable.Status, appErrors.MessageBackendUnreachable)
	}
	return body, nil
}

func (c *Client) statusError(ctx context.Context, op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}

	appErr := appErrors.FromBackendStatus(resp.StatusCode, env.Message)
	appErr.Err = fmt.Errorf("%s: upstream status %d", op, resp.StatusCode)
	c.logger.Debug("backend request failed",
		zap.String("operation", op),
		zap.Int("status", resp.StatusCode),
		zap.String("code", appErr.Code),
	)
	return appErr
}

func (c *Client) observe(op string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(op, status, time.Since(start))
	}
}

// call sends a JSON request and unwraps the response envelope into T.
func call[T any](ctx context.Context, c *Client, op, method, path string, payload interface{}) (T, error) {
	var zero T

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return zero, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode backend payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, body, "application/json")
	if err != nil {
		return zero, err
	}

	raw, err := c.send(ctx, op, req)
	if err != nil {
		return zero, err
	}
	return unwrap[T](op, raw)
}

func unwrap[T any](op string, raw []byte) (T, error) {
	var zero T
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return zero, appErrors.Clone(appErrors.ErrBackendFailure, appErrors.MessageEmptyResponse)
	}

	var env dto.Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, appErrors.Wrap(fmt.Errorf("%s: %w", op, err), appErrors.ErrMapping.Code, appErrors.ErrMapping.Status, appErrors.ErrMapping.Message)
	}
	if !env.Succeeded() {
		msg := env.Message
		if msg == "" {
			msg = "Request failed."
		}
		return zero, appErrors.Clone(appErrors.ErrBackendFailure, msg)
	}
	return env.Data, nil
}

// exec is call for endpoints whose data payload carries nothing useful.
func (c *Client) exec(ctx context.Context, op, method, path string, payload interface{}) error {
	_, err := call[json.RawMessage](ctx, c, op, method, path, payload)
	return err
}
