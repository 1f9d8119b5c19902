// Package api is the HTTP client for the marketplace JSON API. It backs
// the auth and order stores used by the wizard flows.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/zoe5466/Gudiee-sub001/logging"
	"github.com/zoe5466/Gudiee-sub001/types"
)

const defaultTimeout = 15 * time.Second

// Error is a non-success response. Its message comes from the envelope's
// error field and is shown to the user.
type Error struct {
	Status  int
	Path    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s returned status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Path, e.Status, e.Message)
}

// UserMessage returns the server-provided message.
func (e *Error) UserMessage() string { return e.Message }

// Client talks to the marketplace API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
	user  *types.User
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = logging.Fallback(l) }
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Token returns the current bearer token, set by WithToken, Register or
// Login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// User returns the user from the last Register or Login, or nil.
func (c *Client) User() *types.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

func (c *Client) setAuth(res *types.AuthResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = res.Token
	u := res.User
	c.user = &u
}

// Register creates an account and keeps its token for later requests.
func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.User, error) {
	res, err := do[types.AuthResult](ctx, c, http.MethodPost, "/api/auth/register", req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	c.setAuth(&res)
	return &res.User, nil
}

// Login authenticates and keeps the token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (*types.User, error) {
	res, err := do[types.AuthResult](ctx, c, http.MethodPost, "/api/auth/login", types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	c.setAuth(&res)
	return &res.User, nil
}

// UpdateUser updates the profile of req.ID.
func (c *Client) UpdateUser(ctx context.Context, req types.UpdateUserRequest) error {
	if req.ID == "" {
		return fmt.Errorf("update user: id is required")
	}
	if _, err := do[types.User](ctx, c, http.MethodPut, "/api/users/"+url.PathEscape(req.ID), req); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// GetService fetches one service.
func (c *Client) GetService(ctx context.Context, id string) (*types.Service, error) {
	svc, err := do[types.Service](ctx, c, http.MethodGet, "/api/services/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get service %s: %w", id, err)
	}
	return &svc, nil
}

// ListServices fetches the catalog.
func (c *Client) ListServices(ctx context.Context) ([]types.Service, error) {
	svcs, err := do[[]types.Service](ctx, c, http.MethodGet, "/api/services", nil)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return svcs, nil
}

// CreateOrder posts a new order.
func (c *Client) CreateOrder(ctx context.Context, req types.CreateOrderRequest) (*types.Order, error) {
	o, err := do[types.Order](ctx, c, http.MethodPost, "/api/orders", req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &o, nil
}

// Pay pays for an order.
func (c *Client) Pay(ctx context.Context, orderID string, req types.PaymentRequest) (*types.Order, error) {
	o, err := do[types.Order](ctx, c, http.MethodPost, "/api/orders/"+url.PathEscape(orderID)+"/payment", req)
	if err != nil {
		return nil, fmt.Errorf("pay order %s: %w", orderID, err)
	}
	return &o, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	o, err := do[types.Order](ctx, c, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &o, nil
}

// do sends a JSON request and unwraps the {success, data, error} envelope.
// A 2xx response without an error message counts as success, which also
// accepts the bare {data: ...} shape of the services endpoint.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return zero, fmt.Errorf("connecting to %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request", map[string]any{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return zero, fmt.Errorf("reading response: %w", err)
	}

	var env types.Envelope[T]
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 300 {
				return zero, &Error{Status: resp.StatusCode, Path: path}
			}
			return zero, fmt.Errorf("decoding response: %w", err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || env.Error != "" {
		return zero, &Error{Status: resp.StatusCode, Path: path, Message: env.Error}
	}
	return env.Data, nil
}
