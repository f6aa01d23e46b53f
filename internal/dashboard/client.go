package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"minis-storefront/internal/models"
)

// ErrLoginFailed is returned when the stored credentials are rejected.
var ErrLoginFailed = errors.New("admin login failed")

// APIError is a non-2xx answer from the admin API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the admin API. It logs in on first use and logs in
// again, once, when the server reports the session as expired.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

func NewClient(baseURL, username, password string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges the credentials for a session token.
func (c *Client) Login(ctx context.Context) error {
	var resp models.LoginResponse
	err := c.send(ctx, http.MethodPost, "/api/admin/auth", "", models.LoginRequest{Username: c.username, Password: c.password}, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("%w: %s", ErrLoginFailed, apiErr.Message)
		}
		return err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var resp models.OrderListResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) SetCompleted(ctx context.Context, orderID string, completed bool) error {
	return c.do(ctx, http.MethodPatch, "/api/admin/orders", models.UpdateOrderRequest{OrderID: orderID, Completed: &completed}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/orders?id="+url.QueryEscape(orderID), nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.PremadeProduct, error) {
	var resp models.PremadeProductListResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/premade-products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// do sends an authenticated request, logging in first if needed.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.currentToken(ctx)
	if err != nil {
		return err
	}

	err = c.send(ctx, method, path, token, body, out)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !sessionExpired(apiErr) {
		return err
	}

	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()

	if token, err = c.currentToken(ctx); err != nil {
		return err
	}
	return c.send(ctx, method, path, token, body, out)
}

func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}

	if err := c.Login(ctx); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token, nil
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		if json.Unmarshal(respBody, &errResp) != nil || errResp.Error == "" {
			errResp.Error = strings.TrimSpace(string(respBody))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}
	return nil
}

func sessionExpired(err *APIError) bool {
	return err.StatusCode == http.StatusUnauthorized && err.Message == "session expired"
}
