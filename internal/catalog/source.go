package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"minis-storefront/internal/models"
)

// ErrCatalogUnavailable wraps every failure to obtain the external catalog.
// Callers render an error state with a retry action.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Source fetches the external product list and keeps only the materials the
// store sells.
type Source struct {
	url        string
	materials  map[string]struct{}
	httpClient *http.Client
	maxRetries int
	backoffs   []time.Duration
}

type SourceOption func(*Source)

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(s *Source) { s.httpClient = client }
}

// WithRetry sets the attempt count and the waits between attempts.
func WithRetry(maxRetries int, backoffs ...time.Duration) SourceOption {
	return func(s *Source) {
		s.maxRetries = maxRetries
		s.backoffs = backoffs
	}
}

func NewSource(url string, materials []string, timeout time.Duration, opts ...SourceOption) *Source {
	accepted := make(map[string]struct{}, len(materials))
	for _, m := range materials {
		accepted[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}

	s := &Source{
		url:       url,
		materials: accepted,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxRetries: 3,
		backoffs:   []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCatalog returns the store-relevant products in source order. On any
// failure it returns an empty slice and an error wrapping
// ErrCatalogUnavailable.
func (s *Source) FetchCatalog(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.RetryWithBackoff(ctx, func() error {
		var err error
		products, err = s.fetch(ctx)
		return err
	}, s.maxRetries)
	if err != nil {
		slog.Warn("catalog fetch failed", "url", s.url, "error", err)
		return []models.Product{}, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return s.keepAccepted(products), nil
}

func (s *Source) fetch(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, permanent(err)
		}
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, permanent(fmt.Errorf("failed to decode catalog: %w", err))
	}
	return products, nil
}

func (s *Source) keepAccepted(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.SKU == "" {
			continue
		}
		if _, ok := s.materials[strings.ToLower(p.Material)]; ok {
			out = append(out, p)
		}
	}
	return out
}

// RetryWithBackoff runs fn up to maxRetries times, waiting between attempts.
// Permanent errors and context cancellation stop the loop early.
func (s *Source) RetryWithBackoff(ctx context.Context, fn func() error, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if i == maxRetries-1 {
			break
		}

		var wait time.Duration
		if i < len(s.backoffs) {
			wait = s.backoffs[i]
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return &permanentError{err: err} }
