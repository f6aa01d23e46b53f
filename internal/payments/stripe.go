package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/client"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"minis-storefront/internal/models"
)

// StripeGateway implements Gateway with Stripe Checkout.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

type StripeOption func(*stripe.BackendConfig)

// WithBackendURL points the API client at another host. Used in tests.
func WithBackendURL(url string) StripeOption {
	return func(cfg *stripe.BackendConfig) { cfg.URL = stripe.String(url) }
}

func NewStripeGateway(secretKey, webhookSecret string, opts ...StripeOption) *StripeGateway {
	cfg := &stripe.BackendConfig{
		HTTPClient: &http.Client{
			Timeout:   80 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		MaxNetworkRetries: stripe.Int64(2),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
	backends := &stripe.Backends{API: backend, Connect: backend, Uploads: backend}

	return &StripeGateway{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		Metadata:   req.Metadata,
	}
	params.Context = ctx

	if len(req.ShippingCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.ShippingCountries),
		}
	}

	for _, item := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:     stripe.String(item.Name),
			Metadata: item.Metadata,
		}
		if item.Description != "" {
			product.Description = stripe.String(item.Description)
		}
		if len(item.Images) > 0 {
			product.Images = stripe.StringSlice(item.Images)
		}

		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: product,
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		slog.Error("failed to create stripe checkout session", "error", err)
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &Session{ID: s.ID, URL: s.URL}, nil
}

// CompletedSession loads the session's customer and shipping details and
// every line item with its product expanded.
func (g *StripeGateway) CompletedSession(ctx context.Context, sessionID string) (*CompletedSession, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, getParams)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session %s: %w", sessionID, err)
	}

	completed := &CompletedSession{ID: s.ID}
	if s.CustomerDetails != nil {
		completed.CustomerEmail = s.CustomerDetails.Email
	}
	if s.ShippingDetails != nil && s.ShippingDetails.Address != nil {
		a := s.ShippingDetails.Address
		completed.Shipping = &models.ShippingAddress{
			Name: s.ShippingDetails.Name,
			Address: models.Address{
				Line1:      a.Line1,
				Line2:      a.Line2,
				City:       a.City,
				State:      a.State,
				PostalCode: a.PostalCode,
				Country:    a.Country,
			},
		}
	}

	listParams := &stripe.CheckoutSessionListLineItemsParams{Session: stripe.String(sessionID)}
	listParams.Context = ctx
	listParams.AddExpand("data.price.product")

	iter := g.api.CheckoutSessions.ListLineItems(listParams)
	for iter.Next() {
		li := iter.LineItem()
		line := CompletedLine{
			ID:          li.ID,
			AmountTotal: li.AmountTotal,
			Description: li.Description,
		}
		if li.Price != nil && li.Price.Product != nil {
			line.ProductName = li.Price.Product.Name
			line.Metadata = li.Price.Product.Metadata
		}
		completed.LineItems = append(completed.LineItems, line)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list line items for %s: %w", sessionID, err)
	}

	return completed, nil
}

// VerifyEvent checks the Stripe-Signature header against the webhook secret
// before decoding anything.
func (g *StripeGateway) VerifyEvent(payload []byte, signature string) (*Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	ev := &Event{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(ev.Type, "checkout.session.") && event.Data != nil {
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		ev.SessionID = s.ID
	}
	return ev, nil
}
