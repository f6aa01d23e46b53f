package payments

import (
	"context"
	"errors"

	"minis-storefront/internal/models"
)

// ErrInvalidSignature is returned when a webhook payload does not carry a
// valid signature for the configured secret.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// EventCheckoutCompleted is the only event type that creates orders.
const EventCheckoutCompleted = "checkout.session.completed"

// Gateway is the payment provider as seen by the checkout and order
// services.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	CompletedSession(ctx context.Context, sessionID string) (*CompletedSession, error)
	VerifyEvent(payload []byte, signature string) (*Event, error)
}

// LineItem is one priced line of a checkout session. UnitAmount is in the
// currency's minor unit.
type LineItem struct {
	Name        string
	Description string
	Images      []string
	UnitAmount  int64
	Quantity    int64
	Metadata    map[string]string
}

type SessionRequest struct {
	LineItems         []LineItem
	Currency          string
	SuccessURL        string
	CancelURL         string
	ShippingCountries []string
	Metadata          map[string]string
}

type Session struct {
	ID  string
	URL string
}

// CompletedSession is a paid checkout session with its line items.
type CompletedSession struct {
	ID            string
	CustomerEmail string
	Shipping      *models.ShippingAddress
	LineItems     []CompletedLine
}

type CompletedLine struct {
	ID          string
	AmountTotal int64
	Description string
	ProductName string
	Metadata    map[string]string
}

// Event is a verified webhook notification.
type Event struct {
	ID        string
	Type      string
	SessionID string
}
