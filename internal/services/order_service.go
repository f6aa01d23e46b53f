package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"minis-storefront/internal/database"
	"minis-storefront/internal/models"
	"minis-storefront/internal/payments"
)

type OrderRepository interface {
	InsertOrders(ctx context.Context, orders []models.Order) (int, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	DeleteOrder(ctx context.Context, id string) error
}

// WebhookResult reports what a webhook delivery did.
type WebhookResult struct {
	EventType string
	Orders    []models.Order
	Inserted  int
}

type OrderService struct {
	gateway payments.Gateway
	repo    OrderRepository
	now     func() time.Time
}

func NewOrderService(gateway payments.Gateway, repo OrderRepository) *OrderService {
	return &OrderService{gateway: gateway, repo: repo, now: time.Now}
}

// HandleWebhook verifies the delivery before doing anything else. Only a
// completed checkout creates orders; other events are acknowledged as-is.
func (s *OrderService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	if signature == "" {
		return nil, fmt.Errorf("%w: no signature provided", ErrValidation)
	}

	event, err := s.gateway.VerifyEvent(payload, signature)
	if err != nil {
		if errors.Is(err, payments.ErrInvalidSignature) {
			return nil, fmt.Errorf("%w: invalid signature", ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	result := &WebhookResult{EventType: event.Type}
	if event.Type != payments.EventCheckoutCompleted {
		return result, nil
	}

	orders, inserted, err := s.RecordCompletedSession(ctx, event.SessionID)
	if err != nil {
		return nil, err
	}
	result.Orders = orders
	result.Inserted = inserted
	return result, nil
}

// RecordCompletedSession turns a paid session into stored orders. Running
// it again for the same session stores nothing new.
func (s *OrderService) RecordCompletedSession(ctx context.Context, sessionID string) ([]models.Order, int, error) {
	if sessionID == "" {
		return nil, 0, fmt.Errorf("%w: event has no session id", ErrValidation)
	}

	session, err := s.gateway.CompletedSession(ctx, sessionID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	orders := BuildOrders(session, s.now())
	inserted, err := s.repo.InsertOrders(ctx, orders)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to store orders: %w", err)
	}

	slog.Info("orders recorded", "session_id", sessionID, "orders", len(orders), "inserted", inserted)
	return orders, inserted, nil
}

// BuildOrders maps each product line of a completed session to an order.
// The painting surcharge line is not a product and is skipped.
func BuildOrders(session *payments.CompletedSession, now time.Time) []models.Order {
	email := session.CustomerEmail
	if email == "" {
		email = "No email"
	}

	orders := make([]models.Order, 0, len(session.LineItems))
	for _, line := range session.LineItems {
		md := line.Metadata
		if md[MetadataLineType] == LineTypeSurcharge {
			continue
		}

		name := line.ProductName
		if name == "" {
			name = line.Description
		}
		if name == "" {
			name = "Unknown Product"
		}

		orders = append(orders, models.Order{
			ID:            session.ID + "-" + line.ID,
			OrderID:       session.ID,
			CustomerEmail: email,
			ProductName:   name,
			SKU:           orDefault(md["sku"], "N/A"),
			PaintingOptions: models.PaintingOptions{
				HairColor:       orDefault(md["hairColor"], "N/A"),
				SkinColor:       orDefault(md["skinColor"], "N/A"),
				AccessoryColor:  orDefault(md["accessoryColor"], "N/A"),
				FabricColor:     orDefault(md["fabricColor"], "N/A"),
				SpecificDetails: orDefault(md["specificDetails"], "None"),
			},
			ShippingAddress: session.Shipping,
			Timestamp:       now.UnixMilli(),
			Completed:       false,
			Price:           decimal.New(line.AmountTotal, -2).StringFixed(2),
		})
	}
	return orders
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) SetCompleted(ctx context.Context, req models.UpdateOrderRequest) error {
	if strings.TrimSpace(req.OrderID) == "" || req.Completed == nil {
		return fmt.Errorf("%w: orderId and completed are required", ErrValidation)
	}
	return mapRepoError(s.repo.SetCompleted(ctx, req.OrderID, *req.Completed))
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	return mapRepoError(s.repo.DeleteOrder(ctx, id))
}

func mapRepoError(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if errors.Is(err, database.ErrConflict) {
		return fmt.Errorf("%w: sku already in use", ErrConflict)
	}
	return err
}
