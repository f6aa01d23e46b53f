package cart

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"minis-storefront/internal/models"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
	ErrInvalidItem  = errors.New("invalid cart item")
	ErrInvalidColor = errors.New("invalid colour")
	ErrUnknownField = errors.New("unknown colour field")
)

// Colour fields a customer may change after adding an item.
const (
	FieldHairColor      = "hairColor"
	FieldSkinColor      = "skinColor"
	FieldAccessoryColor = "accessoryColor"
	FieldFabricColor    = "fabricColor"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Persister stores the whole line-item collection of one cart.
type Persister interface {
	Load(ctx context.Context, cartID string) ([]models.CartLineItem, error)
	Save(ctx context.Context, cartID string, items []models.CartLineItem) error
	Delete(ctx context.Context, cartID string) error
}

// Event is broadcast after every successful mutation of a cart.
type Event struct {
	CartID string `json:"cartId"`
	Count  int    `json:"count"`
	Total  string `json:"total"`
}

// Store is the observable cart. Mutations are serialised, persisted before
// they return, and then announced to the cart's subscribers.
type Store struct {
	mu        sync.Mutex
	persister Persister
	now       func() time.Time

	subMu sync.Mutex
	subs  map[string]map[chan Event]struct{}
}

func NewStore(persister Persister) *Store {
	return &Store{
		persister: persister,
		now:       time.Now,
		subs:      make(map[string]map[chan Event]struct{}),
	}
}

// NewCartID returns a fresh cart scope identifier.
func NewCartID() string {
	return uuid.NewString()
}

// Items returns the current contents of a cart. An unknown cart is empty.
func (s *Store) Items(ctx context.Context, cartID string) ([]models.CartLineItem, error) {
	items, err := s.persister.Load(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items, nil
}

// Add appends a configured product. Missing colours take the storefront
// defaults and the item id is "<sku>-<unix ms>", unique within the cart.
func (s *Store) Add(ctx context.Context, cartID string, req models.AddCartItemRequest) (models.CartLineItem, error) {
	if strings.TrimSpace(req.Product.SKU) == "" {
		return models.CartLineItem{}, fmt.Errorf("%w: product sku is required", ErrInvalidItem)
	}

	var added models.CartLineItem
	err := s.mutate(ctx, cartID, func(items []models.CartLineItem) ([]models.CartLineItem, error) {
		added = models.CartLineItem{
			ID:              s.newItemID(items, req.Product.SKU),
			Product:         req.Product,
			PaintingOptions: req.PaintingOptions.WithDefaults(),
			WantsPainting:   req.WantsPainting,
		}
		return append(items, added), nil
	})
	return added, err
}

func (s *Store) Remove(ctx context.Context, cartID, itemID string) error {
	return s.mutate(ctx, cartID, func(items []models.CartLineItem) ([]models.CartLineItem, error) {
		i := indexOf(items, itemID)
		if i < 0 {
			return nil, ErrItemNotFound
		}
		return append(items[:i], items[i+1:]...), nil
	})
}

// UpdateColor sets one of the four colour fields of a line item.
func (s *Store) UpdateColor(ctx context.Context, cartID, itemID, field, value string) (models.CartLineItem, error) {
	if !hexColor.MatchString(value) {
		return models.CartLineItem{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
	}

	var updated models.CartLineItem
	err := s.mutate(ctx, cartID, func(items []models.CartLineItem) ([]models.CartLineItem, error) {
		i := indexOf(items, itemID)
		if i < 0 {
			return nil, ErrItemNotFound
		}
		opts := &items[i].PaintingOptions
		switch field {
		case FieldHairColor:
			opts.HairColor = value
		case FieldSkinColor:
			opts.SkinColor = value
		case FieldAccessoryColor:
			opts.AccessoryColor = value
		case FieldFabricColor:
			opts.FabricColor = value
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		updated = items[i]
		return items, nil
	})
	return updated, err
}

// UpdateDetails replaces the free-text painting instructions of a line item.
func (s *Store) UpdateDetails(ctx context.Context, cartID, itemID, details string) (models.CartLineItem, error) {
	var updated models.CartLineItem
	err := s.mutate(ctx, cartID, func(items []models.CartLineItem) ([]models.CartLineItem, error) {
		i := indexOf(items, itemID)
		if i < 0 {
			return nil, ErrItemNotFound
		}
		items[i].PaintingOptions.SpecificDetails = details
		updated = items[i]
		return items, nil
	})
	return updated, err
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persister.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.publish(Event{CartID: cartID, Count: 0, Total: Total(nil)})
	return nil
}

func (s *Store) mutate(ctx context.Context, cartID string, fn func([]models.CartLineItem) ([]models.CartLineItem, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.persister.Load(ctx, cartID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	if err := s.persister.Save(ctx, cartID, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	s.publish(Event{CartID: cartID, Count: len(items), Total: Total(items)})
	return nil
}

func (s *Store) newItemID(items []models.CartLineItem, sku string) string {
	ms := s.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s-%d", sku, ms)
		if indexOf(items, id) < 0 {
			return id
		}
		ms++
	}
}

func indexOf(items []models.CartLineItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Total sums the catalog prices of items. Unparseable prices count as zero.
func Total(items []models.CartLineItem) string {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Product.PriceValue())
	}
	return sum.StringFixed(2)
}
