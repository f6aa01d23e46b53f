package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"minis-storefront/internal/models"
	"minis-storefront/internal/payments"
)

// Metadata limits per line. The gateway caps each value at 500 characters.
const (
	colorMetadataLimit   = 100
	detailsMetadataLimit = 490

	SurchargeLineName = "Custom painting service"
	MetadataLineType  = "line_type"
	LineTypeSurcharge = "surcharge"
)

type CheckoutService struct {
	gateway           payments.Gateway
	surcharge         decimal.Decimal
	currency          string
	baseURL           string
	shippingCountries []string
	group             singleflight.Group
}

func NewCheckoutService(gateway payments.Gateway, surcharge, currency, baseURL string) (*CheckoutService, error) {
	amount, err := decimal.NewFromString(surcharge)
	if err != nil {
		return nil, fmt.Errorf("invalid painting surcharge %q: %w", surcharge, err)
	}
	return &CheckoutService{
		gateway:           gateway,
		surcharge:         amount,
		currency:          currency,
		baseURL:           baseURL,
		shippingCountries: []string{"US", "CA"},
	}, nil
}

// CreateSession opens a hosted checkout for the cart. Identical concurrent
// submissions share one gateway call and receive the same session. The cart
// itself is left untouched.
func (s *CheckoutService) CreateSession(ctx context.Context, req models.CheckoutRequest) (*models.CheckoutResponse, error) {
	lines, err := BuildLineItems(req.CartItems, s.surcharge)
	if err != nil {
		return nil, err
	}

	key, err := submissionKey(req)
	if err != nil {
		return nil, fmt.Errorf("failed to key checkout submission: %w", err)
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.gateway.CreateCheckoutSession(ctx, payments.SessionRequest{
			LineItems:         lines,
			Currency:          s.currency,
			SuccessURL:        s.successURL(req.CartID),
			CancelURL:         s.baseURL + "/cart",
			ShippingCountries: s.shippingCountries,
			Metadata:          map[string]string{"itemCount": strconv.Itoa(len(req.CartItems))},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if shared {
		slog.Info("checkout submission deduplicated", "items", len(req.CartItems))
	}

	session := v.(*payments.Session)
	return &models.CheckoutResponse{SessionID: session.ID, RedirectURL: session.URL}, nil
}

func (s *CheckoutService) successURL(cartID string) string {
	// The placeholder is substituted by the gateway and must stay unescaped.
	u := s.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	if cartID != "" {
		u += "&cart_id=" + url.QueryEscape(cartID)
	}
	return u
}

func submissionKey(req models.CheckoutRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// BuildLineItems converts cart lines into gateway lines: one per cart item
// with its customisation in metadata, plus a single surcharge line whose
// quantity is the number of items that want painting.
func BuildLineItems(items []models.CartLineItem, surcharge decimal.Decimal) ([]payments.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	lines := make([]payments.LineItem, 0, len(items)+1)
	var painted int64
	for i, item := range items {
		if item.Product.SKU == "" {
			return nil, fmt.Errorf("%w: item %d has no sku", ErrValidation, i)
		}
		price := item.Product.PriceValue()
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: item %d has a negative price", ErrValidation, i)
		}

		line := payments.LineItem{
			Name:        item.Product.Name,
			Description: "SKU: " + item.Product.SKU,
			UnitAmount:  ToCents(price),
			Quantity:    1,
			Metadata:    lineMetadata(item),
		}
		if img := item.Product.PrimaryImage(); img != "" {
			line.Images = []string{img}
		}
		lines = append(lines, line)

		if item.WantsPainting {
			painted++
		}
	}

	if painted > 0 && surcharge.IsPositive() {
		lines = append(lines, payments.LineItem{
			Name:       SurchargeLineName,
			UnitAmount: ToCents(surcharge),
			Quantity:   painted,
			Metadata:   map[string]string{MetadataLineType: LineTypeSurcharge},
		})
	}

	return lines, nil
}

func lineMetadata(item models.CartLineItem) map[string]string {
	opts := item.PaintingOptions
	return map[string]string{
		"sku":             item.Product.SKU,
		"hairColor":       Truncate(orDefault(opts.HairColor, "N/A"), colorMetadataLimit),
		"skinColor":       Truncate(orDefault(opts.SkinColor, "N/A"), colorMetadataLimit),
		"accessoryColor":  Truncate(orDefault(opts.AccessoryColor, "N/A"), colorMetadataLimit),
		"fabricColor":     Truncate(orDefault(opts.FabricColor, "N/A"), colorMetadataLimit),
		"specificDetails": Truncate(orDefault(opts.SpecificDetails, "None"), detailsMetadataLimit),
		"wantsPainting":   strconv.FormatBool(item.WantsPainting),
	}
}

// ToCents rounds a decimal amount to integer minor units.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Truncate shortens s to at most maxLen characters, ending in "..." when
// anything was cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
