package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"minis-storefront/internal/cart"
	"minis-storefront/internal/catalog"
	"minis-storefront/internal/database"
	"minis-storefront/internal/handlers"
	"minis-storefront/internal/models"
	"minis-storefront/internal/payments"
	"minis-storefront/internal/services"
)

const (
	adminUser     = "artist"
	adminPassword = "brushes"
)

type staticCatalog struct {
	products []models.Product
	err      error
}

func (s staticCatalog) FetchCatalog(ctx context.Context) ([]models.Product, error) {
	if s.err != nil {
		return []models.Product{}, s.err
	}
	return s.products, nil
}

type fakeGateway struct {
	mu        sync.Mutex
	requests  []payments.SessionRequest
	createErr error
	event     *payments.Event
	verifyErr error
	completed map[string]*payments.CompletedSession
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &payments.Session{ID: "cs_test_1", URL: "https://checkout.example/pay/cs_test_1"}, nil
}

func (g *fakeGateway) CompletedSession(ctx context.Context, sessionID string) (*payments.CompletedSession, error) {
	s, ok := g.completed[sessionID]
	if !ok {
		return nil, errors.New("no such session")
	}
	return s, nil
}

func (g *fakeGateway) VerifyEvent(payload []byte, signature string) (*payments.Event, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.event, nil
}

type memoryOrders struct {
	mu     sync.Mutex
	orders map[string]models.Order
}

func (r *memoryOrders) InsertOrders(ctx context.Context, orders []models.Order) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, o := range orders {
		if _, ok := r.orders[o.ID]; !ok {
			r.orders[o.ID] = o
			n++
		}
	}
	return n, nil
}

func (r *memoryOrders) ListOrders(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memoryOrders) SetCompleted(ctx context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return database.ErrNotFound
	}
	o.Completed = completed
	r.orders[id] = o
	return nil
}

func (r *memoryOrders) DeleteOrder(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return database.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type memoryProducts struct {
	products []models.PremadeProduct
	nextID   int64
	listErr  error
}

func (r *memoryProducts) ListProducts(ctx context.Context) ([]models.PremadeProduct, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]models.PremadeProduct{}, r.products...), nil
}

func (r *memoryProducts) CreateProduct(ctx context.Context, p models.PremadeProduct) (*models.PremadeProduct, bool, error) {
	for _, existing := range r.products {
		if existing.SKU == p.SKU {
			return &existing, false, nil
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.products = append(r.products, p)
	return &p, true, nil
}

func (r *memoryProducts) UpdateProduct(ctx context.Context, id int64, patch models.PremadeProductPatch) (*models.PremadeProduct, error) {
	for i := range r.products {
		if r.products[i].ID != id {
			continue
		}
		if patch.SKU != nil {
			for _, other := range r.products {
				if other.ID != id && other.SKU == *patch.SKU {
					return nil, database.ErrConflict
				}
			}
			r.products[i].SKU = *patch.SKU
		}
		if patch.Name != nil {
			r.products[i].Name = *patch.Name
		}
		if patch.Price != nil {
			r.products[i].Price = *patch.Price
		}
		updated := r.products[i]
		return &updated, nil
	}
	return nil, database.ErrNotFound
}

func (r *memoryProducts) DeleteProduct(ctx context.Context, id int64) (*models.PremadeProduct, error) {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &p, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *memoryProducts) CountProducts(ctx context.Context) (int, error) {
	return len(r.products), nil
}

type fakeBlobs struct {
	uploads []string
}

func (b *fakeBlobs) Upload(folder, ext, contentType string, data []byte) (string, string, error) {
	p := folder + "/upload." + ext
	b.uploads = append(b.uploads, p)
	return p, "https://cdn.example/" + p, nil
}

func (b *fakeBlobs) Delete(storagePath string) error { return nil }

func (b *fakeBlobs) PathFromURL(publicURL string) (string, bool) { return "", false }

// testServer bundles a fully wired router with the fakes behind it.
type testServer struct {
	router   *gin.Engine
	carts    *cart.Store
	gateway  *fakeGateway
	orders   *memoryOrders
	products *memoryProducts
	blobs    *fakeBlobs
	auth     *services.AuthService
}

type serverOption func(*serverConfig)

type serverConfig struct {
	catalog  staticCatalog
	noBlobs  bool
	tokenTTL time.Duration
}

func withCatalog(products []models.Product, err error) serverOption {
	return func(c *serverConfig) { c.catalog = staticCatalog{products: products, err: err} }
}

func withoutBlobs() serverOption {
	return func(c *serverConfig) { c.noBlobs = true }
}

func withTokenTTL(ttl time.Duration) serverOption {
	return func(c *serverConfig) { c.tokenTTL = ttl }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := serverConfig{tokenTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	ts := &testServer{
		router:   gin.New(),
		carts:    cart.NewStore(cart.NewMemoryPersister()),
		gateway:  &fakeGateway{completed: map[string]*payments.CompletedSession{}},
		orders:   &memoryOrders{orders: map[string]models.Order{}},
		products: &memoryProducts{},
		blobs:    &fakeBlobs{},
		auth:     services.NewAuthService(adminUser, string(hash), "test-secret", cfg.tokenTTL),
	}

	checkout, err := services.NewCheckoutService(ts.gateway, "10.00", "usd", "http://shop.test")
	require.NoError(t, err)

	var productService *services.ProductService
	if cfg.noBlobs {
		productService = services.NewProductService(ts.products, nil)
	} else {
		productService = services.NewProductService(ts.products, ts.blobs)
	}
	orderService := services.NewOrderService(ts.gateway, ts.orders)

	handlers.Routes{
		Catalog:  handlers.NewCatalogHandler(catalog.NewFinder(cfg.catalog, catalog.DefaultFacets(), 2)),
		Cart:     handlers.NewCartHandler(ts.carts),
		Checkout: handlers.NewCheckoutHandler(checkout, ts.carts),
		Webhook:  handlers.NewWebhookHandler(orderService),
		Auth:     handlers.NewAdminAuthHandler(ts.auth),
		Orders:   handlers.NewAdminOrdersHandler(orderService),
		Products: handlers.NewProductsHandler(productService),
		Verifier: ts.auth,
	}.Register(ts.router)

	return ts
}

func (ts *testServer) do(method, path string, body any, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.([]byte); ok {
			buf.Write(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) login(t *testing.T) http.Header {
	t.Helper()
	resp, err := ts.auth.Login(models.LoginRequest{Username: adminUser, Password: adminPassword})
	require.NoError(t, err)
	return http.Header{"Authorization": {"Bearer " + resp.Token}}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
