package services_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"minis-storefront/internal/database"
	"minis-storefront/internal/models"
	"minis-storefront/internal/payments"
)

type fakeGateway struct {
	mu        sync.Mutex
	requests  []payments.SessionRequest
	createErr error
	block     chan struct{}
	started   chan struct{}

	event     *payments.Event
	verifyErr error
	completed map[string]*payments.CompletedSession
	lookups   int
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	n := len(g.requests)
	g.mu.Unlock()

	if g.started != nil {
		g.started <- struct{}{}
	}
	if g.block != nil {
		<-g.block
	}
	if g.createErr != nil {
		return nil, g.createErr
	}
	return &payments.Session{ID: "cs_test_" + string(rune('0'+n)), URL: "https://checkout.example/pay"}, nil
}

func (g *fakeGateway) CompletedSession(ctx context.Context, sessionID string) (*payments.CompletedSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lookups++
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

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

// memoryOrders mimics insert-or-ignore on the order id.
type memoryOrders struct {
	mu     sync.Mutex
	orders map[string]models.Order
	err    error
}

func newMemoryOrders() *memoryOrders {
	return &memoryOrders{orders: make(map[string]models.Order)}
}

func (r *memoryOrders) InsertOrders(ctx context.Context, orders []models.Order) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	n := 0
	for _, o := range orders {
		if _, ok := r.orders[o.ID]; ok {
			continue
		}
		r.orders[o.ID] = o
		n++
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
}

func (r *memoryProducts) ListProducts(ctx context.Context) ([]models.PremadeProduct, error) {
	return append([]models.PremadeProduct{}, r.products...), nil
}

func (r *memoryProducts) CreateProduct(ctx context.Context, p models.PremadeProduct) (*models.PremadeProduct, bool, error) {
	for i := range r.products {
		if r.products[i].SKU == p.SKU {
			existing := r.products[i]
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
		p := &r.products[i]
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.OriginalPrice != nil {
			p.OriginalPrice = *patch.OriginalPrice
		}
		if patch.Image != nil {
			p.Image = *patch.Image
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.SKU != nil {
			p.SKU = *patch.SKU
		}
		updated := *p
		return &updated, nil
	}
	return nil, database.ErrNotFound
}

func (r *memoryProducts) DeleteProduct(ctx context.Context, id int64) (*models.PremadeProduct, error) {
	for i := range r.products {
		if r.products[i].ID == id {
			deleted := r.products[i]
			r.products = append(r.products[:i], r.products[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *memoryProducts) CountProducts(ctx context.Context) (int, error) {
	return len(r.products), nil
}

type fakeBlobs struct {
	uploads []string
	deleted []string
}

const blobPrefix = "https://proj.supabase.co/storage/v1/object/public/product-images/"

func (b *fakeBlobs) Upload(folder, ext, contentType string, data []byte) (string, string, error) {
	p := folder + "/upload." + ext
	b.uploads = append(b.uploads, p)
	return p, blobPrefix + p, nil
}

func (b *fakeBlobs) Delete(storagePath string) error {
	b.deleted = append(b.deleted, storagePath)
	return nil
}

func (b *fakeBlobs) PathFromURL(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, blobPrefix) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, blobPrefix), true
}
