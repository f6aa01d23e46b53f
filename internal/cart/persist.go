package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"minis-storefront/internal/models"
)

const keyPrefix = "cart:"

// RedisPersister keeps each cart as one JSON document that expires after
// ttl without writes.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPersister(client *redis.Client, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, ttl: ttl}
}

// NewRedisClient parses redisURL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (p *RedisPersister) Load(ctx context.Context, cartID string) ([]models.CartLineItem, error) {
	data, err := p.client.Get(ctx, keyPrefix+cartID).Bytes()
	if err == redis.Nil {
		return []models.CartLineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart %s: %w", cartID, err)
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	return items, nil
}

func (p *RedisPersister) Save(ctx context.Context, cartID string, items []models.CartLineItem) error {
	if len(items) == 0 {
		return p.Delete(ctx, cartID)
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart %s: %w", cartID, err)
	}
	if err := p.client.Set(ctx, keyPrefix+cartID, data, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cart %s: %w", cartID, err)
	}
	return nil
}

func (p *RedisPersister) Delete(ctx context.Context, cartID string) error {
	if err := p.client.Del(ctx, keyPrefix+cartID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart %s: %w", cartID, err)
	}
	return nil
}

// MemoryPersister keeps carts in process memory. Used in tests and when no
// Redis is configured.
type MemoryPersister struct {
	mu    sync.RWMutex
	carts map[string][]models.CartLineItem
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{carts: make(map[string][]models.CartLineItem)}
}

func (p *MemoryPersister) Load(ctx context.Context, cartID string) ([]models.CartLineItem, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.carts[cartID]), nil
}

func (p *MemoryPersister) Save(ctx context.Context, cartID string, items []models.CartLineItem) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(items) == 0 {
		delete(p.carts, cartID)
		return nil
	}
	p.carts[cartID] = slices.Clone(items)
	return nil
}

func (p *MemoryPersister) Delete(ctx context.Context, cartID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.carts, cartID)
	return nil
}
