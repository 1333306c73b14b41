package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DoughlasMuthoni/linen-store-sub002/models"
)

// CartStore persists session carts.
type CartStore interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// CartRepository persists session carts in Redis as JSON blobs. Writes
// are last-write-wins; carts are low-value, single-user, short-lived
// state and no per-cart locking is attempted.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a new CartRepository with the given TTL.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CartRepository) getKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// GetCart loads the cart for a session. A missing cart returns a fresh
// empty cart, never an error.
func (r *CartRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.getKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return &models.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveCart stores the cart, refreshing the session TTL.
func (r *CartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(cart.SessionID), data, r.ttl).Err()
}

// DeleteCart removes the session's cart entirely.
func (r *CartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.getKey(sessionID)).Err()
}
