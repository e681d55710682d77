package cache

import (
	"context"
	"errors"

	"github.com/Kariqs/ezelectronics-api/models"
)

// CartCache keeps the current-cart view of a customer. Every Delete bumps the
// customer's generation; Set only stores a view read under the generation it
// is given, so a view read before an invalidation is never written back.
type CartCache interface {
	Get(ctx context.Context, customer string) (*models.CartView, error)
	Generation(ctx context.Context, customer string) (int64, error)
	Set(ctx context.Context, customer string, generation int64, cart *models.CartView) error
	Delete(ctx context.Context, customer string) error
	DeleteAll(ctx context.Context) error
}

var (
	ErrCacheMiss       = errors.New("cache miss")
	ErrStaleGeneration = errors.New("cart changed since it was read")
)

// NoopCache is used when no Redis is configured; every Get misses.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*models.CartView, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Generation(context.Context, string) (int64, error) { return 0, nil }

func (NoopCache) Set(context.Context, string, int64, *models.CartView) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }

func (NoopCache) DeleteAll(context.Context) error { return nil }
