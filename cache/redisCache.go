package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/Kariqs/ezelectronics-api/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "cart:"
	genPrefix  = "cartgen:"
	maxJitter  = 5
	scanBatch  = 100
	defaultTTL = 15 * time.Minute
)

// setIfGeneration stores ARGV[2] under KEYS[1] for ARGV[3] ms only while
// KEYS[2] still holds generation ARGV[1] (a missing counter is generation 0).
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	if baseTTL <= 0 {
		baseTTL = defaultTTL
	}
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Get(ctx context.Context, customer string) (*models.CartView, error) {
	data, err := r.client.Get(ctx, cacheKey(customer)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart models.CartView
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return &cart, nil
}

func (r *RedisCache) Generation(ctx context.Context, customer string) (int64, error) {
	gen, err := r.client.Get(ctx, genKey(customer)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// Set stores the view with the base TTL plus up to maxJitter minutes so keys
// written together do not expire together. It returns ErrStaleGeneration and
// writes nothing when the customer was invalidated after generation was read.
func (r *RedisCache) Set(ctx context.Context, customer string, generation int64, cart *models.CartView) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	ttl := r.baseTTL + time.Duration(rand.Intn(maxJitter))*time.Minute
	stored, err := setIfGeneration.Run(ctx, r.client,
		[]string{cacheKey(customer), genKey(customer)},
		strconv.FormatInt(generation, 10), data, ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	if stored == 0 {
		return ErrStaleGeneration
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, customer string) error {
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, genKey(customer))
	pipe.Del(ctx, cacheKey(customer))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// DeleteAll bumps every generation counter before dropping the cached views.
func (r *RedisCache) DeleteAll(ctx context.Context) error {
	err := r.scanBatches(ctx, genPrefix+"*", func(keys []string) error {
		pipe := r.client.Pipeline()
		for _, key := range keys {
			pipe.Incr(ctx, key)
		}
		_, err := pipe.Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("redis bump generations failed: %w", err)
	}

	err = r.scanBatches(ctx, keyPrefix+"*", func(keys []string) error {
		return r.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) scanBatches(ctx context.Context, pattern string, fn func(keys []string) error) error {
	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := fn(keys); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return fn(keys)
	}
	return nil
}

func cacheKey(customer string) string {
	return keyPrefix + customer
}

func genKey(customer string) string {
	return genPrefix + customer
}
