package redis

import (
	"context"
	"encoding/json"
	gerrors "errors"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/stayscope/listing-intelligence/internal/domain/profile"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/pkg/errors"
	"github.com/stayscope/listing-intelligence/pkg/types/common"
)

// nullSentinel caches "no such profile" so repeated misses don't hammer the
// backing store.
const nullSentinel = "__null__"

// nullTTL is deliberately short: a profile can appear at any moment.
const nullTTL = 30 * time.Second

// jitterFraction spreads expirations to avoid a synchronized miss storm.
const jitterFraction = 0.1

// ProfileCache is a read-through cache in front of a profile.Repository.
// Writes go to the backing store first and then refresh the cache; cache
// failures degrade to the store, they never fail the request.
type ProfileCache struct {
	store  profile.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group
	logger logging.Logger
}

// NewProfileCache wraps the backing store with a Redis cache.
func NewProfileCache(store profile.Repository, client *redis.Client, prefix string, ttl time.Duration, logger logging.Logger) *ProfileCache {
	return &ProfileCache{
		store:  store,
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.Named("profile_cache"),
	}
}

func (c *ProfileCache) key(listingID common.ID) string {
	return c.prefix + "profile:" + listingID.String()
}

func (c *ProfileCache) jitteredTTL() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitter := time.Duration(rand.Int63n(int64(float64(c.ttl) * jitterFraction)))
	return c.ttl + jitter
}

// Get serves from Redis when possible.  Concurrent misses for the same
// listing are collapsed into one store read.
func (c *ProfileCache) Get(ctx context.Context, listingID common.ID) (*profile.IntelligenceProfile, error) {
	key := c.key(listingID)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if raw == nullSentinel {
			return nil, errors.New(errors.ErrCodeProfileNotFound, "profile not found").
				WithDetail(listingID.String())
		}
		var p profile.IntelligenceProfile
		if uerr := json.Unmarshal([]byte(raw), &p); uerr == nil {
			return &p, nil
		}
		// A corrupt entry falls through to the store and gets rewritten.
		c.logger.Warn("corrupt cache entry", logging.String("key", key))
	case !gerrors.Is(err, redis.Nil):
		c.logger.Warn("cache read failed", logging.String("key", key), logging.Err(err))
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		p, err := c.store.Get(ctx, listingID)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeProfileNotFound) {
				c.setRaw(ctx, key, nullSentinel, nullTTL)
			}
			return nil, err
		}
		c.set(ctx, key, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*profile.IntelligenceProfile), nil
}

// Upsert writes through to the store and refreshes the cache entry.
func (c *ProfileCache) Upsert(ctx context.Context, p *profile.IntelligenceProfile) error {
	if err := c.store.Upsert(ctx, p); err != nil {
		return err
	}
	c.set(ctx, c.key(p.ListingID), p)
	return nil
}

// Delete removes the record from the store and invalidates the cache entry.
func (c *ProfileCache) Delete(ctx context.Context, listingID common.ID) error {
	if err := c.store.Delete(ctx, listingID); err != nil {
		return err
	}
	if err := c.client.Del(ctx, c.key(listingID)).Err(); err != nil {
		c.logger.Warn("cache invalidation failed",
			logging.String("key", c.key(listingID)), logging.Err(err))
	}
	return nil
}

// ListByOwner is not cached; aggregation reads always hit the store.
func (c *ProfileCache) ListByOwner(ctx context.Context, ownerID common.OwnerID) ([]*profile.IntelligenceProfile, error) {
	return c.store.ListByOwner(ctx, ownerID)
}

// ListByCity is not cached; aggregation reads always hit the store.
func (c *ProfileCache) ListByCity(ctx context.Context, city string) ([]*profile.IntelligenceProfile, error) {
	return c.store.ListByCity(ctx, city)
}

func (c *ProfileCache) set(ctx context.Context, key string, p *profile.IntelligenceProfile) {
	data, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("cache marshal failed", logging.String("key", key), logging.Err(err))
		return
	}
	c.setRaw(ctx, key, string(data), c.jitteredTTL())
}

func (c *ProfileCache) setRaw(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", logging.String("key", key), logging.Err(err))
	}
}
