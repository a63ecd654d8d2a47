package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// Cache keeps recent quotes in Redis. Redis failures fall through to the
// wrapped provider.
type Cache struct {
	next Provider
	rdb  *redis.Client
	ttl  time.Duration
	log  log.FieldLogger
}

func NewCache(next Provider, rdb *redis.Client, ttl time.Duration, logger log.FieldLogger) *Cache {
	return &Cache{next: next, rdb: rdb, ttl: ttl, log: logger}
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("stock:%s:quote", symbol)
}

func (c *Cache) Lookup(ctx context.Context, symbol string) (Quote, error) {
	symbol = Normalize(symbol)
	if c.ttl <= 0 || c.rdb == nil {
		return c.next.Lookup(ctx, symbol)
	}

	key := cacheKey(symbol)
	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		var quote Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return quote, nil
		}
		c.log.WithField("key", key).Warn("discarding unreadable cached quote")
	case !errors.Is(err, redis.Nil):
		c.log.WithError(err).WithField("key", key).Warn("quote cache read failed")
	}

	quote, err := c.next.Lookup(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	data, err := json.Marshal(quote)
	if err != nil {
		return quote, nil
	}
	if err := c.rdb.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("quote cache write failed")
	}
	return quote, nil
}
