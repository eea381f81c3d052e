package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/slotcal/slotcal-api/internal/config"
	domain "github.com/slotcal/slotcal-api/internal/domain/booking"
)

const publicPageTTL = 5 * time.Minute

// Cache fronts the public, unauthenticated read path. Misses and redis
// failures fall through to the database.
type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	return &Cache{rdb: rdb}
}

// publicKey normalizes both URL segments so case-variant requests
// (/JDoe/Intro-Call vs /jdoe/intro-call) share one entry and host-wide
// invalidation catches every variant.
func publicKey(username, slug string) string {
	return fmt.Sprintf("public:%s:%s", domain.NormalizeUsername(username), strings.ToLower(slug))
}

func (c *Cache) GetPublicPage(ctx context.Context, username, slug string, out any) bool {
	raw, err := c.rdb.Get(ctx, publicKey(username, slug)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (c *Cache) SetPublicPage(ctx context.Context, username, slug string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, publicKey(username, slug), raw, publicPageTTL)
}

// InvalidateHost drops every cached public page for a host after one of
// their bookings changes.
func (c *Cache) InvalidateHost(ctx context.Context, username string) {
	iter := c.rdb.Scan(ctx, 0, fmt.Sprintf("public:%s:*", domain.NormalizeUsername(username)), 50).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
