package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nunnsy/betfair/internal/domain"
)

// CatalogueCache implements domain.CatalogueCache using Redis hashes with
// JSON-serialized market summaries and a set of cached market ids.
//
// Key schema:
//
//	catalogue:{marketId} - hash with field "data" containing JSON
//	catalogue:ids        - set of market ids currently cached
type CatalogueCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const catalogueIndexKey = "catalogue:ids"

// NewCatalogueCache creates a CatalogueCache backed by the given Client.
// Entries expire after ttl; a zero ttl keeps entries for five minutes.
func NewCatalogueCache(c *Client, ttl time.Duration) *CatalogueCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CatalogueCache{rdb: c.Underlying(), ttl: ttl}
}

func catalogueKey(marketID string) string { return "catalogue:" + marketID }

// Set stores one market summary with the cache TTL and records its id in the
// index set.
func (cc *CatalogueCache) Set(ctx context.Context, m domain.MarketSummary) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("redis: marshal catalogue %s: %w", m.MarketID, err)
	}

	key := catalogueKey(m.MarketID)

	pipe := cc.rdb.TxPipeline()
	pipe.HSet(ctx, key, "data", data)
	pipe.Expire(ctx, key, cc.ttl)
	pipe.SAdd(ctx, catalogueIndexKey, m.MarketID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set catalogue %s: %w", m.MarketID, err)
	}
	return nil
}

// SetBatch stores many market summaries in a single pipeline round trip.
func (cc *CatalogueCache) SetBatch(ctx context.Context, ms []domain.MarketSummary) error {
	if len(ms) == 0 {
		return nil
	}

	pipe := cc.rdb.TxPipeline()
	for _, m := range ms {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("redis: marshal catalogue %s: %w", m.MarketID, err)
		}
		key := catalogueKey(m.MarketID)
		pipe.HSet(ctx, key, "data", data)
		pipe.Expire(ctx, key, cc.ttl)
		pipe.SAdd(ctx, catalogueIndexKey, m.MarketID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: set catalogue batch of %d: %w", len(ms), err)
	}
	return nil
}

// Get retrieves a market summary by market id.
// It returns domain.ErrNotFound when the key does not exist or has expired.
func (cc *CatalogueCache) Get(ctx context.Context, marketID string) (domain.MarketSummary, error) {
	data, err := cc.rdb.HGet(ctx, catalogueKey(marketID), "data").Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.MarketSummary{}, domain.ErrNotFound
		}
		return domain.MarketSummary{}, fmt.Errorf("redis: get catalogue %s: %w", marketID, err)
	}

	var m domain.MarketSummary
	if err := json.Unmarshal(data, &m); err != nil {
		return domain.MarketSummary{}, fmt.Errorf("redis: unmarshal catalogue %s: %w", marketID, err)
	}
	return m, nil
}

// List returns every cached market summary. Ids whose entries have expired
// are pruned from the index as a side effect.
func (cc *CatalogueCache) List(ctx context.Context) ([]domain.MarketSummary, error) {
	ids, err := cc.rdb.SMembers(ctx, catalogueIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: list catalogue ids: %w", err)
	}

	var (
		summaries []domain.MarketSummary
		stale     []any
	)
	for _, id := range ids {
		m, err := cc.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				stale = append(stale, id)
				continue
			}
			return nil, err
		}
		summaries = append(summaries, m)
	}

	if len(stale) > 0 {
		if err := cc.rdb.SRem(ctx, catalogueIndexKey, stale...).Err(); err != nil {
			return nil, fmt.Errorf("redis: prune catalogue index: %w", err)
		}
	}
	return summaries, nil
}

// Invalidate removes one market summary and its index entry.
func (cc *CatalogueCache) Invalidate(ctx context.Context, marketID string) error {
	pipe := cc.rdb.TxPipeline()
	pipe.Del(ctx, catalogueKey(marketID))
	pipe.SRem(ctx, catalogueIndexKey, marketID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: invalidate catalogue %s: %w", marketID, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.CatalogueCache = (*CatalogueCache)(nil)
