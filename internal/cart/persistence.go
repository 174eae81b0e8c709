package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/farm2home/storefront-backend/pkg/logger"
	f2hredis "github.com/farm2home/storefront-backend/pkg/redis"
)

// blobStore is the slice of the redis client the cart repository needs.
type blobStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	CartKey(customerID string) string
}

// RedisRepository stores each customer's cart as one JSON blob. Carts never
// expire; abandoning a session keeps its contents for the next visit.
type RedisRepository struct {
	store blobStore
	logg  *logger.Logger
}

// NewRedisRepository builds a repository over the shared redis client.
func NewRedisRepository(client *f2hredis.Client, logg *logger.Logger) (*RedisRepository, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisRepository{store: client, logg: logg}, nil
}

// Save serializes the full line-item list and overwrites the customer's blob.
func (r *RedisRepository) Save(ctx context.Context, customerID string, items []LineItem) error {
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.store.CartKey(customerID), string(payload), 0)
}

// Load reads the customer's blob back into line items. Anything short of a
// clean read degrades to an empty cart: a missing key silently, a corrupt blob
// with an error log. The sanitized result drops duplicate product ids beyond
// the first occurrence and floors quantities at one.
func (r *RedisRepository) Load(ctx context.Context, customerID string) []LineItem {
	raw, err := r.store.Get(ctx, r.store.CartKey(customerID))
	if err != nil {
		if !errors.Is(err, f2hredis.ErrKeyMissing) && r.logg != nil {
			r.logg.Error(ctx, "loading cart blob failed, starting empty", err)
		}
		return []LineItem{}
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		if r.logg != nil {
			r.logg.Error(ctx, "cart blob is corrupt, starting empty", err)
		}
		return []LineItem{}
	}
	return sanitize(items)
}

func sanitize(items []LineItem) []LineItem {
	seen := make(map[int64]bool, len(items))
	clean := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		clean = append(clean, item)
	}
	return clean
}
