package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyAssigned: delivery:assigned:{scope}:{order_id} -> carrier assignment marker
	keyAssigned = "delivery:assigned:%s:%s"

	ttlAssigned = 24 * time.Hour
)

// RedisLedger shares the assigned set between server replicas. Entries
// expire after a day, by then the backend status is authoritative.
type RedisLedger struct {
	rdb   *redis.Client
	scope string
	ttl   time.Duration
}

func NewRedisLedger(rdb *redis.Client, scope string) *RedisLedger {
	return &RedisLedger{rdb: rdb, scope: scope, ttl: ttlAssigned}
}

func (l *RedisLedger) key(orderID string) string {
	return fmt.Sprintf(keyAssigned, l.scope, orderID)
}

func (l *RedisLedger) Has(ctx context.Context, orderID string) (bool, error) {
	n, err := l.rdb.Exists(ctx, l.key(orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis ledger lookup: %w", err)
	}
	return n > 0, nil
}

func (l *RedisLedger) Lookup(ctx context.Context, orderIDs []string) (map[string]bool, error) {
	found := make(map[string]bool, len(orderIDs))
	if len(orderIDs) == 0 {
		return found, nil
	}
	keys := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		keys[i] = l.key(id)
	}
	vals, err := l.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ledger lookup: %w", err)
	}
	for i, v := range vals {
		if v != nil {
			found[orderIDs[i]] = true
		}
	}
	return found, nil
}

func (l *RedisLedger) Add(ctx context.Context, orderID string) error {
	if err := l.rdb.Set(ctx, l.key(orderID), time.Now().UTC().Format(time.RFC3339), l.ttl).Err(); err != nil {
		return fmt.Errorf("redis ledger add: %w", err)
	}
	return nil
}
