package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys under which each part of the snapshot is stored.
const (
	KeyInventory    = "sim_inventory"
	KeyTransactions = "sim_transactions"
	KeyProjects     = "sim_projects"
	KeyCategories   = "sim_categories"
	keyTakenAt      = "sim_taken_at"
)

type redisPersister struct {
	client *redis.Client
}

// NewRedisPersister stores snapshots as JSON values in Redis, without expiry.
func NewRedisPersister(client *redis.Client) Persister {
	return &redisPersister{client: client}
}

func (p *redisPersister) Save(ctx context.Context, s *Snapshot) error {
	values := map[string]interface{}{
		KeyInventory:    s.Items,
		KeyTransactions: s.Transactions,
		KeyProjects:     s.Projects,
		KeyCategories:   s.Categories,
	}
	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, v := range values {
			b, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("encode %s: %w", key, err)
			}
			pipe.Set(ctx, key, b, 0)
		}
		pipe.Set(ctx, keyTakenAt, s.TakenAt.Format(time.RFC3339Nano), 0)
		return nil
	})
	return err
}

func (p *redisPersister) Load(ctx context.Context) (*Snapshot, error) {
	keys := []string{KeyInventory, KeyTransactions, KeyProjects, KeyCategories, keyTakenAt}
	vals, err := p.client.MGet(ctx, keys...).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, err
	}
	raw := make([]string, len(vals))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, ErrNoSnapshot
		}
		raw[i] = s
	}

	snap := &Snapshot{}
	dests := []interface{}{&snap.Items, &snap.Transactions, &snap.Projects, &snap.Categories}
	for i, dst := range dests {
		if err := json.Unmarshal([]byte(raw[i]), dst); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
	}
	if snap.TakenAt, err = time.Parse(time.RFC3339Nano, raw[4]); err != nil {
		return nil, fmt.Errorf("decode %s: %w", keyTakenAt, err)
	}
	return snap, nil
}
