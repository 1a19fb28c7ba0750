package snapshot

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisPersister_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	client.Del(ctx, KeyInventory, KeyTransactions, KeyProjects, KeyCategories, keyTakenAt)
	p := NewRedisPersister(client)

	if _, err := p.Load(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on empty store, got %v", err)
	}

	taken := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	in := &Snapshot{
		Items: []*inventory.Item{{ID: "a", Name: "Panel", CurrentStock: 7, LowStockThreshold: 10}},
		Transactions: []*transaction.Transaction{{
			ID: "t1", Type: transaction.TypeOutput, Date: "2025-03-14", Quantity: 3, Seq: 4,
			Items: []transaction.Line{{ItemID: "a", ItemName: "Panel", Brand: "Jinko", Quantity: 3}},
		}},
		Categories: []string{"Paneles"},
		TakenAt:    taken,
	}
	if err := p.Save(ctx, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := p.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !out.TakenAt.Equal(taken) || len(out.Items) != 1 || out.Items[0].CurrentStock != 7 {
		t.Errorf("unexpected snapshot: %+v", out)
	}
	if len(out.Transactions) != 1 || len(out.Transactions[0].Items) != 1 || out.Transactions[0].Seq != 4 {
		t.Errorf("unexpected transactions: %+v", out.Transactions)
	}

	client.Del(ctx, KeyInventory, KeyTransactions, KeyProjects, KeyCategories, keyTakenAt)
}
