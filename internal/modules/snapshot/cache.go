package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/georgemunganga/jfsolar-inventory/internal/config"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// Cache holds the current snapshot. Accessors return copies of the slices; the elements
// are shared and must be treated as read-only.
type Cache struct {
	mu        sync.RWMutex
	snap      Snapshot
	loaded    bool
	persister Persister
	now       func() time.Time
}

// NewCache creates an empty cache. persister may be nil.
func NewCache(persister Persister) *Cache {
	return &Cache{persister: persister, now: time.Now}
}

func (c *Cache) Items() []*inventory.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*inventory.Item(nil), c.snap.Items...)
}

func (c *Cache) Transactions() []*transaction.Transaction {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*transaction.Transaction(nil), c.snap.Transactions...)
}

func (c *Cache) Projects() []*project.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*project.Project(nil), c.snap.Projects...)
}

func (c *Cache) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.snap.Categories...)
}

// Snapshot returns the whole current snapshot.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.snap
	s.Items = append([]*inventory.Item(nil), s.Items...)
	s.Transactions = append([]*transaction.Transaction(nil), s.Transactions...)
	s.Projects = append([]*project.Project(nil), s.Projects...)
	s.Categories = append([]string(nil), s.Categories...)
	return s
}

// Loaded reports whether the cache holds data that has not been invalidated.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Invalidate marks the current data stale. It stays readable until the next refresh.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}

// RefreshFrom replaces the snapshot with a fresh read of src and persists it. When the read
// fails on a cache that holds nothing, the persisted snapshot is restored; the read error is
// returned either way.
func (c *Cache) RefreshFrom(ctx context.Context, src Source) error {
	snap, err := read(ctx, src)
	if err != nil {
		if !c.hasData() {
			if rerr := c.Restore(ctx); rerr != nil && !errors.Is(rerr, ErrNoSnapshot) {
				config.LogError(config.GetLogger(), "snapshot", "RefreshFrom", "restoring persisted snapshot", nil, rerr)
			}
		}
		return fmt.Errorf("refresh snapshot: %w", err)
	}
	snap.TakenAt = c.now()

	c.mu.Lock()
	c.snap = *snap
	c.loaded = true
	c.mu.Unlock()
	markRefreshed(ctx)

	if c.persister != nil {
		if err := c.persister.Save(ctx, snap); err != nil {
			config.LogError(config.GetLogger(), "snapshot", "RefreshFrom", "persisting snapshot", nil, err)
		}
	}
	return nil
}

// Restore loads the persisted snapshot into the cache.
func (c *Cache) Restore(ctx context.Context) error {
	if c.persister == nil {
		return ErrNoSnapshot
	}
	snap, err := c.persister.Load(ctx)
	if err != nil {
		return err
	}
	snap.Restored = true

	c.mu.Lock()
	c.snap = *snap
	c.loaded = true
	c.mu.Unlock()
	config.GetLogger().WithField("taken_at", snap.TakenAt).Warn("serving persisted snapshot")
	return nil
}

func (c *Cache) hasData() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.snap.TakenAt.IsZero()
}

func read(ctx context.Context, src Source) (*Snapshot, error) {
	items, err := src.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	txs, err := src.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}
	projects, err := src.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("projects: %w", err)
	}
	categories, err := src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return &Snapshot{Items: items, Transactions: txs, Projects: projects, Categories: categories}, nil
}

// View binds a cache to the source it refreshes from.
type View struct {
	cache  *Cache
	source Source
}

func NewView(cache *Cache, source Source) *View {
	return &View{cache: cache, source: source}
}

func (v *View) Cache() *Cache { return v.cache }

// Refresh rereads every store into the cache.
func (v *View) Refresh(ctx context.Context) error {
	return v.cache.RefreshFrom(ctx, v.source)
}

// Current returns the cached snapshot, refreshing it first when it is stale. A failed refresh
// still returns whatever data the cache holds; the error is only returned when it holds none.
func (v *View) Current(ctx context.Context) (Snapshot, error) {
	if !v.cache.Loaded() {
		if err := v.Refresh(ctx); err != nil {
			if !v.cache.hasData() {
				return Snapshot{}, err
			}
			config.LogError(config.GetLogger(), "snapshot", "Current", "refresh failed, serving cached data", nil, err)
		}
	}
	return v.cache.Snapshot(), nil
}
