// Package catalog maintains a bounded-staleness snapshot of the full upstream
// catalog so that search requests never pay the multi-page fetch cost on the
// hot path.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kasuwa-dev/kasuwa/internal/models"
	"github.com/kasuwa-dev/kasuwa/internal/woo"
	"golang.org/x/sync/singleflight"
)

const (
	pageSize = 100
	maxPages = 10
)

// ErrUnavailable means no snapshot, fresh or stale, could be produced.
var ErrUnavailable = errors.New("catalog unavailable")

// Lister fetches one page of canonical products from the upstream catalog.
type Lister interface {
	ListProducts(ctx context.Context, p woo.ListParams) ([]models.Product, error)
}

// Snapshot is an immutable point-in-time copy of the full catalog. It is only
// ever replaced wholesale, never patched.
type Snapshot struct {
	Products  []models.Product
	ExpiresAt time.Time
}

// Cache serves the full catalog from memory, refreshing it at most once per
// TTL window. Concurrent callers during a refresh are coalesced onto the
// single in-flight fetch.
type Cache struct {
	upstream Lister
	ttl      time.Duration
	now      func() time.Time

	mu   sync.RWMutex
	snap *Snapshot

	group singleflight.Group
}

// NewCache creates a catalog cache. A nil now falls back to time.Now; tests
// inject their own clock to drive expiry.
func NewCache(upstream Lister, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{upstream: upstream, ttl: ttl, now: now}
}

// FullCatalog returns the current snapshot, refreshing it first when expired.
// A failed refresh falls back to the previous snapshot if one exists; the
// error surfaces only when there is nothing at all to serve.
func (c *Cache) FullCatalog(ctx context.Context) ([]models.Product, error) {
	if snap := c.fresh(); snap != nil {
		return snap.Products, nil
	}

	v, err, _ := c.group.Do("catalog", func() (any, error) {
		// A follower can land here right after the refresh it was queued
		// behind has completed; don't fetch again.
		if snap := c.fresh(); snap != nil {
			return snap, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		// Stale-but-available beats unavailable.
		c.mu.RLock()
		stale := c.snap
		c.mu.RUnlock()
		if stale != nil {
			return stale.Products, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	return v.(*Snapshot).Products, nil
}

func (c *Cache) fresh() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap != nil && c.now().Before(c.snap.ExpiresAt) {
		return c.snap
	}
	return nil
}

// refresh walks the upstream pages until a short page signals the end or the
// page budget runs out, then swaps the snapshot in one step.
func (c *Cache) refresh(ctx context.Context) (*Snapshot, error) {
	var products []models.Product
	for page := 1; page <= maxPages; page++ {
		batch, err := c.upstream.ListProducts(ctx, woo.ListParams{Page: page, PerPage: pageSize})
		if err != nil {
			return nil, fmt.Errorf("refresh page %d: %w", page, err)
		}
		products = append(products, batch...)
		ReportProgress(ctx, fmt.Sprintf("Loaded %d products from the store...", len(products)))
		if len(batch) < pageSize {
			break
		}
	}

	snap := &Snapshot{Products: products, ExpiresAt: c.now().Add(c.ttl)}
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return snap, nil
}
