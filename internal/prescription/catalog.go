package prescription

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// catalogTTL bounds how long a catalog snapshot is served without a reload.
const catalogTTL = 5 * time.Minute

// exerciseLister loads the full catalog from the data layer.
type exerciseLister interface {
	GetAllExercises(ctx context.Context) ([]Exercise, error)
}

// CatalogCache is a read-through cache over the exercise catalog. The
// snapshot swap is mutex-guarded, but concurrent callers hitting an expired
// snapshot may each trigger a reload; last write wins and the duplicate work
// is harmless since every load reads the same source.
type CatalogCache struct {
	source exerciseLister
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	snapshot []Exercise
	loadedAt time.Time
}

// NewCatalogCache wraps source with the default TTL.
func NewCatalogCache(source exerciseLister) *CatalogCache {
	return &CatalogCache{
		source: source,
		ttl:    catalogTTL,
		now:    time.Now,
	}
}

// Get returns the cached catalog, reloading it when the snapshot is absent
// or older than the TTL. Callers must not mutate the returned slice.
func (c *CatalogCache) Get(ctx context.Context) ([]Exercise, error) {
	c.mu.Lock()
	if c.snapshot != nil && c.now().Sub(c.loadedAt) < c.ttl {
		snapshot := c.snapshot
		c.mu.Unlock()
		return snapshot, nil
	}
	c.mu.Unlock()

	exercises, err := c.source.GetAllExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("load exercise catalog: %w", err)
	}

	c.mu.Lock()
	c.snapshot = exercises
	c.loadedAt = c.now()
	c.mu.Unlock()
	return exercises, nil
}

// Invalidate drops the snapshot so the next Get reloads. Any collaborator
// that edits exercise data must call this.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}
