package prescription

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeLister counts loads and can be told to fail.
type fakeLister struct {
	loads int
	fail  error
}

func (f *fakeLister) GetAllExercises(_ context.Context) ([]Exercise, error) {
	f.loads++
	if f.fail != nil {
		return nil, f.fail
	}
	return []Exercise{{ID: "push-up"}}, nil
}

func TestCatalogCacheServesSnapshotWithinTTL(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	cache := NewCatalogCache(lister)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	ctx := context.Background()
	for range 3 {
		if _, err := cache.Get(ctx); err != nil {
			t.Fatalf("Get() error: %v", err)
		}
	}
	if lister.loads != 1 {
		t.Errorf("loads = %d, want 1", lister.loads)
	}

	// Just inside the TTL.
	now = now.Add(catalogTTL - time.Second)
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if lister.loads != 1 {
		t.Errorf("loads after fresh re-read = %d, want 1", lister.loads)
	}

	// Past the TTL.
	now = now.Add(2 * time.Second)
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if lister.loads != 2 {
		t.Errorf("loads after expiry = %d, want 2", lister.loads)
	}
}

func TestCatalogCacheInvalidateForcesReload(t *testing.T) {
	t.Parallel()

	lister := &fakeLister{}
	cache := NewCatalogCache(lister)
	ctx := context.Background()

	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Get(ctx); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if lister.loads != 2 {
		t.Errorf("loads = %d, want 2", lister.loads)
	}
}

func TestCatalogCachePropagatesLoadError(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("database gone")
	lister := &fakeLister{fail: sentinel}
	cache := NewCatalogCache(lister)

	if _, err := cache.Get(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("Get() error = %v, want wrapped %v", err, sentinel)
	}
}
