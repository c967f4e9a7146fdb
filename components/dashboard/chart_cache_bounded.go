package dashboard

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// BoundedChartCache keeps rendered chart HTML in a ristretto cache whose total
// size is capped at maxBytes. Entries expire after ttl.
type BoundedChartCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

// NewBoundedChartCache builds a size-bounded chart cache.
func NewBoundedChartCache(maxBytes int64, ttl time.Duration) (*BoundedChartCache, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("dashboard: chart cache size must be positive, got %d", maxBytes)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &BoundedChartCache{c: c, ttl: ttl}, nil
}

// GetOrRender returns a cached entry or renders and stores a new one.
func (b *BoundedChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if v, ok := b.c.Get(key); ok {
		if html, ok := v.(string); ok {
			return html, nil
		}
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	if b.ttl > 0 {
		b.c.SetWithTTL(key, html, int64(len(html)), b.ttl)
		b.c.Wait()
	}
	return html, nil
}

// Close releases the cache goroutines.
func (b *BoundedChartCache) Close() {
	b.c.Close()
}
