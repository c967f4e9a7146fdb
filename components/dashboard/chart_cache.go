package dashboard

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// RenderCache memoizes rendered chart HTML keyed by chartKey.String().
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// chartKey identifies one rendering of a chart widget. Persona and theme are
// part of the key because the same widget renders differently per persona.
type chartKey struct {
	Instance  string
	ChartType string
	Persona   Persona
	Theme     string
	Config    map[string]any
}

func (k chartKey) String() string {
	return strings.Join([]string{k.Instance, k.ChartType, string(k.Persona), k.Theme, configHash(k.Config)}, "|")
}

// CacheStats counts lookups served by a chart cache.
type CacheStats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

// ChartCache keeps rendered charts in memory until their TTL passes.
// Concurrent misses on one key share a single render. A non-positive TTL
// disables storage.
type ChartCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	charts  map[string]renderedChart
	flights singleflight.Group
	hits    atomic.Uint64
	misses  atomic.Uint64
}

type renderedChart struct {
	html      string
	expiresAt time.Time
}

// NewChartCache builds a cache whose entries live for ttl.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:    ttl,
		now:    time.Now,
		charts: make(map[string]renderedChart),
	}
}

// GetOrRender returns the stored markup for key or renders it. Failed renders
// are not stored.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	if html, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return html, nil
	}
	c.misses.Add(1)
	v, err, _ := c.flights.Do(key, func() (any, error) {
		if html, ok := c.lookup(key); ok {
			return html, nil
		}
		html, err := render()
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.charts[key] = renderedChart{html: html, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return html, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Len reports the number of stored charts, expired ones included until they
// are next looked up or pruned.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.charts)
}

// Prune drops expired charts and returns how many were removed.
func (c *ChartCache) Prune() int {
	if c == nil {
		return 0
	}
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, chart := range c.charts {
		if now.After(chart.expiresAt) {
			delete(c.charts, key)
			removed++
		}
	}
	return removed
}

// Stats snapshots the hit and miss counters.
func (c *ChartCache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Entries: c.Len()}
}

func (c *ChartCache) lookup(key string) (string, bool) {
	c.mu.RLock()
	chart, ok := c.charts[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if c.now().After(chart.expiresAt) {
		c.mu.Lock()
		delete(c.charts, key)
		c.mu.Unlock()
		return "", false
	}
	return chart.html, true
}

// configHash digests widget configuration. encoding/json sorts map keys, so
// equal maps hash equally.
func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
