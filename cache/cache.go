// Package cache provides memoization for repeated simulation runs. Sweeps
// revisit the same parameter points when refining a grid, and a run is pure
// given its parameters, so caching by parameter hash is safe.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"sort"
	"sync"

	"github.com/lumen-phi/go-resonance/metric"
	"github.com/lumen-phi/go-resonance/simulate"
)

// hashParams creates a deterministic hash of a parameter map.
func hashParams(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	buf := make([]byte, 8)
	for _, k := range keys {
		h.Write([]byte(k))
		binary.BigEndian.PutUint64(buf, math.Float64bits(params[k]))
		h.Write(buf)
	}
	return string(h.Sum(nil))
}

// ResultCache caches full run results keyed by parameter hash.
type ResultCache struct {
	mu        sync.RWMutex
	cache     map[string]*simulate.Result
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewResultCache creates a cache with the given maximum size. When full,
// an arbitrary entry is evicted. Zero means unlimited.
func NewResultCache(maxSize int) *ResultCache {
	return &ResultCache{
		cache:   make(map[string]*simulate.Result),
		maxSize: maxSize,
	}
}

// Get retrieves a cached result, or nil.
func (c *ResultCache) Get(params map[string]float64) *simulate.Result {
	key := hashParams(params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if res, ok := c.cache[key]; ok {
		c.hits++
		return res
	}
	c.misses++
	return nil
}

// Put stores a result.
func (c *ResultCache) Put(params map[string]float64, res *simulate.Result) {
	key := hashParams(params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			c.evictions++
			break
		}
	}
	c.cache[key] = res
}

// GetOrCompute retrieves from cache or computes and caches the result.
func (c *ResultCache) GetOrCompute(params map[string]float64, compute func() *simulate.Result) *simulate.Result {
	if res := c.Get(params); res != nil {
		return res
	}
	res := compute()
	c.Put(params, res)
	return res
}

// Size returns the current number of cached entries.
func (c *ResultCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Clear removes all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*simulate.Result)
}

// Stats describes cache effectiveness.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *ResultCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:      len(c.cache),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

// ScoreCache caches scalar scores instead of full results. More memory
// efficient for sweeps that only keep the settled mean.
type ScoreCache struct {
	mu      sync.RWMutex
	cache   map[string]float64
	maxSize int
	hits    int64
	misses  int64
}

// NewScoreCache creates a score cache.
func NewScoreCache(maxSize int) *ScoreCache {
	return &ScoreCache{
		cache:   make(map[string]float64),
		maxSize: maxSize,
	}
}

// Get retrieves a cached score.
func (c *ScoreCache) Get(params map[string]float64) (float64, bool) {
	key := hashParams(params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if score, ok := c.cache[key]; ok {
		c.hits++
		return score, true
	}
	c.misses++
	return 0, false
}

// Put stores a score.
func (c *ScoreCache) Put(params map[string]float64, score float64) {
	key := hashParams(params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			break
		}
	}
	c.cache[key] = score
}

// GetOrCompute retrieves from cache or computes and caches.
func (c *ScoreCache) GetOrCompute(params map[string]float64, compute func() float64) float64 {
	if score, ok := c.Get(params); ok {
		return score
	}
	score := compute()
	c.Put(params, score)
	return score
}

// Size returns the current cache size.
func (c *ScoreCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// HitRate returns the fraction of lookups served from cache.
func (c *ScoreCache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

// Sweeper evaluates a base loop under parameter overrides with score
// caching. The score is the settled mean resonance.
type Sweeper struct {
	base   simulate.Loop
	scores *ScoreCache
}

// NewSweeper creates a sweeper over the given loop.
func NewSweeper(base *simulate.Loop, cacheSize int) *Sweeper {
	return &Sweeper{base: *base, scores: NewScoreCache(cacheSize)}
}

// Mean runs the base loop with the given coupling strength and listener
// frequency, returning the settled mean resonance. Results are cached.
func (s *Sweeper) Mean(k, listenerFreq float64) float64 {
	params := map[string]float64{"k": k, "listener": listenerFreq}
	return s.scores.GetOrCompute(params, func() float64 {
		loop := s.base
		loop.Config.K = k
		loop.Listeners = append([]simulate.Osc(nil), s.base.Listeners...)
		for i := range loop.Listeners {
			loop.Listeners[i].Frequency = listenerFreq
		}
		res := loop.Run()
		return metric.TrailingMean(res.Resonances(), metric.DefaultSettleFraction)
	})
}

// Cache returns the underlying score cache for inspection.
func (s *Sweeper) Cache() *ScoreCache {
	return s.scores
}
