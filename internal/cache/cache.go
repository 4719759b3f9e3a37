package cache

import (
	"sync"
	"time"

	"github.com/dcs-liberation/theater/pkg/core"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type landPosKey struct {
	Region     string
	Near       core.Point
	ExtendDist float64
}

// LandPosCache remembers nearest-land results. Landmaps never change after
// load, so entries only need to be dropped when a different theater is
// activated (see Purge).
type LandPosCache struct {
	lru    *expirable.LRU[landPosKey, core.Point]
	Hits   SafeCounter
	Misses SafeCounter
}

// NewLandPosCache creates a cache holding up to size results. A zero ttl
// keeps entries until they are evicted.
func NewLandPosCache(size int, ttl time.Duration) *LandPosCache {
	if size <= 0 {
		size = 1
	}
	return &LandPosCache{
		lru: expirable.NewLRU[landPosKey, core.Point](size, nil, ttl),
	}
}

func (c *LandPosCache) Get(region string, near core.Point, extendDist float64) (core.Point, bool) {
	p, ok := c.lru.Get(landPosKey{region, near, extendDist})
	if ok {
		c.Hits.Inc()
	} else {
		c.Misses.Inc()
	}
	return p, ok
}

func (c *LandPosCache) Add(region string, near core.Point, extendDist float64, result core.Point) {
	c.lru.Add(landPosKey{region, near, extendDist}, result)
}

// Purge drops every entry.
func (c *LandPosCache) Purge() {
	c.lru.Purge()
}

func (c *LandPosCache) Len() int {
	return c.lru.Len()
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *SafeCounter) Inc() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}
