package mission

import (
	"errors"
	"sync"

	"github.com/dcs-liberation/theater/internal/campaign"
	"github.com/dcs-liberation/theater/internal/theater"
)

// ErrNoTheater is returned when a query arrives before any campaign is loaded.
var ErrNoTheater = errors.New("no theater loaded")

// Context holds the active campaign and its theater. It is the
// synchronization boundary of the control-point graph: queries run under
// Read, gameplay changes under Mutate.
type Context struct {
	mu       sync.RWMutex
	campaign *campaign.Campaign
	theater  *theater.Theater
}

// NewContext creates an empty Context
func NewContext() *Context {
	return &Context{}
}

// GetCampaign returns the active campaign, or nil
func (mc *Context) GetCampaign() *campaign.Campaign {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.campaign
}

// RegionName returns the name of the active theater's region, or "".
func (mc *Context) RegionName() string {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	if mc.theater == nil {
		return ""
	}
	return mc.theater.Region().Name
}

// SetTheater replaces the active campaign and theater
func (mc *Context) SetTheater(c *campaign.Campaign, t *theater.Theater) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.campaign = c
	mc.theater = t
}

// Read runs fn with shared access to the theater. fn must not mutate it.
func (mc *Context) Read(fn func(t *theater.Theater) error) error {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	if mc.theater == nil {
		return ErrNoTheater
	}
	return fn(mc.theater)
}

// Mutate runs fn with exclusive access to the theater.
func (mc *Context) Mutate(fn func(t *theater.Theater) error) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.theater == nil {
		return ErrNoTheater
	}
	return fn(mc.theater)
}
