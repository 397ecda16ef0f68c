package server

import (
	"sync"
	"time"

	"github.com/mj1618/bridgectl/internal/model"
)

// SelectionCache provides a TTL-based cache for the inspector page's
// selected element. Rapid tool calls reuse the last grab instead of
// re-querying the page.
type SelectionCache struct {
	mu        sync.Mutex
	sel       model.Selection
	timestamp time.Time
	ttl       time.Duration
}

// NewSelectionCache creates a new cache. A ttl of 0 disables caching.
func NewSelectionCache(ttl time.Duration) *SelectionCache {
	return &SelectionCache{ttl: ttl}
}

// Get returns the cached selection if within TTL.
func (c *SelectionCache) Get() (model.Selection, bool) {
	if c.ttl == 0 {
		return model.Selection{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timestamp.IsZero() || time.Since(c.timestamp) >= c.ttl {
		return model.Selection{}, false
	}
	return c.sel, true
}

// Put stores a freshly grabbed selection.
func (c *SelectionCache) Put(sel model.Selection) {
	if c.ttl == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sel = sel
	c.timestamp = time.Now()
}

// Invalidate drops the cached selection. Called after any action that may
// change the device screen.
func (c *SelectionCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timestamp = time.Time{}
}
