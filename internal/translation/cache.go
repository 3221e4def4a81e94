package translation

import (
	"sort"
	"sync"

	"codeberg.org/snonux/anuvad/internal/engine"
)

// Handle is a loaded tokenizer and model for one model name.
type Handle struct {
	Name      string
	Tokenizer engine.Tokenizer
	Model     engine.Model
}

// ModelCache maps model names to loaded handles. Entries are never evicted
// and failed loads are never stored.
//
// The mutex only keeps map access safe. It does not deduplicate loads: two
// concurrent misses for the same name both fetch and the later Add wins.
type ModelCache struct {
	mu      sync.RWMutex
	handles map[string]*Handle
}

// NewModelCache creates an empty cache.
func NewModelCache() *ModelCache {
	return &ModelCache{
		handles: make(map[string]*Handle),
	}
}

// Add stores a handle, replacing any previous entry for the name.
func (c *ModelCache) Add(h *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles[h.Name] = h
}

// Get retrieves a handle from the cache.
func (c *ModelCache) Get(name string) (*Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handles[name]
	return h, ok
}

// Len returns the number of cached handles.
func (c *ModelCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}

// Names returns the cached model names, sorted.
func (c *ModelCache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.handles))
	for name := range c.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
