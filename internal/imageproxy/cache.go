package imageproxy

import "sync"

// Entry is a transformed image ready to serve.
type Entry struct {
	Data     []byte
	MimeType string
}

// Cache stores transformed images by file id. Implementations must be safe
// for concurrent use; they are not required to coalesce concurrent misses.
type Cache interface {
	Get(fileID string) (Entry, bool)
	Put(fileID string, e Entry)
	Len() int
	Size() int64
}

// MemoryCache is an unbounded in-memory Cache. Entries are never evicted
// or expired and live until the process exits. A Put for an existing key
// replaces the previous entry (last write wins).
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	size    int64
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

// Get returns the entry for fileID, if any.
func (c *MemoryCache) Get(fileID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[fileID]

	return e, ok
}

// Put stores e under fileID, replacing any existing entry.
func (c *MemoryCache) Put(fileID string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[fileID]; ok {
		c.size -= int64(len(old.Data))
	}

	c.entries[fileID] = e
	c.size += int64(len(e.Data))
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Size returns the total number of cached image bytes.
func (c *MemoryCache) Size() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.size
}
