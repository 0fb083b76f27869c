package install

import (
	"os"
	"time"
)

type existsEntry struct {
	checkedAt time.Time
	exists    bool
}

// ExistsCache memoizes file-existence checks for a short window so repeated
// setup passes within one invocation avoid redundant stat calls. It is owned
// by the caller and never shared across invocations.
type ExistsCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]existsEntry
}

// NewExistsCache creates a cache whose answers stay valid for ttl.
func NewExistsCache(ttl time.Duration) *ExistsCache {
	return &ExistsCache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]existsEntry{},
	}
}

// Exists reports whether path exists, answering from the cache while the
// previous check is still fresh.
func (c *ExistsCache) Exists(path string) bool {
	if c == nil {
		_, err := os.Stat(path)
		return err == nil
	}

	now := c.now()
	if entry, ok := c.entries[path]; ok && now.Sub(entry.checkedAt) < c.ttl {
		return entry.exists
	}

	_, err := os.Stat(path)
	exists := err == nil
	c.entries[path] = existsEntry{checkedAt: now, exists: exists}
	return exists
}

// Invalidate drops the cached answer for path, forcing the next check to hit
// the filesystem.
func (c *ExistsCache) Invalidate(path string) {
	if c == nil {
		return
	}
	delete(c.entries, path)
}
