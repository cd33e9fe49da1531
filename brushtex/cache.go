package brushtex

import (
	"log/slog"

	"github.com/gogpu/inkwell/internal/cache"
)

// Cache memoizes generated masks. Generation is deterministic, so the
// soft limit can be small; an evicted mask regenerates identically.
type Cache struct {
	masks *cache.Cache[Shape, Mask]
	log   *slog.Logger
}

// NewCache creates a mask cache. The shape set is closed and small, so
// the cache holds every shape once generated.
func NewCache(log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}
	return &Cache{
		masks: cache.New[Shape, Mask](0),
		log:   log,
	}
}

// Get returns the mask for a shape, generating it on first use.
func (c *Cache) Get(shape Shape) Mask {
	return c.masks.GetOrCreate(shape, func() Mask {
		return Generate(shape)
	})
}

// GetByName resolves a document shape identifier and returns its mask.
// Unknown names fall back to the default soft circle with a diagnostic.
func (c *Cache) GetByName(name string) Mask {
	shape, ok := ParseShape(name)
	if !ok {
		c.log.Warn("unknown brush shape, using default",
			"shape", name,
			"fallback", DefaultShape.String())
	}
	return c.Get(shape)
}

// Len returns the number of generated masks resident in the cache.
func (c *Cache) Len() int { return c.masks.Len() }

// Clear drops all generated masks.
func (c *Cache) Clear() { c.masks.Clear() }
