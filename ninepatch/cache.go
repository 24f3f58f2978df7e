package ninepatch

import (
	"log"
	"sync"

	"git.sr.ht/~gioverse/wallpaper/async"
)

// Cache owns the textures of a set of resources, handing out one Texture per
// ResourceID. Lookups are serialized, so first access to a texture through the
// cache never races.
//
// The zero value is not usable, Decoder must be set. Scheduler defaults to a
// fixed worker pool.
type Cache struct {
	// Decoder used by every texture in the cache.
	Decoder Decoder
	// Scheduler runs preloads.
	Scheduler async.Scheduler
	// updated reports that a preload has finished.
	// Useful for invalidating the window.
	updated chan struct{}
	// init allows Cache to lazily allocate on first use.
	init sync.Once
	// mu guards lookup.
	mu     sync.Mutex
	lookup map[ResourceID]*Texture
}

// DefaultPreloadWorkers is the worker count of the default scheduler.
const DefaultPreloadWorkers = 2

func (c *Cache) initialize() {
	c.updated = make(chan struct{}, 1)
	c.lookup = make(map[ResourceID]*Texture)
	if c.Scheduler == nil {
		c.Scheduler = &async.FixedWorkerPool{Workers: DefaultPreloadWorkers}
	}
}

// Texture returns the texture for id, allocating it on first request.
// The texture is not decoded until it is used.
func (c *Cache) Texture(id ResourceID) *Texture {
	c.init.Do(c.initialize)
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.lookup[id]
	if !ok {
		t = NewTexture(c.Decoder, id)
		c.lookup[id] = t
	}
	return t
}

// Preload schedules the textures to be decoded in the background, so that
// the first draw does not pay for it. Failures are logged; the texture
// reports them again when used.
func (c *Cache) Preload(ids ...ResourceID) {
	for _, id := range ids {
		t := c.Texture(id)
		if t.Loaded() {
			continue
		}
		c.Scheduler.Schedule(func() {
			if _, err := t.Bitmap(); err != nil {
				log.Printf("preloading texture: %v", err)
			}
			c.update()
		})
	}
}

// Updated returns a channel that reports whether a preload has finished.
// Integrate this into the gio event loop to, for example, invalidate the
// window.
//
// 	case <-cache.Updated():
//		w.Invalidate()
//
func (c *Cache) Updated() <-chan struct{} {
	c.init.Do(c.initialize)
	return c.updated
}

// Len reports the number of textures held.
func (c *Cache) Len() int {
	c.init.Do(c.initialize)
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lookup)
}

// update signals to the outside world that some texture has loaded.
func (c *Cache) update() {
	select {
	case c.updated <- struct{}{}:
	default:
	}
}
