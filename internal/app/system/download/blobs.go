package download

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// blob is a fetched document waiting for the client to save it.
type blob struct {
	data        []byte
	filename    string
	contentType string
}

// blobCache holds fetched documents under random ids until their release
// timer fires.
type blobCache struct {
	mu     sync.Mutex
	blobs  map[string]blob
	timers map[string]*time.Timer
}

func newBlobCache() *blobCache {
	return &blobCache{
		blobs:  make(map[string]blob),
		timers: make(map[string]*time.Timer),
	}
}

// put stores b and schedules its release after delay.
func (c *blobCache) put(b blob, delay time.Duration) string {
	id := uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blobs[id] = b
	c.timers[id] = time.AfterFunc(delay, func() { c.release(id) })
	return id
}

func (c *blobCache) get(id string) (blob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.blobs[id]
	return b, ok
}

func (c *blobCache) release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	delete(c.blobs, id)
}

func (c *blobCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blobs)
}

// releaseAll drops every blob and stops pending timers.
func (c *blobCache) releaseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.blobs = make(map[string]blob)
}
