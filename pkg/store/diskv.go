package store

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

// DiskAdapter persists collections with diskv, one flat key per
// collection. Writes are queued so a slow disk never blocks the next
// interaction; the most recent payload per key wins.
type DiskAdapter struct {
	d        *diskv.Diskv
	basePath string

	mu      sync.Mutex
	cond    *sync.Cond
	pending map[string][]byte
	writing bool
}

// OpenDisk creates a DiskAdapter rooted at the configured base path.
func OpenDisk(cfg Config) (*DiskAdapter, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	a := &DiskAdapter{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
		pending:  make(map[string][]byte),
	}
	a.cond = sync.NewCond(&a.mu)
	return a, nil
}

// BasePath is the directory backing the adapter, used by Watch.
func (a *DiskAdapter) BasePath() string {
	return a.basePath
}

// Load reads a collection payload. An absent key is (nil, nil): the
// store substitutes an empty collection.
func (a *DiskAdapter) Load(key string) ([]byte, error) {
	if !a.d.Has(key) {
		return nil, nil
	}
	data, err := a.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

// Save queues the payload for the given key and returns immediately.
// A single background writer drains the queue, keeping only the latest
// payload per key.
func (a *DiskAdapter) Save(key string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending[key] = data
	if !a.writing {
		a.writing = true
		go a.drain()
	}
	return nil
}

func (a *DiskAdapter) drain() {
	for {
		a.mu.Lock()
		var key string
		var data []byte
		for k, v := range a.pending {
			key, data = k, v
			break
		}
		if key == "" {
			a.writing = false
			a.cond.Broadcast()
			a.mu.Unlock()
			return
		}
		delete(a.pending, key)
		a.mu.Unlock()

		if err := a.d.Write(key, data); err != nil {
			fmt.Fprintf(os.Stderr, "store: write %s: %v\n", key, err)
		}
	}
}

// Flush blocks until every queued write has reached disk. Short-lived
// CLI commands call this before exiting.
func (a *DiskAdapter) Flush() {
	a.mu.Lock()
	for a.writing || len(a.pending) > 0 {
		a.cond.Wait()
	}
	a.mu.Unlock()
}
