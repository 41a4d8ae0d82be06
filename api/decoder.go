package api

import (
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/voxelsplace/voxview/vox"
)

type cacheKey struct {
	sum uint64
	n   int
}

// Decoder decodes .vox bytes and optionally memoises the resulting models
// by content hash. Cached models are shared and must not be mutated.
// A Decoder is safe for concurrent use.
type Decoder struct {
	Options vox.Options

	mu       sync.Mutex
	capacity int
	models   map[cacheKey]*vox.Model
	order    []cacheKey
	hits     int
}

// NewDecoder returns a decoder that keeps up to capacity models.
// capacity <= 0 disables caching.
func NewDecoder(opts vox.Options, capacity int) *Decoder {
	d := &Decoder{Options: opts, capacity: capacity}
	if capacity > 0 {
		d.models = make(map[cacheKey]*vox.Model, capacity)
	}
	return d
}

// Decode unwraps compressed input, then parses and extracts the model.
func (d *Decoder) Decode(data []byte) (*vox.Model, error) {
	raw, _, err := Unwrap(data)
	if err != nil {
		return nil, err
	}
	if d.capacity <= 0 {
		return vox.Decode(raw, d.Options)
	}
	key := cacheKey{sum: xxhash.Sum64(raw), n: len(raw)}
	d.mu.Lock()
	if m, ok := d.models[key]; ok {
		d.hits++
		d.mu.Unlock()
		return m, nil
	}
	d.mu.Unlock()

	m, err := vox.Decode(raw, d.Options)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.models[key]; !ok {
		if len(d.order) >= d.capacity {
			delete(d.models, d.order[0])
			d.order = d.order[1:]
		}
		d.models[key] = m
		d.order = append(d.order, key)
	}
	return m, nil
}

// Hits reports how many decodes were served from the cache.
func (d *Decoder) Hits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits
}
