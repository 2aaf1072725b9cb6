// Package dedupe tracks outfit signatures so the assembler evaluates each
// distinct item combination at most once.
package dedupe

import (
	"sort"
	"strings"
	"sync"

	"github.com/okian/ensemble/internal/domain/model"
)

// Deduper records seen outfit signatures.
type Deduper interface {
	// SeenAndRecord atomically checks if a signature was seen and records
	// it if not. Returns true if it was already seen.
	SeenAndRecord(signature string) bool

	// Size returns the number of recorded signatures.
	Size() int
}

// Signature derives an order-independent identity for a set of items: the
// same items in any slot order produce the same signature.
func Signature(items []model.Item) string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// inMemoryDeduper implements Deduper with a bounded map and FIFO eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	order   []string
	maxSize int // 0 or negative = unbounded
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(signature string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[signature]; ok {
		return true
	}

	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		// Evict the oldest signature to stay bounded.
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.seen, oldest)
	}

	d.seen[signature] = struct{}{}
	if d.maxSize > 0 {
		d.order = append(d.order, signature)
	}
	return false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
