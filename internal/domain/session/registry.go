// Package session keeps the mounted dashboard views of the service.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/cowin/internal/domain/dashboard"
)

// Entry is one mounted dashboard view.
type Entry struct {
	ID         string
	Controller *dashboard.Controller
	Created    time.Time
}

// Registry tracks view sessions by ID. Removal never unmounts; callers
// unmount the entries they get back.
type Registry interface {
	// Add records e. When the registry is full the oldest entries are
	// evicted and returned.
	Add(ctx context.Context, e Entry) (evicted []Entry)

	Get(ctx context.Context, id string) (Entry, bool)

	// Remove deletes id and returns the removed entry.
	Remove(ctx context.Context, id string) (Entry, bool)

	// Expire removes every entry created before cutoff.
	Expire(ctx context.Context, cutoff time.Time) []Entry

	// Drain removes and returns every entry.
	Drain(ctx context.Context) []Entry

	Size() int64
}

// node is an element of the creation-ordered list.
type node struct {
	entry      Entry
	prev, next *node
}

func (n *node) reset() {
	n.entry = Entry{}
	n.prev = nil
	n.next = nil
}

// inMemoryRegistry keeps entries in a map plus a doubly linked list ordered
// by insertion: head is the newest, tail the oldest. Bounded mode
// (maxSize > 0) evicts from the tail; unbounded mode never evicts.
type inMemoryRegistry struct {
	mu       sync.RWMutex
	byID     map[string]*node
	head     *node
	tail     *node
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
}

// NewInMemoryRegistry creates an in-memory registry.
func NewInMemoryRegistry(opts ...Option) Registry {
	r := &inMemoryRegistry{
		maxSize: 10_000,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.byID = make(map[string]*node)
	r.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}
	return r
}

func (r *inMemoryRegistry) Add(ctx context.Context, e Entry) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []Entry
	if old, exists := r.byID[e.ID]; exists {
		evicted = append(evicted, r.unlinkLocked(old))
	}
	if r.maxSize > 0 {
		for len(r.byID) >= r.maxSize && r.tail != nil {
			evicted = append(evicted, r.unlinkLocked(r.tail))
		}
	}

	n := r.nodePool.Get().(*node)
	n.entry = e
	n.next = r.head
	if r.head != nil {
		r.head.prev = n
	}
	r.head = n
	if r.tail == nil {
		r.tail = n
	}
	r.byID[e.ID] = n
	r.size.Add(1)
	return evicted
}

func (r *inMemoryRegistry) Get(ctx context.Context, id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	return n.entry, true
}

func (r *inMemoryRegistry) Remove(ctx context.Context, id string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[id]
	if !ok {
		return Entry{}, false
	}
	return r.unlinkLocked(n), true
}

func (r *inMemoryRegistry) Expire(ctx context.Context, cutoff time.Time) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []Entry
	// Insertion order matches creation order, so the walk stops at the
	// first entry that is still fresh.
	for r.tail != nil && r.tail.entry.Created.Before(cutoff) {
		expired = append(expired, r.unlinkLocked(r.tail))
	}
	return expired
}

func (r *inMemoryRegistry) Drain(ctx context.Context) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.byID))
	for r.tail != nil {
		out = append(out, r.unlinkLocked(r.tail))
	}
	return out
}

// unlinkLocked removes n from the list and map and returns its entry.
// Must be called with r.mu held.
func (r *inMemoryRegistry) unlinkLocked(n *node) Entry {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		r.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		r.tail = n.prev
	}
	delete(r.byID, n.entry.ID)
	e := n.entry
	n.reset()
	r.nodePool.Put(n)
	r.size.Add(-1)
	return e
}

// Size returns the number of tracked sessions.
func (r *inMemoryRegistry) Size() int64 {
	return r.size.Load()
}
