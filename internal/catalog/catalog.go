package catalog

import (
	"errors"
	"sort"
	"sync"

	"movie-catalog/internal/metrics"
)

// ErrOutOfRange is returned by Get for an index at or past Size.
var ErrOutOfRange = errors.New("catalog index out of range")

// Event describes one successful insert. Index is the entry's position at
// the moment of insertion; concurrent inserts may shift it immediately
// afterwards, so observers needing a durable handle must use the movie ID.
type Event struct {
	Entry *Entry
	Index int
}

// Listener receives insert events. Listeners run on the inserting
// goroutine, after the catalog lock has been released.
type Listener func(Event)

// Catalog is the title-ordered, deduplicated collection of entries.
// All methods are safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries []*Entry
	byID    map[int]*Entry

	listenerMu sync.RWMutex
	listeners  []Listener
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byID: make(map[int]*Entry),
	}
}

// Subscribe registers a listener for insert events. Subscription is
// expected at wiring time; events that fired before Subscribe are lost.
func (c *Catalog) Subscribe(l Listener) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Insert adds entry, keeping the catalog sorted by case-insensitive title.
// Entries whose title compares equal are placed after the existing ones
// (stable tie-break, insertion order). The returned index is valid only at
// the instant of return.
//
// Inserting a movie ID already present replaces the existing entry in
// place. A restart restores entries from the store without their artwork;
// the next scan re-resolves the same IDs, and replacement is how the fresh
// rasters land. The original AddedAt is kept so replacement does not look
// like a new acquisition.
func (c *Catalog) Insert(entry *Entry) int {
	c.mu.Lock()

	if old, exists := c.byID[entry.Movie.ID]; exists {
		entry.AddedAt = old.AddedAt
		idx := c.indexOfLocked(entry.Movie.ID)
		if old.orderKey() == entry.orderKey() {
			c.entries[idx] = entry
		} else {
			// Title changed upstream; re-place under the new key.
			c.entries = append(c.entries[:idx], c.entries[idx+1:]...)
			idx = c.insertSortedLocked(entry)
		}
		c.byID[entry.Movie.ID] = entry
		c.mu.Unlock()

		// One event either way, so the store listener upserts the
		// refreshed record.
		c.notify(Event{Entry: entry, Index: idx})
		return idx
	}

	idx := c.insertSortedLocked(entry)
	c.byID[entry.Movie.ID] = entry

	size := len(c.entries)
	c.mu.Unlock()

	metrics.CatalogInsertsTotal.Inc()
	metrics.CatalogSize.Set(float64(size))

	// Notify outside the lock: a listener reading the catalog back must not
	// deadlock against the insert that woke it.
	c.notify(Event{Entry: entry, Index: idx})

	return idx
}

// insertSortedLocked places entry at its sorted position and returns the
// index. Caller holds c.mu.
func (c *Catalog) insertSortedLocked(entry *Entry) int {
	key := entry.orderKey()
	idx := sort.Search(len(c.entries), func(i int) bool {
		return c.entries[i].orderKey() > key
	})

	c.entries = append(c.entries, nil)
	copy(c.entries[idx+1:], c.entries[idx:])
	c.entries[idx] = entry
	return idx
}

// Size returns the number of entries.
func (c *Catalog) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get returns the entry at index, or ErrOutOfRange.
func (c *Catalog) Get(index int) (*Entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.entries) {
		return nil, ErrOutOfRange
	}
	return c.entries[index], nil
}

// FindByID returns the entry with the given movie ID.
func (c *Catalog) FindByID(id int) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.byID[id]
	return entry, ok
}

// Entries returns a snapshot of the catalog in title order. The slice is a
// copy; the entries themselves are shared and immutable.
func (c *Catalog) Entries() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snapshot := make([]*Entry, len(c.entries))
	copy(snapshot, c.entries)
	return snapshot
}

func (c *Catalog) notify(event Event) {
	c.listenerMu.RLock()
	listeners := make([]Listener, len(c.listeners))
	copy(listeners, c.listeners)
	c.listenerMu.RUnlock()

	for _, l := range listeners {
		l(event)
	}
}

// indexOfLocked finds an entry's position by ID. Caller holds c.mu.
func (c *Catalog) indexOfLocked(id int) int {
	for i, e := range c.entries {
		if e.Movie.ID == id {
			return i
		}
	}
	return -1
}
