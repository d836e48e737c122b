// Package cache implements the two-tier cache service: a bounded in-process
// map in front of a persistent key-value store.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
	elem      *list.Element
}

// memoryTier is a thread-safe, size-bounded map with insertion-order
// eviction. Reads do not promote an entry, so eviction is FIFO rather than
// true LRU.
type memoryTier struct {
	mu         sync.Mutex
	entries    map[string]*memoryEntry
	order      *list.List // front = oldest inserted
	maxEntries int
	now        func() time.Time
}

func newMemoryTier(maxEntries int, now func() time.Time) *memoryTier {
	if now == nil {
		now = time.Now
	}

	return &memoryTier{
		entries:    make(map[string]*memoryEntry),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        now,
	}
}

// get returns the value for key, evicting and missing on expiry.
func (m *memoryTier) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(entry.expiresAt) {
		m.removeLocked(entry)

		return nil, false
	}

	return entry.value, true
}

// set inserts or replaces the value for key. A replaced key keeps its
// original insertion-order position. On overflow the oldest-inserted key is
// evicted.
func (m *memoryTier) set(key string, value []byte, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt

		return
	}

	if len(m.entries) >= m.maxEntries {
		if oldest := m.order.Front(); oldest != nil {
			m.removeLocked(oldest.Value.(*memoryEntry))
		}
	}

	entry := &memoryEntry{key: key, value: value, expiresAt: expiresAt}
	entry.elem = m.order.PushBack(entry)
	m.entries[key] = entry
}

func (m *memoryTier) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[key]; ok {
		m.removeLocked(entry)
	}
}

func (m *memoryTier) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

func (m *memoryTier) removeLocked(entry *memoryEntry) {
	m.order.Remove(entry.elem)
	delete(m.entries, entry.key)
}
