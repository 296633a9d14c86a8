package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time // zero means never
}

// MemoryStore is a mutex-protected in-memory store.
//
// Capacity and TTL are first-class parameters: capacity 0 means unbounded,
// ttl 0 means entries never expire. Both default to 0, which is the
// behavior the service semantics assume (memoized results live until an
// explicit clear). When a capacity is set, the least recently used entry is
// evicted on insert.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]*list.Element
	lru      *list.List
	capacity int
	ttl      time.Duration
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items:    make(map[string]*list.Element),
		lru:      list.New(),
		capacity: capacity,
		ttl:      ttl,
	}
}

// Get retrieves a value. Expired entries are removed lazily here; there is
// no background janitor because the default configuration never expires.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.removeElement(elem)
		return nil, false, nil
	}

	s.lru.MoveToFront(elem)
	return entry.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	// Copy to decouple from caller's buffer
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.items[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = valueCopy
		entry.expiresAt = expiresAt
		s.lru.MoveToFront(elem)
		return nil
	}

	if s.capacity > 0 && s.lru.Len() >= s.capacity {
		if oldest := s.lru.Back(); oldest != nil {
			s.removeElement(oldest)
		}
	}

	elem := s.lru.PushFront(&memoryEntry{
		key:       key,
		value:     valueCopy,
		expiresAt: expiresAt,
	})
	s.items[key] = elem
	return nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.items = make(map[string]*list.Element)
	s.lru = list.New()
	s.mu.Unlock()
	return nil
}

// caller must hold mu
func (s *MemoryStore) removeElement(elem *list.Element) {
	entry := elem.Value.(*memoryEntry)
	s.lru.Remove(elem)
	delete(s.items, entry.key)
}
