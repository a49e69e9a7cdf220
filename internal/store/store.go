package store

import (
	"sync"

	"github.com/mmcdole/bruschetta/internal/domain"
)

// ResultStore implements domain.ResultStore in memory.
// Entries keep the order in which they were seeded.
type ResultStore struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*domain.Entry
	version uint64

	subMu       sync.RWMutex
	subscribers []func(domain.StoreChange)
}

// NewResultStore creates an empty store.
func NewResultStore() *ResultStore {
	return &ResultStore{entries: make(map[string]*domain.Entry)}
}

// Subscribe registers fn to be called after every mutation.
// fn runs on the writer's goroutine and must not write to the store.
func (s *ResultStore) Subscribe(fn func(domain.StoreChange)) {
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.subMu.Unlock()
}

func (s *ResultStore) notify(change domain.StoreChange) {
	s.subMu.RLock()
	subs := s.subscribers
	s.subMu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}

// === Writes ===

func (s *ResultStore) Reset() {
	s.mu.Lock()
	s.order = nil
	s.entries = make(map[string]*domain.Entry)
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notify(domain.StoreChange{Kind: domain.StoreReset, Version: v})
}

func (s *ResultStore) Seed(titles []domain.Title) []domain.Entry {
	s.mu.Lock()
	seeded := make([]domain.Entry, 0, len(titles))
	for _, t := range titles {
		key := t.Key()
		if _, exists := s.entries[key]; exists {
			continue
		}
		e := &domain.Entry{Title: t, State: domain.RatingPending}
		s.entries[key] = e
		s.order = append(s.order, key)
		seeded = append(seeded, *e)
	}
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notify(domain.StoreChange{Kind: domain.StoreSeeded, Version: v})
	return seeded
}

func (s *ResultStore) MarkAvailable(key string, review *domain.Review) bool {
	return s.resolve(key, func(e *domain.Entry) {
		e.State = domain.RatingAvailable
		e.Review = review
	})
}

func (s *ResultStore) MarkUnavailable(key, reason string) bool {
	return s.resolve(key, func(e *domain.Entry) {
		e.State = domain.RatingUnavailable
		e.Reason = reason
	})
}

// resolve applies a terminal transition to a pending entry.
func (s *ResultStore) resolve(key string, apply func(*domain.Entry)) bool {
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok || e.State != domain.RatingPending {
		s.mu.Unlock()
		return false
	}
	apply(e)
	s.version++
	v := s.version
	s.mu.Unlock()

	s.notify(domain.StoreChange{Kind: domain.StoreEntryUpdated, Key: key, Version: v})
	return true
}

// === Reads ===

func (s *ResultStore) Get(key string) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return domain.Entry{}, false
	}
	return *e, true
}

func (s *ResultStore) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Entry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.entries[key])
	}
	return out
}

func (s *ResultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Version increases on every mutation.
func (s *ResultStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
