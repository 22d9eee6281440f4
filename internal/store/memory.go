package store

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	lines     []string
	expiresAt time.Time
}

// MemoryStore is a process-local HistoryStore with per-key expiry.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	ttl      time.Duration
	maxLines int
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore. Zero values fall back to defaults.
func NewMemoryStore(ttl time.Duration, maxLines int) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &MemoryStore{
		entries:  make(map[string]*memoryEntry),
		ttl:      ttl,
		maxLines: maxLines,
		now:      time.Now,
	}
}

// Recent implements HistoryStore.
func (s *MemoryStore) Recent(_ context.Context, key string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}

	lines := e.lines
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out, nil
}

// Remember implements HistoryStore.
func (s *MemoryStore) Remember(_ context.Context, key string, lines []string) error {
	lines = cleanLines(lines)
	if len(lines) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.entries[key]
	if !ok || now.After(e.expiresAt) {
		e = &memoryEntry{}
		s.entries[key] = e
	}
	e.lines = append(e.lines, lines...)
	if len(e.lines) > s.maxLines {
		e.lines = append([]string(nil), e.lines[len(e.lines)-s.maxLines:]...)
	}
	e.expiresAt = now.Add(s.ttl)
	return nil
}

// Close implements HistoryStore.
func (s *MemoryStore) Close() error {
	return nil
}
