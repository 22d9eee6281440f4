// Package store keeps recently generated hook lines per brand and topic so new
// generations can be steered away from repeats.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Defaults for history retention
const (
	DefaultTTL      = 7 * 24 * time.Hour
	DefaultMaxLines = 50
)

// HistoryStore records lines already produced for a history key.
type HistoryStore interface {
	// Recent returns up to limit of the most recently remembered lines, oldest first.
	Recent(ctx context.Context, key string, limit int) ([]string, error)
	// Remember appends lines to the key's history and refreshes its expiry.
	Remember(ctx context.Context, key string, lines []string) error
	// Close releases any resources held by the store.
	Close() error
}

// Error represents a history store failure
type Error struct {
	Op    string
	Key   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("history store %s %q: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("history store %s %q", e.Op, e.Key)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns a Redis-backed store when redisURL is set, otherwise an in-memory store.
func New(ctx context.Context, redisURL string, ttl time.Duration) (HistoryStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return NewMemoryStore(ttl, DefaultMaxLines), nil
	}
	return NewRedisStore(ctx, redisURL, ttl, DefaultMaxLines)
}

func cleanLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
