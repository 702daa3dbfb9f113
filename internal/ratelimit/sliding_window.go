// Package ratelimit provides an in-memory sliding window request limiter keyed by
// caller identity (typically the client IP address).
//
// Each identity owns an ordered log of admitted request timestamps. On every
// admission check the log is pruned to the trailing window; the request is
// rejected without being recorded once the log holds limit entries.
//
// State lives in process memory only and is lost on restart. Identities that
// stop sending requests keep their (stale) log until Sweep runs, either on
// demand or periodically through Run.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/allisson/storefront/internal/clock"
)

// Decision describes the outcome of an admission check.
type Decision struct {
	Allowed bool
	// Limit is the configured number of requests per window.
	Limit int
	// Remaining is how many more requests the identity may send in the current window.
	Remaining int
	// RetryAfter is how long until the oldest logged request leaves the window.
	// It is zero for admitted requests.
	RetryAfter time.Duration
}

// windowEntry is the request log of a single identity.
type windowEntry struct {
	mu   sync.Mutex
	hits []time.Time
	// retired is set by Sweep once the entry is removed from the map. Callers that
	// raced with the removal must look the identity up again.
	retired bool
}

// SlidingWindow admits at most limit requests per identity in any trailing window.
// The read-prune-compare-append sequence is serialized per identity; distinct
// identities only share the map lock used to find their entry.
type SlidingWindow struct {
	limit  int
	window time.Duration
	clock  clock.Clock

	mu      sync.RWMutex
	entries map[string]*windowEntry
}

// NewSlidingWindow creates a limiter admitting limit requests per window.
func NewSlidingWindow(limit int, window time.Duration, c clock.Clock) (*SlidingWindow, error) {
	if limit < 1 {
		return nil, fmt.Errorf("rate limit must be at least 1, got %d", limit)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	if c == nil {
		c = clock.New()
	}

	return &SlidingWindow{
		limit:   limit,
		window:  window,
		clock:   c,
		entries: make(map[string]*windowEntry),
	}, nil
}

// Limit returns the number of requests admitted per window.
func (s *SlidingWindow) Limit() int {
	return s.limit
}

// Window returns the trailing window duration.
func (s *SlidingWindow) Window() time.Duration {
	return s.window
}

// Allow reports whether a request from identity is admitted, recording it if so.
func (s *SlidingWindow) Allow(identity string) bool {
	decision, err := s.Admit(context.Background(), identity)
	return err == nil && decision.Allowed
}

// Admit runs the admission check for identity. If ctx is done before the decision
// is final the log is left untouched and ctx.Err() is returned.
func (s *SlidingWindow) Admit(ctx context.Context, identity string) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	for {
		entry := s.entry(identity)

		entry.mu.Lock()
		if entry.retired {
			entry.mu.Unlock()
			continue
		}

		if err := ctx.Err(); err != nil {
			entry.mu.Unlock()
			return Decision{}, err
		}

		now := s.clock.Now()
		oldest := entry.prune(now, s.window)

		decision := Decision{Limit: s.limit}
		if len(entry.hits) >= s.limit {
			decision.RetryAfter = oldest.Add(s.window).Sub(now)
		} else {
			entry.hits = append(entry.hits, now)
			decision.Allowed = true
		}
		decision.Remaining = s.limit - len(entry.hits)

		entry.mu.Unlock()
		return decision, nil
	}
}

// Len returns the number of identities currently tracked.
func (s *SlidingWindow) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops every identity whose log holds no request inside the window ending
// at now. It returns the number of identities removed.
func (s *SlidingWindow) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for identity, entry := range s.entries {
		entry.mu.Lock()
		entry.prune(now, s.window)
		if len(entry.hits) == 0 {
			entry.retired = true
			delete(s.entries, identity)
			removed++
		}
		entry.mu.Unlock()
	}
	return removed
}

// Run sweeps idle identities every interval until ctx is done.
func (s *SlidingWindow) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.clock.Now())
		}
	}
}

// entry returns the log for identity, creating it if needed.
func (s *SlidingWindow) entry(identity string) *windowEntry {
	s.mu.RLock()
	entry, ok := s.entries[identity]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if entry, ok = s.entries[identity]; !ok {
		entry = &windowEntry{}
		s.entries[identity] = entry
	}
	return entry
}

// prune keeps only hits younger than window relative to now and returns the
// oldest remaining hit. Caller must hold e.mu.
func (e *windowEntry) prune(now time.Time, window time.Duration) time.Time {
	var oldest time.Time
	kept := e.hits[:0]
	for _, hit := range e.hits {
		if now.Sub(hit) < window {
			kept = append(kept, hit)
			if oldest.IsZero() || hit.Before(oldest) {
				oldest = hit
			}
		}
	}
	e.hits = kept
	return oldest
}
