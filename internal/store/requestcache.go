package store

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle of one keyed request
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// maxErrorLength bounds stored failure messages; verbose upstream error
// bodies must not grow the cache without limit
const maxErrorLength = 512

// Entry is the tracked state of one keyed request
type Entry[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Fetcher produces the value for a key
type Fetcher[T any] func(ctx context.Context) (T, error)

// RequestCache deduplicates and tracks the lifecycle of idempotent fetches
// identified by a derived key. Transitions per key are idle → loading →
// succeeded|failed; a new request for the same key restarts the cycle.
// Concurrent requests for one key share a single fetch through
// singleflight; the last completion wins and callers must tolerate a stale
// load being superseded.
type RequestCache[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	group   singleflight.Group
}

func NewRequestCache[T any]() *RequestCache[T] {
	return &RequestCache[T]{entries: make(map[string]Entry[T])}
}

// Get returns the entry for key, defaulting to an idle entry for unknown keys
func (c *RequestCache[T]) Get(key string) Entry[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.entries[key]; ok {
		return entry
	}
	return Entry[T]{Status: StatusIdle}
}

// Request runs the fetch for key unless an identical fetch is already in
// flight, in which case the caller joins it. A key that already succeeded
// returns the cached data without fetching again.
func (c *RequestCache[T]) Request(ctx context.Context, key string, fetch Fetcher[T]) (T, error) {
	if entry := c.Get(key); entry.Status == StatusSucceeded {
		return entry.Data, nil
	}

	c.setLoading(key)

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		c.setFailed(key, err)
		var zero T
		return zero, err
	}

	data := result.(T)
	c.setSucceeded(key, data)
	return data, nil
}

// Invalidate drops the entry so the next request re-fetches
func (c *RequestCache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Reset drops every entry
func (c *RequestCache[T]) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]Entry[T])
	c.mu.Unlock()
}

func (c *RequestCache[T]) setLoading(key string) {
	c.mu.Lock()
	entry := c.entries[key]
	entry.Status = StatusLoading
	entry.Error = ""
	c.entries[key] = entry
	c.mu.Unlock()
}

func (c *RequestCache[T]) setSucceeded(key string, data T) {
	c.mu.Lock()
	c.entries[key] = Entry[T]{Status: StatusSucceeded, Data: data}
	c.mu.Unlock()
}

func (c *RequestCache[T]) setFailed(key string, err error) {
	message := err.Error()
	if len(message) > maxErrorLength {
		message = message[:maxErrorLength]
	}
	c.mu.Lock()
	c.entries[key] = Entry[T]{Status: StatusFailed, Error: message}
	c.mu.Unlock()
}
