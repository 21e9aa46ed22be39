package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRequestCacheLifecycle(t *testing.T) {
	c := NewRequestCache[string]()

	if got := c.Get("k"); got.Status != StatusIdle {
		t.Fatalf("unknown key status = %q; want idle", got.Status)
	}

	data, err := c.Request(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "payload", nil
	})
	if err != nil || data != "payload" {
		t.Fatalf("request = %q, %v", data, err)
	}

	entry := c.Get("k")
	if entry.Status != StatusSucceeded || entry.Data != "payload" {
		t.Fatalf("entry = %+v; want succeeded with payload", entry)
	}
}

func TestRequestCacheSucceededKeySkipsFetch(t *testing.T) {
	c := NewRequestCache[string]()
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := c.Request(context.Background(), "k", fetch); err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch ran %d times; want 1", calls)
	}
}

func TestRequestCacheFailureThenRetry(t *testing.T) {
	c := NewRequestCache[string]()
	boom := errors.New("upstream exploded")

	_, err := c.Request(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v; want fetch error", err)
	}
	if entry := c.Get("k"); entry.Status != StatusFailed || entry.Error != boom.Error() {
		t.Fatalf("entry = %+v; want failed with message", entry)
	}

	// A failed key fetches again on the next request
	data, err := c.Request(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "recovered", nil
	})
	if err != nil || data != "recovered" {
		t.Fatalf("retry = %q, %v", data, err)
	}
	if entry := c.Get("k"); entry.Status != StatusSucceeded || entry.Error != "" {
		t.Fatalf("entry after retry = %+v; want succeeded, error cleared", entry)
	}
}

func TestRequestCacheTruncatesLongErrors(t *testing.T) {
	c := NewRequestCache[string]()
	long := strings.Repeat("x", 2000)

	c.Request(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", errors.New(long)
	})

	entry := c.Get("k")
	if len(entry.Error) != maxErrorLength {
		t.Fatalf("stored error length = %d; want %d", len(entry.Error), maxErrorLength)
	}
}

func TestRequestCacheInvalidate(t *testing.T) {
	c := NewRequestCache[string]()
	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "payload", nil
	}

	c.Request(context.Background(), "k", fetch)
	c.Invalidate("k")
	if got := c.Get("k"); got.Status != StatusIdle {
		t.Fatalf("status after invalidate = %q; want idle", got.Status)
	}

	c.Request(context.Background(), "k", fetch)
	if calls != 2 {
		t.Fatalf("fetch ran %d times; want 2 after invalidate", calls)
	}
}
