package repository

import (
	"context"
	"testing"
	"time"
)

func TestMemoryResponseCacheRoundTrip(t *testing.T) {
	cache := NewMemoryResponseCache()
	ctx := context.Background()

	var missed interface{}
	if hit, err := cache.Get(ctx, "k", &missed); err != nil || hit {
		t.Fatalf("get before set = %v, %v; want miss", hit, err)
	}

	stored := map[string]interface{}{"totalAmount": 1000.0}
	if err := cache.Set(ctx, "k", stored, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var loaded interface{}
	hit, err := cache.Get(ctx, "k", &loaded)
	if err != nil || !hit {
		t.Fatalf("get = %v, %v; want hit", hit, err)
	}
	doc, ok := loaded.(map[string]interface{})
	if !ok || doc["totalAmount"] != 1000.0 {
		t.Fatalf("loaded = %+v; want stored document back", loaded)
	}
}

func TestMemoryResponseCacheExpiry(t *testing.T) {
	cache := NewMemoryResponseCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	var loaded interface{}
	if hit, err := cache.Get(ctx, "k", &loaded); err != nil || hit {
		t.Fatalf("get after ttl = %v, %v; want expired miss", hit, err)
	}
}
