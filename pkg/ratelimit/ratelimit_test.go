package ratelimit

import (
	"testing"
	"time"
)

func TestBurstThenThrottle(t *testing.T) {
	l := NewKeyedLimiter(1, time.Hour, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("request past the burst should be throttled")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewKeyedLimiter(1, time.Hour, 1, time.Minute)

	if !l.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("first key should now be throttled")
	}
	if !l.Allow("10.0.0.2") {
		t.Fatal("a different key should not be affected")
	}
}

func TestIdleEntriesExpire(t *testing.T) {
	l := NewKeyedLimiter(1, time.Hour, 1, time.Minute).(*keyedLimiter)

	now := time.Now()
	l.now = func() time.Time { return now }

	l.Allow("10.0.0.1")
	if len(l.visitors) != 1 {
		t.Fatalf("visitors = %d, want 1", len(l.visitors))
	}

	// advance past the ttl; the next call gcs the stale entry
	now = now.Add(2 * time.Minute)
	l.Allow("10.0.0.2")
	if _, ok := l.visitors["10.0.0.1"]; ok {
		t.Fatal("stale visitor should have been evicted")
	}
}

func TestEmptyKeyStillLimited(t *testing.T) {
	l := NewKeyedLimiter(1, time.Hour, 1, time.Minute)

	if !l.Allow("") {
		t.Fatal("first anonymous request should be allowed")
	}
	if l.Allow("") {
		t.Fatal("anonymous requests share one bucket")
	}
}

func TestDefensiveDefaults(t *testing.T) {
	l := NewKeyedLimiter(0, 0, 0, 0)
	if !l.Allow("k") {
		t.Fatal("zero-valued settings should fall back to a working limiter")
	}
}
