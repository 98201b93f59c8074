package lrucache

import (
	"testing"
)

func TestCapacityBound(t *testing.T) {
	c := New[string, int](3)
	for i := 0; i < 10; i++ {
		c.Put(string(rune('a'+i)), i)
		if c.Len() > 3 {
			t.Fatalf("size %d exceeds capacity 3 after %d puts", c.Len(), i+1)
		}
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // a is now MRU, b is LRU
	c.Put("c", 3)

	if c.Contains("b") {
		t.Fatalf("expected b to be evicted, it is still present")
	}
	if !c.Contains("a") || !c.Contains("c") {
		t.Fatalf("expected a and c to survive eviction")
	}
}

func TestOverwriteMovesToFront(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 11) // overwrite: a becomes MRU
	c.Put("c", 3)  // evicts LRU, which should be b

	if c.Contains("b") {
		t.Fatalf("expected b to be evicted after a was refreshed")
	}
	v, ok := c.Get("a")
	if !ok || v != 11 {
		t.Fatalf("expected a=11, got %v ok=%v", v, ok)
	}
}

func TestGetMissOnAbsentKey(t *testing.T) {
	c := New[string, int](2)
	if _, ok := c.Get("nope"); ok {
		t.Fatalf("expected miss on absent key")
	}
	if c.Stats().Misses != 1 {
		t.Fatalf("expected 1 miss, got %d", c.Stats().Misses)
	}
}

func TestHitRateMonotonic(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)

	c.Get("a")    // hit
	c.Get("a")    // hit
	c.Get("miss") // miss

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Fatalf("expected hits=2 misses=1, got hits=%d misses=%d", s.Hits, s.Misses)
	}
	if rate := c.HitRate(); rate < 0 || rate > 1 {
		t.Fatalf("hit rate %v out of [0,1]", rate)
	}
}

func TestHitRateZeroWithNoObservations(t *testing.T) {
	c := New[string, int](2)
	if rate := c.HitRate(); rate != 0 {
		t.Fatalf("expected 0 hit rate with no observations, got %v", rate)
	}
}

func TestRemoveDoesNotAffectCounters(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Get("a") // 1 hit

	v, ok := c.Remove("a")
	if !ok || v != 1 {
		t.Fatalf("expected Remove to return (1, true), got (%v, %v)", v, ok)
	}
	if c.Contains("a") {
		t.Fatalf("expected a removed")
	}
	if c.Stats().Hits != 1 {
		t.Fatalf("Remove must not touch hit/miss counters")
	}
}

func TestAllVisitsEveryEntry(t *testing.T) {
	c := New[string, int](10)
	want := map[string]int{"a": 1, "b": 2, "c": 3}
	for k, v := range want {
		c.Put(k, v)
	}

	got := map[string]int{}
	for k, v := range c.All() {
		got[k] = v
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("entry %s: expected %d, got %d", k, v, got[k])
		}
	}
}

func TestUnboundedCapacityNeverEvicts(t *testing.T) {
	c := New[string, int](0)
	for i := 0; i < 50; i++ {
		c.Put(string(rune(i)), i)
	}
	if c.Stats().Evictions != 0 {
		t.Fatalf("expected no evictions with unbounded capacity, got %d", c.Stats().Evictions)
	}
	if c.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", c.Len())
	}
}
