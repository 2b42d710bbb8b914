// Reelmatch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[string](capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", "alpha")
	c.Add("b", "beta")
	c.Add("c", "gamma")

	for key, want := range map[string]string{"a": "alpha", "b": "beta", "c": "gamma"} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %q, %v; want %q, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(3, time.Minute)

	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3")

	// 'a' becomes most recently used, so 'b' is the LRU entry
	c.Get("a")
	c.Add("d", "4")

	if _, ok := c.Get("b"); ok {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("expected %q to be present", key)
		}
	}
}

func TestLRU_UpdateRefreshes(t *testing.T) {
	c, clock := newTestLRU(2, time.Minute)

	c.Add("a", "old")
	clock.advance(50 * time.Second)
	c.Add("a", "new")
	clock.advance(50 * time.Second)

	got, ok := c.Get("a")
	if !ok || got != "new" {
		t.Errorf("Get(a) = %q, %v; want new, true", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("a", "x")
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected 'a' before expiry")
	}

	clock.advance(61 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("expected 'a' to have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed on Get, Len() = %d", c.Len())
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)

	c.Add("a", "1")
	c.Add("b", "2")
	clock.advance(30 * time.Second)
	c.Add("c", "3")
	clock.advance(45 * time.Second)

	if removed := c.CleanupExpired(); removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected 'c' to survive cleanup")
	}
}

func TestLRU_Clear(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add("a", "1")
	c.Add("b", "2")

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Add("z", "26")
	if _, ok := c.Get("z"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add("a", "1")

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats() = %+v, want {2 1 1}", s)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.capacity != 1024 || c.ttl != 5*time.Minute {
		t.Errorf("defaults = %d, %v", c.capacity, c.ttl)
	}
}

func TestLRU_StructValues(t *testing.T) {
	type ranking struct{ ids []int64 }
	c := NewLRU[ranking](4, time.Minute)
	c.Add("avatar|12", ranking{ids: []int64{285, 206647}})

	got, ok := c.Get("avatar|12")
	if !ok || len(got.ids) != 2 {
		t.Errorf("Get = %+v, %v", got, ok)
	}

	if _, ok := c.Get("spectre|12"); ok {
		t.Error("unexpected hit")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa((g*500 + i) % 150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
