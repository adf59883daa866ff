package cache

import (
	"testing"
	"time"
)

func TestGetSetAndEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}

	// "b" is now least recently used and gets evicted.
	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}
}

func TestExpiry(t *testing.T) {
	c := NewLRUCache[string](10, 10*time.Millisecond)
	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("Size() = %d after expiry, want 0", c.Size())
	}
}

func TestDeletePrefixScopesByOwner(t *testing.T) {
	c := NewLRUCache[int](10, time.Minute)
	c.Set("u1:dashboard:month", 1)
	c.Set("u1:cash:2026-03-05", 2)
	c.Set("u2:dashboard:month", 3)

	if n := c.DeletePrefix("u1:"); n != 2 {
		t.Errorf("DeletePrefix removed %d, want 2", n)
	}
	if _, ok := c.Get("u2:dashboard:month"); !ok {
		t.Error("other owner's entry was dropped")
	}
	if _, ok := c.Get("u1:dashboard:month"); ok {
		t.Error("u1 entry survived invalidation")
	}
}

func TestSetUpdatesExisting(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("a", 2)

	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) = %d, want 2", v)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}
