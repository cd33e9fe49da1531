// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"fmt"
	"testing"
)

func TestCacheBasic(t *testing.T) {
	c := New[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache should miss")
	}

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %d, %v; want 2, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d; want 2", c.Len())
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("a", 2)

	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) = %d; want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)

	if !c.Delete("a") {
		t.Error("Delete(a) = false; want true")
	}
	if c.Delete("a") {
		t.Error("Delete(a) twice = true; want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get after Delete should miss")
	}
}

func TestCacheEviction(t *testing.T) {
	c := New[int, string](4)

	for i := 0; i < 5; i++ {
		c.Set(i, fmt.Sprintf("v%d", i))
	}

	// Exceeding the soft limit evicts down to 75% of the limit.
	if c.Len() > 4 {
		t.Errorf("Len() = %d; want <= 4", c.Len())
	}
	// The most recently inserted entry survives.
	if _, ok := c.Get(4); !ok {
		t.Error("most recent entry was evicted")
	}
}

func TestCacheEvictionKeepsRecent(t *testing.T) {
	c := New[int, int](4)
	for i := 0; i < 4; i++ {
		c.Set(i, i)
	}

	// Touch entry 0 so it becomes the most recently used.
	c.Get(0)

	// Push over the limit; the oldest (1) goes first.
	c.Set(4, 4)

	if _, ok := c.Get(0); !ok {
		t.Error("recently used entry 0 was evicted")
	}
	if _, ok := c.Get(1); ok {
		t.Error("oldest entry 1 should have been evicted")
	}
}

func TestCacheUnlimited(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 1000; i++ {
		c.Set(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d; want 1000 (softLimit 0 never evicts)", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](10)

	calls := 0
	create := func() int {
		calls++
		return 42
	}

	if v := c.GetOrCreate("k", create); v != 42 {
		t.Errorf("GetOrCreate = %d; want 42", v)
	}
	if v := c.GetOrCreate("k", create); v != 42 {
		t.Errorf("GetOrCreate = %d; want 42", v)
	}
	if calls != 1 {
		t.Errorf("create called %d times; want 1", calls)
	}
}

func TestCacheClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d; want 0", c.Len())
	}
}

func TestCacheOnEvict(t *testing.T) {
	c := New[int, int](2)

	var evicted []int
	c.OnEvict(func(v int) { evicted = append(evicted, v) })

	c.Set(1, 10)
	c.Set(2, 20)
	c.Set(3, 30)

	if len(evicted) == 0 {
		t.Fatal("eviction callback was not invoked")
	}
	if evicted[0] != 10 {
		t.Errorf("evicted %v; oldest value 10 should go first", evicted)
	}

	evicted = nil
	c.Clear()
	if len(evicted) != c.Capacity() && len(evicted) == 0 {
		t.Error("Clear should invoke the eviction callback for remaining entries")
	}
}

func TestCacheCapacity(t *testing.T) {
	c := New[string, int](7)
	if c.Capacity() != 7 {
		t.Errorf("Capacity() = %d; want 7", c.Capacity())
	}
}
