// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic LRU cache used by the brush engine's
// resource caches (brush-tip masks and their device texture handles).
//
// Cache[K, V] is a thread-safe cache with a soft limit: when the limit is
// exceeded, the oldest quarter of the entries is evicted in one batch.
// A soft limit of 0 means the cache never evicts, which is how the mask
// caches use it (one entry per brush shape, alive for the session).
// OnEvict registers a release hook so caches holding GPU handles free
// them on eviction and Clear.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache must not be copied after creation (it contains a mutex).
package cache
