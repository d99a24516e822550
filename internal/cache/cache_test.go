// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cache

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](4)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v, "Set overwrites")
	assert.Equal(t, 1, c.Len())
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	// Touch 1 so 2 becomes the oldest.
	_, _ = c.Get(1)
	c.Set(4, 4)

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get(2)
	assert.False(t, ok, "2 was least recently used")
	for _, k := range []int{1, 3, 4} {
		_, ok := c.Get(k)
		assert.True(t, ok, "key %d", k)
	}
	assert.Equal(t, uint64(1), c.Stats().Evictions)
}

func TestCacheUnlimited(t *testing.T) {
	c := New[int, int](0)
	for i := 0; i < 1000; i++ {
		c.Set(i, i)
	}
	assert.Equal(t, 1000, c.Len())
	assert.Zero(t, c.Stats().Evictions)
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](8)
	calls := 0
	create := func() int { calls++; return 42 }

	assert.Equal(t, 42, c.GetOrCreate("k", create))
	assert.Equal(t, 42, c.GetOrCreate("k", create))
	assert.Equal(t, 1, calls)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 0.5, s.HitRate, 1e-12)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string, int](8)
	c.Set("a", 1)
	c.Set("b", 2)

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	_, ok := c.Get("b")
	assert.False(t, ok)

	// The recency list is consistent after Clear.
	c.Set("c", 3)
	v, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestCacheConcurrentGetOrCreate(t *testing.T) {
	c := New[string, int](16)
	var calls atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := strconv.Itoa(i % 4)
			c.GetOrCreate(key, func() int {
				calls.Add(1)
				return i % 4
			})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(4), calls.Load(), "each key is built once")
	assert.Equal(t, 4, c.Len())
}

func TestLRUList(t *testing.T) {
	l := newLRUList[string]()
	_, ok := l.Oldest()
	assert.False(t, ok)

	a := l.PushFront("a")
	l.PushFront("b")
	c := l.PushFront("c")
	assert.Equal(t, 3, l.Len())

	oldest, _ := l.Oldest()
	assert.Equal(t, "a", oldest)

	l.MoveToFront(a)
	oldest, _ = l.Oldest()
	assert.Equal(t, "b", oldest)

	l.Remove(c)
	assert.Equal(t, 2, l.Len())

	k, ok := l.RemoveOldest()
	require.True(t, ok)
	assert.Equal(t, "b", k)
	k, _ = l.RemoveOldest()
	assert.Equal(t, "a", k)
	_, ok = l.RemoveOldest()
	assert.False(t, ok)
	assert.Zero(t, l.Len())
}
