// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic, size-bounded LRU cache.
//
// The solid generator keeps tessellated sphere templates here, keyed by
// resolution, so repeated sphere requests only pay for a transform.
//
//	c := cache.New[int, *geom.PolySolid](8)
//	s := c.GetOrCreate(24, func() *geom.PolySolid { return build(24) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
