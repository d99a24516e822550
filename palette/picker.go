// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"math/rand/v2"
	"sync"
)

// Picker assigns colors from Distinct to numbered sub-groups.
// The choice is a pure function of the seed and the group index, so a
// rebuilt buffer gets the same colors as the one it replaces.
type Picker struct {
	seed uint64
	set  []Color
}

// NewPicker returns a picker over Distinct.
func NewPicker(seed uint64) *Picker {
	return &Picker{seed: seed, set: Distinct}
}

// NewPickerFrom returns a picker over a custom color set.
// An empty set falls back to Distinct.
func NewPickerFrom(seed uint64, set []Color) *Picker {
	if len(set) == 0 {
		set = Distinct
	}
	return &Picker{seed: seed, set: append([]Color(nil), set...)}
}

// Seed returns the picker's seed.
func (p *Picker) Seed() uint64 { return p.seed }

// ForGroup returns the color of sub-group i.
func (p *Picker) ForGroup(i int) Color {
	r := rand.New(rand.NewPCG(p.seed, uint64(i)))
	return p.set[r.IntN(len(p.set))]
}

// Cycle hands out colors in a fixed rotation, restarting after the last
// one. It is safe for concurrent use.
type Cycle struct {
	mu     sync.Mutex
	colors []Color
	next   int
}

// DefaultCycle is the rotation used when callers do not supply colors.
func DefaultCycle() *Cycle {
	return NewCycle(
		Greens["olive"], Greens["greenyellow"], Red, Orange,
		Magenta, Browns["darkgoldenrod"], Pinks["pink"], Yellow,
	)
}

// NewCycle creates a rotation over colors.
func NewCycle(colors ...Color) *Cycle {
	if len(colors) == 0 {
		colors = Distinct
	}
	return &Cycle{colors: append([]Color(nil), colors...)}
}

// Next returns the next color in the rotation.
func (c *Cycle) Next() Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	col := c.colors[c.next]
	c.next = (c.next + 1) % len(c.colors)
	return col
}

// Reset restarts the rotation.
func (c *Cycle) Reset() {
	c.mu.Lock()
	c.next = 0
	c.mu.Unlock()
}
