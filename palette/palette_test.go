// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorTransparency(t *testing.T) {
	c := Orange
	assert.False(t, c.HasTransparency())
	assert.Zero(t, c.TransparencyRatio())

	c = c.WithTransparency(51)
	assert.True(t, c.HasTransparency())
	assert.InDelta(t, 0.2, c.TransparencyRatio(), 1e-12)
	assert.InDelta(t, 0.8, c.RGBA().A, 1e-12)
	assert.Equal(t, uint8(0), Orange.Transparency, "WithTransparency returns a copy")
}

func TestColorRGBA(t *testing.T) {
	got := RGB(255, 0, 51).RGBA()
	assert.InDelta(t, 1.0, got.R, 1e-12)
	assert.InDelta(t, 0.0, got.G, 1e-12)
	assert.InDelta(t, 0.2, got.B, 1e-12)
	assert.InDelta(t, 1.0, got.A, 1e-12)
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ffa500", Color{R: 255, G: 165}},
		{"ffa500", Color{R: 255, G: 165}},
		{"#f00", Color{R: 255}},
		{"#000000", Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseHex("#zzz")
	require.Error(t, err)
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, Color{R: 255, G: 165}, Orange)
	assert.Equal(t, "#ffa500", Orange.Hex())

	c, ok := Lookup("Forest Green")
	require.True(t, ok)
	assert.Equal(t, RGB(34, 139, 34), c)

	c, ok = Lookup("#123456")
	require.True(t, ok)
	assert.Equal(t, RGB(0x12, 0x34, 0x56), c)

	_, ok = Lookup("no-such-color")
	assert.False(t, ok)

	names := Names()
	assert.Contains(t, names, "steelblue")
	assert.IsIncreasing(t, names)
}

func TestPickerIsDeterministic(t *testing.T) {
	a, b := NewPicker(42), NewPicker(42)
	for i := 0; i < 64; i++ {
		assert.Equal(t, a.ForGroup(i), b.ForGroup(i), "group %d", i)
		assert.Contains(t, Distinct, a.ForGroup(i))
	}

	// Different seeds disagree somewhere.
	c := NewPicker(7)
	differs := false
	for i := 0; i < 64 && !differs; i++ {
		differs = a.ForGroup(i) != c.ForGroup(i)
	}
	assert.True(t, differs)
}

func TestPickerUsesEveryColor(t *testing.T) {
	p := NewPicker(1)
	seen := map[Color]bool{}
	for i := 0; i < 600; i++ {
		seen[p.ForGroup(i)] = true
	}
	assert.Len(t, seen, len(Distinct))
}

func TestPickerFromCustomSet(t *testing.T) {
	p := NewPickerFrom(3, []Color{White})
	assert.Equal(t, White, p.ForGroup(17))
	assert.Contains(t, Distinct, NewPickerFrom(3, nil).ForGroup(0))
}

func TestCycle(t *testing.T) {
	c := NewCycle(Red, Green)
	assert.Equal(t, Red, c.Next())
	assert.Equal(t, Green, c.Next())
	assert.Equal(t, Red, c.Next(), "restarts after the last color")
	c.Reset()
	assert.Equal(t, Red, c.Next())

	assert.Equal(t, Greens["olive"], DefaultCycle().Next())
}

func TestSpread(t *testing.T) {
	assert.Nil(t, Spread(0, 1, 1))
	cs := Spread(3, 1, 1)
	require.Len(t, cs, 3)
	assert.Equal(t, Red, cs[0])
	assert.Equal(t, Green, cs[1])
	assert.Equal(t, Blue, cs[2])
}
