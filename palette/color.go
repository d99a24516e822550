// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB color with a transparency channel.
// Transparency 0 is fully opaque; 255 is fully transparent.
type Color struct {
	R, G, B      uint8
	Transparency uint8
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// HasTransparency reports whether the color needs the transparent pass.
func (c Color) HasTransparency() bool {
	return c.Transparency != 0
}

// TransparencyRatio returns the transparency on a 0..1 scale.
func (c Color) TransparencyRatio() float64 {
	return float64(c.Transparency) / 255
}

// WithTransparency returns a copy of c with the given transparency.
func (c Color) WithTransparency(t uint8) Color {
	c.Transparency = t
	return c
}

// RGBA converts the color to normalized GPU components.
// Alpha is the complement of the transparency ratio.
func (c Color) RGBA() gputypes.Color {
	return gputypes.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: 1 - c.TransparencyRatio(),
	}
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c.Transparency == 0 {
		return c.Hex()
	}
	return fmt.Sprintf("%s/%d", c.Hex(), c.Transparency)
}

// ParseHex parses "#rgb" or "#rrggbb" (the '#' is optional) into an opaque
// color.
func ParseHex(s string) (Color, error) {
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("palette: parse %q: %w", s, err)
	}
	return fromColorful(cf), nil
}

// mustHex is ParseHex for the static catalog.
func mustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func fromColorful(cf colorful.Color) Color {
	r, g, b := cf.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// Spread returns n opaque colors with evenly spaced hues at the given HSV
// saturation and value.
func Spread(n int, saturation, value float64) []Color {
	if n <= 0 {
		return nil
	}
	out := make([]Color, n)
	for i := range out {
		out[i] = fromColorful(colorful.Hsv(360*float64(i)/float64(n), saturation, value))
	}
	return out
}
