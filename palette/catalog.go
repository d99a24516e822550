// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package palette

import (
	"sort"
	"strings"
)

// Basic colors.
var (
	Red     = mustHex("#ff0000")
	Green   = mustHex("#00ff00")
	Blue    = mustHex("#0000ff")
	Black   = mustHex("#000000")
	White   = mustHex("#ffffff")
	Magenta = mustHex("#ff00ff")
	Cyan    = mustHex("#00ffff")
	Orange  = mustHex("#ffa500")
	Yellow  = mustHex("#ffff00")
)

// Distinct is the fixed set used when sub-groups get random colors.
var Distinct = []Color{Green, Blue, Red, Orange, Magenta, Cyan}

// Named tones grouped by hue, after https://htmlcolorcodes.com/color-names/.
var (
	Greens = map[string]Color{
		"olive":        mustHex("#808000"),
		"darkseagreen": mustHex("#8fbc8b"),
		"forestgreen":  mustHex("#228b22"),
		"springgreen":  mustHex("#00ff7f"),
		"greenyellow":  mustHex("#adff2f"),
		"greenscreen":  mustHex("#008000"),
	}
	Reds = map[string]Color{
		"darkred":   mustHex("#8b0000"),
		"indianred": mustHex("#cd5c5c"),
		"redlight":  mustHex("#ff8080"),
		"crimson":   mustHex("#dc143c"),
	}
	Pinks = map[string]Color{
		"deeppink": mustHex("#ff1493"),
		"pink":     mustHex("#ffc0cb"),
	}
	Oranges = map[string]Color{
		"orangered":   mustHex("#ff4500"),
		"lightsalmon": mustHex("#ffa07a"),
		"coral":       mustHex("#ff7f50"),
	}
	Yellows = map[string]Color{
		"gold":         mustHex("#ffd700"),
		"lemonchiffon": mustHex("#fffacd"),
		"khaki":        mustHex("#f0e68c"),
	}
	Purples = map[string]Color{
		"indigo":   mustHex("#4b0082"),
		"orchid":   mustHex("#da70d6"),
		"thistle":  mustHex("#d8bfd8"),
		"lavender": mustHex("#e6e6fa"),
		"purple":   mustHex("#800080"),
	}
	Blues = map[string]Color{
		"darkblue":    mustHex("#00008b"),
		"dodgerblue":  mustHex("#1e90ff"),
		"deepskyblue": mustHex("#00bfff"),
		"lightblue":   mustHex("#add8e6"),
		"turquoise":   mustHex("#40e0d0"),
		"steelblue":   mustHex("#4682b4"),
	}
	Browns = map[string]Color{
		"saddlebrown":   mustHex("#8b4513"),
		"darkgoldenrod": mustHex("#b8860b"),
	}
	Whites = map[string]Color{
		"honeydew": mustHex("#f0fff0"),
		"seashell": mustHex("#fff5ee"),
		"linen":    mustHex("#faf0e6"),
		"beige":    mustHex("#f5f5dc"),
	}
	Grays = map[string]Color{
		"darkslategray": mustHex("#2f4f4f"),
		"dimgray":       mustHex("#696969"),
		"silver":        mustHex("#c0c0c0"),
		"gainsboro":     mustHex("#dcdcdc"),
	}
)

var catalog = buildCatalog()

func buildCatalog() map[string]Color {
	m := map[string]Color{
		"red":     Red,
		"green":   Green,
		"blue":    Blue,
		"black":   Black,
		"white":   White,
		"magenta": Magenta,
		"cyan":    Cyan,
		"orange":  Orange,
		"yellow":  Yellow,
	}
	for _, group := range []map[string]Color{
		Greens, Reds, Pinks, Oranges, Yellows, Purples, Blues, Browns, Whites, Grays,
	} {
		for name, c := range group {
			m[name] = c
		}
	}
	return m
}

// Lookup resolves a catalog name (case-insensitive, spaces and dashes
// ignored) or a hex literal starting with '#'.
func Lookup(name string) (Color, bool) {
	if strings.HasPrefix(name, "#") {
		c, err := ParseHex(name)
		return c, err == nil
	}
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(name))
	c, ok := catalog[key]
	return c, ok
}

// Names returns every catalog name in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
