// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"fmt"
	"strings"
)

// DisplayStyle is the view's current render mode.
type DisplayStyle int

const (
	Wireframe DisplayStyle = iota
	HLR
	Shading
	ShadingWithEdges
	FlatColors
	Realistic
	RealisticWithEdges
)

var styleNames = [...]string{
	Wireframe:          "wireframe",
	HLR:                "hlr",
	Shading:            "shading",
	ShadingWithEdges:   "shading-with-edges",
	FlatColors:         "flat-colors",
	Realistic:          "realistic",
	RealisticWithEdges: "realistic-with-edges",
}

// String returns the style's kebab-case name.
func (s DisplayStyle) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("DisplayStyle(%d)", int(s))
}

// ParseDisplayStyle parses a name produced by String. Matching ignores case
// and accepts underscores for dashes.
func ParseDisplayStyle(name string) (DisplayStyle, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, n := range styleNames {
		if n == key {
			return DisplayStyle(i), nil
		}
	}
	return 0, fmt.Errorf("host: unknown display style %q", name)
}
