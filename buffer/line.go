// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"fmt"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// LineStorage packs a set of line segments into a line list.
type LineStorage struct {
	Storage
	geo  *geometry
	opts options
}

var _ Builder = (*LineStorage)(nil)

// NewLineStorage prepares lines for drawing in style.
func NewLineStorage(lines []geom.Line, style host.DisplayStyle, opts ...Option) *LineStorage {
	return &LineStorage{
		Storage: Storage{Style: style, Topology: host.LineList},
		geo:     lineGeometry(lines),
		opts:    applyOptions(opts),
	}
}

// Bounds returns the box around every endpoint.
func (s *LineStorage) Bounds() geom.Outline { return s.geo.outline() }

// BuildPosition implements Builder.
func (s *LineStorage) BuildPosition(shade *palette.Color) error {
	e := host.NewEffectInstance(host.LayoutPosition)
	if shade != nil {
		e = Shading(host.LayoutPosition, *shade, s.Style)
	}
	return s.build(s.geo, host.LayoutPosition, nil, e)
}

// BuildPositionColored implements Builder. Without a color every line gets
// its own picked color.
func (s *LineStorage) BuildPositionColored(color *palette.Color) error {
	return s.build(s.geo, host.LayoutPositionColored, vertexColor(color, s.opts.picker), coloredEffect(color))
}

// BuildPositionNormalColored implements Builder. Lines have no normals.
func (s *LineStorage) BuildPositionNormalColored(palette.Color) error {
	return fmt.Errorf("%w: line storage with %s", ErrNotSupported, host.LayoutPositionNormalColored)
}

// coloredEffect is the effect paired with per-vertex colors. It carries
// only the transparency of an explicit color.
func coloredEffect(color *palette.Color) *host.EffectInstance {
	e := host.NewEffectInstance(host.LayoutPositionColored)
	if color != nil {
		e.Transparency = color.TransparencyRatio()
	}
	return e
}
