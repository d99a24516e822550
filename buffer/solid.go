// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// SolidFaceStorage packs the triangulated faces of a solid.
type SolidFaceStorage struct {
	Storage
	geo *geometry
}

var _ Builder = (*SolidFaceStorage)(nil)

// NewSolidFaceStorage triangulates faces for drawing in style. Kernel
// failures while triangulating surface as panics from the kernel; callers
// at the host boundary recover them.
func NewSolidFaceStorage(faces []geom.Face, style host.DisplayStyle) *SolidFaceStorage {
	return &SolidFaceStorage{
		Storage: Storage{Style: style, Topology: host.TriangleList},
		geo:     faceGeometry(faces),
	}
}

// Normals returns the corrected normal of every vertex in buffer order.
func (s *SolidFaceStorage) Normals() []geom.XYZ {
	return append([]geom.XYZ(nil), s.geo.normals...)
}

// BuildPosition implements Builder.
func (s *SolidFaceStorage) BuildPosition(shade *palette.Color) error {
	if shade == nil {
		return fmt.Errorf("%w: solid faces", ErrColorRequired)
	}
	return s.build(s.geo, host.LayoutPosition, nil, Shading(host.LayoutPosition, *shade, s.Style))
}

// BuildPositionColored implements Builder. Faces are colored through the
// effect, never per vertex.
func (s *SolidFaceStorage) BuildPositionColored(*palette.Color) error {
	return fmt.Errorf("%w: solid face storage with %s", ErrNotSupported, host.LayoutPositionColored)
}

// BuildPositionNormalColored implements Builder.
func (s *SolidFaceStorage) BuildPositionNormalColored(color palette.Color) error {
	rgba := color.RGBA()
	return s.build(s.geo, host.LayoutPositionNormalColored,
		func(int) gputypes.Color { return rgba },
		Shading(host.LayoutPositionNormalColored, color, s.Style))
}

// SolidEdgeStorage packs the tessellated edges of a solid.
type SolidEdgeStorage struct {
	Storage
	geo *geometry
}

var _ Builder = (*SolidEdgeStorage)(nil)

// NewSolidEdgeStorage tessellates edges for drawing in style.
func NewSolidEdgeStorage(edges []geom.Edge, style host.DisplayStyle) *SolidEdgeStorage {
	return &SolidEdgeStorage{
		Storage: Storage{Style: style, Topology: host.LineList},
		geo:     edgeGeometry(edges),
	}
}

// BuildPosition implements Builder.
func (s *SolidEdgeStorage) BuildPosition(shade *palette.Color) error {
	if shade == nil {
		return fmt.Errorf("%w: solid edges", ErrColorRequired)
	}
	return s.build(s.geo, host.LayoutPosition, nil, Shading(host.LayoutPosition, *shade, s.Style))
}

// BuildPositionColored implements Builder.
func (s *SolidEdgeStorage) BuildPositionColored(*palette.Color) error {
	return fmt.Errorf("%w: solid edge storage with %s", ErrNotSupported, host.LayoutPositionColored)
}

// BuildPositionNormalColored implements Builder.
func (s *SolidEdgeStorage) BuildPositionNormalColored(palette.Color) error {
	return fmt.Errorf("%w: solid edge storage with %s", ErrNotSupported, host.LayoutPositionNormalColored)
}
