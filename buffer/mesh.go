// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"fmt"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// MeshStorage packs triangle meshes into a triangle list. Triangles stay
// grouped by source mesh so each mesh can get its own color.
type MeshStorage struct {
	Storage
	geo  *geometry
	opts options
}

var _ Builder = (*MeshStorage)(nil)

// NewMeshStorage prepares meshes for drawing in style.
func NewMeshStorage(meshes []geom.Mesh, style host.DisplayStyle, opts ...Option) *MeshStorage {
	return &MeshStorage{
		Storage: Storage{Style: style, Topology: host.TriangleList},
		geo:     meshGeometry(meshes),
		opts:    applyOptions(opts),
	}
}

// Bounds returns the box around every vertex.
func (s *MeshStorage) Bounds() geom.Outline { return s.geo.outline() }

// BuildPosition implements Builder. A nil shade leaves the host's default
// look.
func (s *MeshStorage) BuildPosition(shade *palette.Color) error {
	e := host.NewEffectInstance(host.LayoutPosition)
	if shade != nil {
		e = Shading(host.LayoutPosition, *shade, s.Style)
	}
	return s.build(s.geo, host.LayoutPosition, nil, e)
}

// BuildPositionColored implements Builder. Without a color every source
// mesh gets its own picked color.
func (s *MeshStorage) BuildPositionColored(color *palette.Color) error {
	return s.build(s.geo, host.LayoutPositionColored, vertexColor(color, s.opts.picker), coloredEffect(color))
}

// BuildPositionNormalColored implements Builder. Meshes carry no
// reference normals to orient against.
func (s *MeshStorage) BuildPositionNormalColored(palette.Color) error {
	return fmt.Errorf("%w: mesh storage with %s", ErrNotSupported, host.LayoutPositionNormalColored)
}
