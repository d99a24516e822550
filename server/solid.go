// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"github.com/gogpu/overlay3d/buffer"
	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// Pass indexes the per-pass storages of a SolidServer.
type Pass int

const (
	OpaquePass Pass = iota
	TransparentPass
)

func passOf(dc host.DrawContext) Pass {
	if dc.IsTransparentPass() {
		return TransparentPass
	}
	return OpaquePass
}

// SolidServer draws the faces and edges of a solid.
//
// It keeps one face storage and one edge storage per pass. Faces are drawn
// in the opaque pass when the face color is opaque and in the transparent
// pass otherwise; wireframe suppresses them. Edges are drawn in every pass.
type SolidServer struct {
	base
	solid       geom.Solid
	faceColor   palette.Color
	edgeColor   palette.Color
	withNormals bool

	faces [2]*buffer.SolidFaceStorage
	edges [2]*buffer.SolidEdgeStorage
}

var _ Server = (*SolidServer)(nil)

// SolidStyle is the coloring of a SolidServer.
type SolidStyle struct {
	FaceColor palette.Color
	EdgeColor palette.Color
	// WithNormals packs per-triangle normals so the host can light faces.
	WithNormals bool
}

// NewSolidServer creates a server for a deep copy of solid.
func NewSolidServer(doc host.Document, solid geom.Solid, st SolidStyle, opts ...Option) (*SolidServer, error) {
	if solid == nil {
		return nil, ErrNilSolid
	}
	b, err := newBase(FamilySolid, doc, opts)
	if err != nil {
		return nil, err
	}
	s := &SolidServer{
		base:        b,
		solid:       solid.Clone(),
		faceColor:   st.FaceColor,
		edgeColor:   st.EdgeColor,
		withNormals: st.WithNormals,
	}
	s.bounds = solidOutline(s.solid).Expanded(BoundsMargin)
	return s, nil
}

// solidOutline boxes the tessellated edges and, when the kernel can
// triangulate them, the faces.
func solidOutline(s geom.Solid) (o geom.Outline) {
	for _, e := range s.Edges() {
		for _, p := range e.Tessellate() {
			o.AddPoint(p)
		}
	}
	defer func() { _ = recover() }()
	for _, f := range s.Faces() {
		for _, p := range f.Triangulate().Vertices() {
			o.AddPoint(p)
		}
	}
	return o
}

// Solid returns the server's private copy of the solid.
func (s *SolidServer) Solid() geom.Solid { return s.solid }

// Style returns the server's coloring.
func (s *SolidServer) Style() SolidStyle {
	return SolidStyle{FaceColor: s.faceColor, EdgeColor: s.edgeColor, WithNormals: s.withNormals}
}

// FaceStorage returns the face storage of pass p, or nil before the first
// render in that pass.
func (s *SolidServer) FaceStorage(p Pass) *buffer.SolidFaceStorage { return s.faces[p] }

// EdgeStorage returns the edge storage of pass p, or nil before the first
// render in that pass.
func (s *SolidServer) EdgeStorage(p Pass) *buffer.SolidEdgeStorage { return s.edges[p] }

// RenderScene implements host.Server.
func (s *SolidServer) RenderScene(dc host.DrawContext, _ host.View, style host.DisplayStyle) {
	p := passOf(dc)
	s.guard(style, p == TransparentPass, func() error {
		if err := s.ensure(p, style); err != nil {
			return err
		}
		if style != host.Wireframe && (p == TransparentPass) == s.faceColor.HasTransparency() {
			if err := s.flush(dc, &s.faces[p].Storage); err != nil {
				return err
			}
		}
		return s.flush(dc, &s.edges[p].Storage)
	})
}

// ensure rebuilds the storages of pass p that are stale for style.
func (s *SolidServer) ensure(p Pass, style host.DisplayStyle) error {
	if f := s.faces[p]; f == nil || f.NeedsRebuild(style) {
		if f != nil {
			f.Dispose()
			s.faces[p] = nil
		}
		nf := buffer.NewSolidFaceStorage(s.solid.Faces(), style)
		var err error
		if s.withNormals {
			err = nf.BuildPositionNormalColored(s.faceColor)
		} else {
			c := s.faceColor
			err = nf.BuildPosition(&c)
		}
		if err != nil {
			return err
		}
		s.faces[p] = nf
		s.built(style, "faces", &nf.Storage)
	}
	if e := s.edges[p]; e == nil || e.NeedsRebuild(style) {
		if e != nil {
			e.Dispose()
			s.edges[p] = nil
		}
		ne := buffer.NewSolidEdgeStorage(s.solid.Edges(), style)
		c := s.edgeColor
		if err := ne.BuildPosition(&c); err != nil {
			return err
		}
		s.edges[p] = ne
		s.built(style, "edges", &ne.Storage)
	}
	s.primitives.Store(int64(s.faces[p].PrimitiveCount + s.edges[p].PrimitiveCount))
	return nil
}
