// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"fmt"

	"github.com/gogpu/overlay3d/buffer"
	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// MeshMode is how a MeshServer colors its meshes. It is fixed at
// construction.
type MeshMode int

const (
	// MeshUncolored leaves the host's default look.
	MeshUncolored MeshMode = iota
	// MeshShaded colors every mesh through the effect instance.
	MeshShaded
	// MeshColored packs a color per vertex: the given color, or one
	// picked color per source mesh.
	MeshColored
)

// String implements fmt.Stringer.
func (m MeshMode) String() string {
	switch m {
	case MeshUncolored:
		return "uncolored"
	case MeshShaded:
		return "shaded"
	case MeshColored:
		return "colored"
	}
	return fmt.Sprintf("MeshMode(%d)", int(m))
}

// MeshServer draws a set of triangle meshes.
type MeshServer struct {
	base
	meshes []geom.Mesh
	mode   MeshMode
	color  *palette.Color

	storage *buffer.MeshStorage
}

var _ Server = (*MeshServer)(nil)

// NewMeshServer creates a mesh server. MeshShaded requires a color; the
// other modes accept nil.
func NewMeshServer(doc host.Document, meshes []geom.Mesh, mode MeshMode, color *palette.Color, opts ...Option) (*MeshServer, error) {
	if mode == MeshShaded && color == nil {
		return nil, ErrColorRequired
	}
	b, err := newBase(FamilyMesh, doc, opts)
	if err != nil {
		return nil, err
	}
	s := &MeshServer{base: b, mode: mode}
	var o geom.Outline
	for _, m := range meshes {
		c := m.Clone()
		s.meshes = append(s.meshes, c)
		for _, p := range c.Vertices() {
			o.AddPoint(p)
		}
	}
	if color != nil && mode != MeshUncolored {
		c := *color
		s.color = &c
	}
	s.bounds = o.Expanded(BoundsMargin)
	return s, nil
}

// Mode returns the coloring mode.
func (s *MeshServer) Mode() MeshMode { return s.mode }

// Storage returns the storage built last, or nil.
func (s *MeshServer) Storage() *buffer.MeshStorage { return s.storage }

func (s *MeshServer) transparent() bool {
	return s.color != nil && s.color.HasTransparency()
}

// RenderScene implements host.Server.
func (s *MeshServer) RenderScene(dc host.DrawContext, _ host.View, style host.DisplayStyle) {
	pass := dc.IsTransparentPass()
	s.guard(style, pass, func() error {
		if s.storage == nil || s.storage.NeedsRebuild(style) {
			if err := s.rebuild(style); err != nil {
				return err
			}
		}
		if pass != s.transparent() {
			return nil
		}
		return s.flush(dc, &s.storage.Storage)
	})
}

func (s *MeshServer) rebuild(style host.DisplayStyle) error {
	if s.storage != nil {
		s.storage.Dispose()
		s.storage = nil
	}
	st := buffer.NewMeshStorage(s.meshes, style, buffer.WithPicker(s.picker))
	var err error
	switch s.mode {
	case MeshShaded:
		err = st.BuildPosition(s.color)
	case MeshColored:
		err = st.BuildPositionColored(s.color)
	default:
		err = st.BuildPosition(nil)
	}
	if err != nil {
		return err
	}
	s.storage = st
	s.primitives.Store(int64(st.PrimitiveCount))
	s.built(style, "meshes", &st.Storage)
	return nil
}
