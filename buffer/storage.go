// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// Errors returned by builds.
var (
	ErrNotSupported  = errors.New("buffer: vertex layout not supported")
	ErrAlreadyBuilt  = errors.New("buffer: storage already built")
	ErrColorRequired = errors.New("buffer: shading color required")
)

// Builder is implemented by every storage variant. Exactly one build call
// succeeds per storage.
type Builder interface {
	// BuildPosition packs bare positions. A non-nil shade colors the
	// whole buffer through the effect instance.
	BuildPosition(shade *palette.Color) error
	// BuildPositionColored packs a color per vertex: color for every
	// vertex, or one picked color per sub-group when color is nil.
	BuildPositionColored(color *palette.Color) error
	// BuildPositionNormalColored packs positions with per-triangle
	// normals and a constant color.
	BuildPositionNormalColored(color palette.Color) error
	// Base exposes the built buffers and counts.
	Base() *Storage
}

// Storage holds the packed buffers of one draw aspect and the counts the
// host needs to draw them. Buffers are nil until the first build.
type Storage struct {
	Style    host.DisplayStyle
	Layout   host.VertexLayout
	Topology host.Topology

	VertexCount    int
	IndexCount     int
	PrimitiveCount int

	VertexBuffer *host.VertexBuffer
	IndexBuffer  *host.IndexBuffer
	Format       *host.VertexFormat
	Effect       *host.EffectInstance

	built bool
}

// Base returns s. It lets variants satisfy Builder through embedding.
func (s *Storage) Base() *Storage { return s }

// Built reports whether a build has completed.
func (s *Storage) Built() bool { return s.built }

// NeedsRebuild reports whether the buffers must be regenerated before
// drawing in style: they were never built, they were built for another
// style, or the host disposed one of them.
func (s *Storage) NeedsRebuild(style host.DisplayStyle) bool {
	if !s.built || style != s.Style {
		return true
	}
	if s.PrimitiveCount > 0 {
		if !s.VertexBuffer.Valid() || !s.IndexBuffer.Valid() || !s.Format.Valid() || !s.Effect.Valid() {
			return true
		}
	}
	return false
}

// FlushRequest describes the whole buffer as one draw call.
func (s *Storage) FlushRequest() host.FlushRequest {
	return host.FlushRequest{
		Vertices:       s.VertexBuffer,
		VertexCount:    s.VertexCount,
		Indices:        s.IndexBuffer,
		IndexCount:     s.IndexCount,
		Format:         s.Format,
		Effect:         s.Effect,
		Topology:       s.Topology,
		StartIndex:     0,
		PrimitiveCount: s.PrimitiveCount,
	}
}

// Dispose releases every buffer. The storage needs a rebuild afterwards.
func (s *Storage) Dispose() {
	s.VertexBuffer.Dispose()
	s.IndexBuffer.Dispose()
	s.Format.Dispose()
	s.Effect.Dispose()
}

// Option configures a storage.
type Option func(*options)

type options struct {
	picker *palette.Picker
}

func defaultOptions() options {
	return options{picker: palette.NewPicker(0)}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPicker sets the source of per-sub-group colors.
func WithPicker(p *palette.Picker) Option {
	return func(o *options) {
		if p != nil {
			o.picker = p
		}
	}
}

// Shading returns an effect instance carrying c.
// Transparency is c's ratio on a 0..1 scale. In HLR the specular, ambient
// and emissive terms are set to c as well so the host's lighting keeps the
// flat look.
func Shading(layout host.VertexLayout, c palette.Color, style host.DisplayStyle) *host.EffectInstance {
	rgba := c.RGBA()
	e := host.NewEffectInstance(layout)
	e.HasColor = true
	e.Color = rgba
	e.Diffuse = rgba
	e.Transparency = c.TransparencyRatio()
	if style == host.HLR {
		e.Specular = rgba
		e.Ambient = rgba
		e.Emissive = rgba
	}
	return e
}

// vertexColor returns the per-group color function for a colored build.
func vertexColor(color *palette.Color, picker *palette.Picker) func(group int) gputypes.Color {
	if color != nil {
		rgba := color.RGBA()
		return func(int) gputypes.Color { return rgba }
	}
	return func(group int) gputypes.Color { return picker.ForGroup(group).RGBA() }
}

// build writes g into fresh host buffers. colorOf may be nil for
// LayoutPosition.
func (s *Storage) build(g *geometry, layout host.VertexLayout, colorOf func(group int) gputypes.Color, effect *host.EffectInstance) error {
	if s.built {
		return ErrAlreadyBuilt
	}
	if layout == host.LayoutPositionNormalColored && len(g.normals) != g.vertexCount {
		return fmt.Errorf("%w: %s without normals", ErrNotSupported, layout)
	}

	vb := host.NewVertexBuffer(layout, g.vertexCount)
	if err := writeVertices(vb, g, layout, colorOf); err != nil {
		return fmt.Errorf("buffer: write vertices: %w", err)
	}
	ib := host.NewIndexBuffer(g.indexCount())
	if err := writeIndices(ib, g); err != nil {
		return fmt.Errorf("buffer: write indices: %w", err)
	}

	s.Layout = layout
	s.Topology = g.topology
	s.VertexCount = g.vertexCount
	s.IndexCount = g.indexCount()
	s.PrimitiveCount = g.primitiveCount
	s.VertexBuffer = vb
	s.IndexBuffer = ib
	s.Format = host.NewVertexFormat(layout)
	s.Effect = effect
	s.built = true
	return nil
}

func writeVertices(vb *host.VertexBuffer, g *geometry, layout host.VertexLayout, colorOf func(int) gputypes.Color) error {
	vs, err := vb.Map()
	if err != nil {
		return err
	}
	n := 0
	for gi, grp := range g.groups {
		var c gputypes.Color
		if colorOf != nil {
			c = colorOf(gi)
		}
		for _, p := range grp {
			switch layout {
			case host.LayoutPosition:
				err = vs.AddPosition(p)
			case host.LayoutPositionColored:
				err = vs.AddPositionColored(p, c)
			case host.LayoutPositionNormalColored:
				err = vs.AddPositionNormalColored(p, g.normals[n], c)
			}
			if err != nil {
				_ = vb.Unmap()
				return err
			}
			n++
		}
	}
	return vb.Unmap()
}

func writeIndices(ib *host.IndexBuffer, g *geometry) error {
	is, err := ib.Map()
	if err != nil {
		return err
	}
	idx := g.indices
	if g.topology == host.LineList {
		for i := 0; i+1 < len(idx); i += 2 {
			if err = is.AddLine(idx[i], idx[i+1]); err != nil {
				break
			}
		}
	} else {
		for i := 0; i+2 < len(idx); i += 3 {
			if err = is.AddTriangle(idx[i], idx[i+1], idx[i+2]); err != nil {
				break
			}
		}
	}
	if uerr := ib.Unmap(); err == nil {
		err = uerr
	}
	return err
}
