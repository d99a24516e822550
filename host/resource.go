// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/overlay3d/geom"
)

// Resource errors.
var (
	ErrDisposed       = errors.New("host: resource disposed")
	ErrMapped         = errors.New("host: buffer already mapped")
	ErrNotMapped      = errors.New("host: buffer not mapped")
	ErrStreamFull     = errors.New("host: stream capacity exceeded")
	ErrLayoutMismatch = errors.New("host: vertex does not match buffer layout")
)

// Resource is anything the host can invalidate behind the core's back.
type Resource interface {
	Valid() bool
	Dispose()
}

// lifetime tracks disposal. The zero value is live.
type lifetime struct {
	disposed atomic.Bool
}

func (l *lifetime) live() bool { return !l.disposed.Load() }
func (l *lifetime) dispose()   { l.disposed.Store(true) }

// VertexBuffer holds packed float32 vertex data for one layout.
type VertexBuffer struct {
	life   lifetime
	layout VertexLayout
	data   []float32
	mapped bool
	used   int
}

// NewVertexBuffer allocates room for vertexCount vertices.
func NewVertexBuffer(layout VertexLayout, vertexCount int) *VertexBuffer {
	if vertexCount < 0 {
		vertexCount = 0
	}
	return &VertexBuffer{
		layout: layout,
		data:   make([]float32, vertexCount*layout.FloatsPerVertex()),
	}
}

// Valid reports whether the buffer exists and has not been disposed.
func (b *VertexBuffer) Valid() bool { return b != nil && b.life.live() }

// Dispose invalidates the buffer.
func (b *VertexBuffer) Dispose() {
	if b != nil {
		b.life.dispose()
	}
}

// Layout returns the buffer's vertex layout.
func (b *VertexBuffer) Layout() VertexLayout { return b.layout }

// Capacity returns the number of vertices the buffer can hold.
func (b *VertexBuffer) Capacity() int { return len(b.data) / b.layout.FloatsPerVertex() }

// Len returns the number of vertices written so far.
func (b *VertexBuffer) Len() int { return b.used / b.layout.FloatsPerVertex() }

// Floats returns the written vertex data. Callers must not modify it.
func (b *VertexBuffer) Floats() []float32 { return b.data[:b.used] }

// Map opens the buffer for writing from the start.
func (b *VertexBuffer) Map() (*VertexStream, error) {
	if !b.Valid() {
		return nil, ErrDisposed
	}
	if b.mapped {
		return nil, ErrMapped
	}
	b.mapped = true
	b.used = 0
	return &VertexStream{buf: b}, nil
}

// Unmap closes the buffer for writing.
func (b *VertexBuffer) Unmap() error {
	if !b.mapped {
		return ErrNotMapped
	}
	b.mapped = false
	return nil
}

// VertexStream appends vertices to a mapped VertexBuffer.
type VertexStream struct {
	buf *VertexBuffer
}

func (s *VertexStream) reserve(layout VertexLayout) ([]float32, error) {
	b := s.buf
	if !b.mapped {
		return nil, ErrNotMapped
	}
	if b.layout != layout {
		return nil, fmt.Errorf("%w: have %s, buffer is %s", ErrLayoutMismatch, layout, b.layout)
	}
	n := layout.FloatsPerVertex()
	if b.used+n > len(b.data) {
		return nil, ErrStreamFull
	}
	out := b.data[b.used : b.used+n]
	b.used += n
	return out, nil
}

// AddPosition appends a LayoutPosition vertex.
func (s *VertexStream) AddPosition(p geom.XYZ) error {
	v, err := s.reserve(LayoutPosition)
	if err != nil {
		return err
	}
	putXYZ(v, p)
	return nil
}

// AddPositionColored appends a LayoutPositionColored vertex.
func (s *VertexStream) AddPositionColored(p geom.XYZ, c gputypes.Color) error {
	v, err := s.reserve(LayoutPositionColored)
	if err != nil {
		return err
	}
	putXYZ(v, p)
	putColor(v[3:], c)
	return nil
}

// AddPositionNormalColored appends a LayoutPositionNormalColored vertex.
func (s *VertexStream) AddPositionNormalColored(p, n geom.XYZ, c gputypes.Color) error {
	v, err := s.reserve(LayoutPositionNormalColored)
	if err != nil {
		return err
	}
	putXYZ(v, p)
	putXYZ(v[3:], n)
	putColor(v[6:], c)
	return nil
}

func putXYZ(dst []float32, p geom.XYZ) {
	dst[0], dst[1], dst[2] = float32(p.X), float32(p.Y), float32(p.Z)
}

func putColor(dst []float32, c gputypes.Color) {
	dst[0], dst[1], dst[2], dst[3] = float32(c.R), float32(c.G), float32(c.B), float32(c.A)
}

// IndexBuffer holds uint32 indices.
type IndexBuffer struct {
	life   lifetime
	data   []uint32
	mapped bool
	used   int
}

// NewIndexBuffer allocates room for indexCount indices.
func NewIndexBuffer(indexCount int) *IndexBuffer {
	if indexCount < 0 {
		indexCount = 0
	}
	return &IndexBuffer{data: make([]uint32, indexCount)}
}

// Valid reports whether the buffer exists and has not been disposed.
func (b *IndexBuffer) Valid() bool { return b != nil && b.life.live() }

// Dispose invalidates the buffer.
func (b *IndexBuffer) Dispose() {
	if b != nil {
		b.life.dispose()
	}
}

// Format returns the index element format.
func (b *IndexBuffer) Format() gputypes.IndexFormat { return gputypes.IndexFormatUint32 }

// Capacity returns the number of indices the buffer can hold.
func (b *IndexBuffer) Capacity() int { return len(b.data) }

// Len returns the number of indices written so far.
func (b *IndexBuffer) Len() int { return b.used }

// Indices returns the written indices. Callers must not modify them.
func (b *IndexBuffer) Indices() []uint32 { return b.data[:b.used] }

// Map opens the buffer for writing from the start.
func (b *IndexBuffer) Map() (*IndexStream, error) {
	if !b.Valid() {
		return nil, ErrDisposed
	}
	if b.mapped {
		return nil, ErrMapped
	}
	b.mapped = true
	b.used = 0
	return &IndexStream{buf: b}, nil
}

// Unmap closes the buffer for writing.
func (b *IndexBuffer) Unmap() error {
	if !b.mapped {
		return ErrNotMapped
	}
	b.mapped = false
	return nil
}

// IndexStream appends primitives to a mapped IndexBuffer.
type IndexStream struct {
	buf *IndexBuffer
}

func (s *IndexStream) put(idx ...uint32) error {
	b := s.buf
	if !b.mapped {
		return ErrNotMapped
	}
	if b.used+len(idx) > len(b.data) {
		return ErrStreamFull
	}
	b.used += copy(b.data[b.used:], idx)
	return nil
}

// AddLine appends one line-list primitive.
func (s *IndexStream) AddLine(a, b uint32) error { return s.put(a, b) }

// AddTriangle appends one triangle-list primitive.
func (s *IndexStream) AddTriangle(a, b, c uint32) error { return s.put(a, b, c) }

// VertexFormat is the host's compiled descriptor for a vertex layout.
type VertexFormat struct {
	life   lifetime
	layout VertexLayout
}

// NewVertexFormat creates a descriptor for layout.
func NewVertexFormat(layout VertexLayout) *VertexFormat {
	return &VertexFormat{layout: layout}
}

// Valid reports whether the format exists and has not been disposed.
func (f *VertexFormat) Valid() bool { return f != nil && f.life.live() }

// Dispose invalidates the format.
func (f *VertexFormat) Dispose() {
	if f != nil {
		f.life.dispose()
	}
}

// Layout returns the described layout.
func (f *VertexFormat) Layout() VertexLayout { return f.layout }

// EffectInstance carries the shading parameters baked at build time.
type EffectInstance struct {
	life   lifetime
	layout VertexLayout

	Color    gputypes.Color
	Diffuse  gputypes.Color
	Specular gputypes.Color
	Ambient  gputypes.Color
	Emissive gputypes.Color
	// Transparency is 0 (opaque) to 1 (invisible).
	Transparency float64
	// HasColor is false for an effect that leaves the host's default look.
	HasColor bool
}

// NewEffectInstance creates an effect with no color set.
func NewEffectInstance(layout VertexLayout) *EffectInstance {
	return &EffectInstance{layout: layout}
}

// Valid reports whether the effect exists and has not been disposed.
func (e *EffectInstance) Valid() bool { return e != nil && e.life.live() }

// Dispose invalidates the effect.
func (e *EffectInstance) Dispose() {
	if e != nil {
		e.life.dispose()
	}
}

// Layout returns the layout the effect was created for.
func (e *EffectInstance) Layout() VertexLayout { return e.layout }
