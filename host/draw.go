// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"errors"
	"fmt"
)

// ErrInvalidFlush is returned by DrawContext implementations that reject a
// malformed FlushRequest.
var ErrInvalidFlush = errors.New("host: invalid flush request")

// FlushRequest is one draw call handed to the host.
type FlushRequest struct {
	Vertices       *VertexBuffer
	VertexCount    int
	Indices        *IndexBuffer
	IndexCount     int
	Format         *VertexFormat
	Effect         *EffectInstance
	Topology       Topology
	StartIndex     int
	PrimitiveCount int
}

// Validate checks that the request is internally consistent and that every
// resource is still live.
func (r FlushRequest) Validate() error {
	switch {
	case !r.Vertices.Valid():
		return fmt.Errorf("%w: vertex buffer: %w", ErrInvalidFlush, ErrDisposed)
	case !r.Indices.Valid():
		return fmt.Errorf("%w: index buffer: %w", ErrInvalidFlush, ErrDisposed)
	case !r.Format.Valid():
		return fmt.Errorf("%w: vertex format: %w", ErrInvalidFlush, ErrDisposed)
	case !r.Effect.Valid():
		return fmt.Errorf("%w: effect: %w", ErrInvalidFlush, ErrDisposed)
	case r.Format.Layout() != r.Vertices.Layout():
		return fmt.Errorf("%w: format %s does not match buffer %s", ErrInvalidFlush, r.Format.Layout(), r.Vertices.Layout())
	case r.PrimitiveCount <= 0:
		return fmt.Errorf("%w: primitive count %d", ErrInvalidFlush, r.PrimitiveCount)
	case r.VertexCount > r.Vertices.Len():
		return fmt.Errorf("%w: vertex count %d exceeds buffer %d", ErrInvalidFlush, r.VertexCount, r.Vertices.Len())
	case r.IndexCount > r.Indices.Len():
		return fmt.Errorf("%w: index count %d exceeds buffer %d", ErrInvalidFlush, r.IndexCount, r.Indices.Len())
	case r.StartIndex < 0 || r.StartIndex+r.PrimitiveCount*IndicesPerPrimitive(r.Topology) > r.IndexCount:
		return fmt.Errorf("%w: %d primitives from %d overrun %d indices", ErrInvalidFlush, r.PrimitiveCount, r.StartIndex, r.IndexCount)
	}
	return nil
}

// DrawContext is the host's draw sink for the current pass.
type DrawContext interface {
	// FlushBuffer submits one draw call.
	FlushBuffer(req FlushRequest) error
	// IsTransparentPass reports whether alpha-blended geometry may be drawn.
	IsTransparentPass() bool
}

// Document is a model the host can refresh. Documents compare by identity.
type Document interface {
	Title() string
	// IsValidObject reports whether the document is still open.
	IsValidObject() bool
	// UpdateAllOpenViews asks the host to redraw every view of the document.
	UpdateAllOpenViews() error
}

// View is a viewport of a document.
type View interface {
	Name() string
	Document() Document
}
