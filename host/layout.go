// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// VertexLayout selects the per-vertex attributes packed into a buffer.
type VertexLayout int

const (
	// LayoutPosition packs xyz only. Color comes from the effect instance.
	LayoutPosition VertexLayout = iota
	// LayoutPositionColored packs xyz followed by rgba.
	LayoutPositionColored
	// LayoutPositionNormalColored packs xyz, the triangle normal, then rgba.
	LayoutPositionNormalColored
)

// String implements fmt.Stringer.
func (l VertexLayout) String() string {
	switch l {
	case LayoutPosition:
		return "position"
	case LayoutPositionColored:
		return "position-colored"
	case LayoutPositionNormalColored:
		return "position-normal-colored"
	}
	return fmt.Sprintf("VertexLayout(%d)", int(l))
}

// FloatsPerVertex returns the number of float32 values per vertex.
func (l VertexLayout) FloatsPerVertex() int {
	switch l {
	case LayoutPositionColored:
		return 7
	case LayoutPositionNormalColored:
		return 10
	default:
		return 3
	}
}

// Stride returns the vertex size in bytes.
func (l VertexLayout) Stride() int {
	return l.FloatsPerVertex() * 4
}

// HasColor reports whether vertices carry their own color.
func (l VertexLayout) HasColor() bool {
	return l != LayoutPosition
}

// HasNormal reports whether vertices carry a normal.
func (l VertexLayout) HasNormal() bool {
	return l == LayoutPositionNormalColored
}

// BufferLayout returns the pipeline descriptor for the layout.
func (l VertexLayout) BufferLayout() gputypes.VertexBufferLayout {
	switch l {
	case LayoutPositionColored:
		return gputypes.VertexBufferLayout{
			ArrayStride: 28,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
			},
		}
	case LayoutPositionNormalColored:
		return gputypes.VertexBufferLayout{
			ArrayStride: 40,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // normal
				{Format: gputypes.VertexFormatFloat32x4, Offset: 24, ShaderLocation: 2}, // color
			},
		}
	default:
		return gputypes.VertexBufferLayout{
			ArrayStride: 12,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		}
	}
}

// Topology is the primitive assembly used by a flush.
type Topology = gputypes.PrimitiveTopology

const (
	LineList     = gputypes.PrimitiveTopologyLineList
	TriangleList = gputypes.PrimitiveTopologyTriangleList
)

// IndicesPerPrimitive returns 2 for line lists and 3 for triangle lists.
func IndicesPerPrimitive(t Topology) int {
	if t == LineList {
		return 2
	}
	return 3
}
