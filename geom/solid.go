// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import (
	"errors"
	"fmt"
)

// Errors returned by geometry construction.
var (
	// ErrDegenerate indicates zero-length vectors, coincident points or
	// zero-area faces where a proper shape is required.
	ErrDegenerate = errors.New("geom: degenerate geometry")

	// ErrInvalidProfile indicates a profile that cannot be swept, lofted or
	// revolved (too few points, mismatched loops).
	ErrInvalidProfile = errors.New("geom: invalid profile")
)

// Face is a bounded surface of a solid.
type Face interface {
	// Triangulate returns a triangle mesh approximating the face.
	// The winding of the returned triangles is not guaranteed.
	Triangulate() Mesh

	// ComputeNormal returns the outward unit normal at the surface
	// parameter (u, v), each in [0, 1].
	ComputeNormal(u, v float64) XYZ
}

// Edge is a boundary curve between faces.
type Edge interface {
	// Tessellate returns an ordered polyline approximating the edge,
	// with at least two points.
	Tessellate() []XYZ
}

// Solid is a boundary representation: ordered edges and faces.
type Solid interface {
	Edges() []Edge
	Faces() []Face

	// Volume returns the enclosed volume.
	Volume() float64

	// Clone returns a deep copy that shares no mutable state with the
	// receiver.
	Clone() Solid
}

// PolyFace is a planar or piecewise planar face stored as a triangle mesh
// with one reference normal.
type PolyFace struct {
	mesh   Mesh
	normal XYZ
}

// NewPolyFace creates a face from its triangulation and outward normal.
func NewPolyFace(mesh Mesh, normal XYZ) (*PolyFace, error) {
	if mesh.NumTriangles() == 0 {
		return nil, fmt.Errorf("%w: face has no triangles", ErrDegenerate)
	}
	n := normal.Normalize()
	if n.IsZeroLength() {
		return nil, fmt.Errorf("%w: face normal has zero length", ErrDegenerate)
	}
	return &PolyFace{mesh: mesh.Clone(), normal: n}, nil
}

// Triangulate implements Face.
func (f *PolyFace) Triangulate() Mesh {
	return f.mesh.Clone()
}

// ComputeNormal implements Face. The face exposes a single reference
// normal, so every parameter yields the same vector.
func (f *PolyFace) ComputeNormal(u, v float64) XYZ {
	return f.normal
}

// Area returns the total triangle area of the face.
func (f *PolyFace) Area() float64 {
	var a float64
	for _, t := range f.mesh.Triangles {
		a += t.Area()
	}
	return a
}

// PolyEdge is an edge stored as a polyline.
type PolyEdge struct {
	points []XYZ
}

// NewPolyEdge creates an edge through points in order.
func NewPolyEdge(points ...XYZ) (*PolyEdge, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: edge needs at least 2 points, got %d", ErrDegenerate, len(points))
	}
	return &PolyEdge{points: append([]XYZ(nil), points...)}, nil
}

// Tessellate implements Edge.
func (e *PolyEdge) Tessellate() []XYZ {
	return append([]XYZ(nil), e.points...)
}

// PolySolid is the reference Solid implementation: a closed polyhedral
// boundary representation.
type PolySolid struct {
	faces []*PolyFace
	edges []*PolyEdge
}

// NewPolySolid assembles a solid from faces and edges.
// The slices are copied; the faces and edges themselves are immutable.
func NewPolySolid(faces []*PolyFace, edges []*PolyEdge) *PolySolid {
	return &PolySolid{
		faces: append([]*PolyFace(nil), faces...),
		edges: append([]*PolyEdge(nil), edges...),
	}
}

// Faces implements Solid.
func (s *PolySolid) Faces() []Face {
	out := make([]Face, len(s.faces))
	for i, f := range s.faces {
		out[i] = f
	}
	return out
}

// Edges implements Solid.
func (s *PolySolid) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	for i, e := range s.edges {
		out[i] = e
	}
	return out
}

// NumFaces returns the number of faces.
func (s *PolySolid) NumFaces() int { return len(s.faces) }

// NumEdges returns the number of edges.
func (s *PolySolid) NumEdges() int { return len(s.edges) }

// Volume implements Solid using the divergence theorem. Each triangle is
// oriented along its face normal before accumulating.
func (s *PolySolid) Volume() float64 {
	var v float64
	for _, f := range s.faces {
		for _, t := range f.mesh.Triangles {
			if t.Normal().Dot(f.normal) < 0 {
				t = t.Reversed()
			}
			v += t[0].Dot(t[1].Cross(t[2])) / 6
		}
	}
	return v
}

// SurfaceArea returns the sum of all face areas.
func (s *PolySolid) SurfaceArea() float64 {
	var a float64
	for _, f := range s.faces {
		a += f.Area()
	}
	return a
}

// Clone implements Solid.
func (s *PolySolid) Clone() Solid {
	return s.Transformed(Identity())
}

// Transformed returns a new solid with every point mapped by t.
// Normals are mapped by the linear part and renormalized, so t should be a
// rigid motion or a positive uniform scale.
func (s *PolySolid) Transformed(t Transform) *PolySolid {
	out := &PolySolid{
		faces: make([]*PolyFace, len(s.faces)),
		edges: make([]*PolyEdge, len(s.edges)),
	}
	for i, f := range s.faces {
		tris := make([]Triangle, len(f.mesh.Triangles))
		for j, tri := range f.mesh.Triangles {
			tris[j] = Triangle{t.OfPoint(tri[0]), t.OfPoint(tri[1]), t.OfPoint(tri[2])}
		}
		out.faces[i] = &PolyFace{
			mesh:   Mesh{Triangles: tris},
			normal: t.OfVector(f.normal).Normalize(),
		}
	}
	for i, e := range s.edges {
		out.edges[i] = &PolyEdge{points: t.OfPoints(e.points)}
	}
	return out
}

// Outline returns the bounding box of every face vertex and edge point.
func (s *PolySolid) Outline() Outline {
	var o Outline
	for _, f := range s.faces {
		for _, t := range f.mesh.Triangles {
			o.AddPoint(t[0])
			o.AddPoint(t[1])
			o.AddPoint(t[2])
		}
	}
	for _, e := range s.edges {
		for _, p := range e.points {
			o.AddPoint(p)
		}
	}
	return o
}
