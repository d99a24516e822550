// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geom

import "fmt"

// Line is a bound line segment.
type Line struct {
	p0, p1 XYZ
}

// NewLine creates a bound segment between two distinct points.
func NewLine(p0, p1 XYZ) (Line, error) {
	if p1.Sub(p0).IsZeroLength() {
		return Line{}, fmt.Errorf("%w: line endpoints coincide at %v", ErrDegenerate, p0)
	}
	return Line{p0: p0, p1: p1}, nil
}

// MustLine is like NewLine but panics on degenerate input.
func MustLine(p0, p1 XYZ) Line {
	l, err := NewLine(p0, p1)
	if err != nil {
		panic(err)
	}
	return l
}

// EndPoint returns the start (i == 0) or end (i == 1) point.
func (l Line) EndPoint(i int) XYZ {
	if i == 0 {
		return l.p0
	}
	return l.p1
}

// Direction returns the unit direction from start to end.
func (l Line) Direction() XYZ {
	return l.p1.Sub(l.p0).Normalize()
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return l.p0.DistanceTo(l.p1)
}

// Triangle is three vertex positions.
type Triangle [3]XYZ

// Normal returns the unit normal following the vertex winding
// (counter-clockwise seen from the normal side).
// Degenerate triangles return the zero vector. Degeneracy is judged
// relative to the edge lengths, so small but well-shaped triangles keep
// their normal.
func (t Triangle) Normal() XYZ {
	a, b := t[1].Sub(t[0]), t[2].Sub(t[0])
	c := a.Cross(b)
	l := c.Length()
	if l == 0 || l <= areaTolerance*a.Length()*b.Length() {
		return XYZ{}
	}
	return c.Div(l)
}

// Area returns the triangle area.
func (t Triangle) Area() float64 {
	return t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Length() / 2
}

// Reversed returns the triangle with opposite winding.
func (t Triangle) Reversed() Triangle {
	return Triangle{t[0], t[2], t[1]}
}

// Mesh is a list of triangles, the output of face triangulation.
type Mesh struct {
	Triangles []Triangle
}

// NumTriangles returns the number of triangles.
func (m Mesh) NumTriangles() int {
	return len(m.Triangles)
}

// Triangle returns the i-th triangle.
func (m Mesh) Triangle(i int) Triangle {
	return m.Triangles[i]
}

// Vertices returns every triangle vertex in order, three per triangle.
// Shared vertices are repeated.
func (m Mesh) Vertices() []XYZ {
	vs := make([]XYZ, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		vs = append(vs, t[0], t[1], t[2])
	}
	return vs
}

// Clone returns a deep copy of m.
func (m Mesh) Clone() Mesh {
	return Mesh{Triangles: append([]Triangle(nil), m.Triangles...)}
}
