// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package buffer

import (
	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
)

// geometry is the result of one traversal of a primitive collection.
// It is never modified after construction.
type geometry struct {
	groups   [][]geom.XYZ
	normals  []geom.XYZ // one per vertex, nil when not computed
	indices  []uint32
	topology host.Topology

	vertexCount    int
	primitiveCount int
}

func (g *geometry) indexCount() int { return len(g.indices) }

// points returns every vertex position in buffer order.
func (g *geometry) points() []geom.XYZ {
	out := make([]geom.XYZ, 0, g.vertexCount)
	for _, grp := range g.groups {
		out = append(out, grp...)
	}
	return out
}

// lineGeometry emits segment i as vertices 2i, 2i+1.
func lineGeometry(lines []geom.Line) *geometry {
	g := &geometry{
		groups:   make([][]geom.XYZ, 0, len(lines)),
		indices:  make([]uint32, 0, 2*len(lines)),
		topology: host.LineList,
	}
	for i, l := range lines {
		g.groups = append(g.groups, []geom.XYZ{l.EndPoint(0), l.EndPoint(1)})
		g.indices = append(g.indices, uint32(2*i), uint32(2*i+1))
	}
	g.vertexCount = 2 * len(lines)
	g.primitiveCount = len(lines)
	return g
}

// meshGeometry emits every triangle as three fresh vertices, grouped per
// source mesh.
func meshGeometry(meshes []geom.Mesh) *geometry {
	g := &geometry{topology: host.TriangleList}
	for _, m := range meshes {
		grp := make([]geom.XYZ, 0, 3*m.NumTriangles())
		for _, tri := range m.Triangles {
			grp = append(grp, tri[0], tri[1], tri[2])
			g.appendTriangle()
		}
		g.groups = append(g.groups, grp)
	}
	return g
}

// faceGeometry triangulates every face. Each triangle carries its corrected
// normal: the cross product of two edge vectors, normalized, and flipped
// when it points away from the face's reference normal.
func faceGeometry(faces []geom.Face) *geometry {
	g := &geometry{topology: host.TriangleList}
	for _, f := range faces {
		m := f.Triangulate()
		ref := f.ComputeNormal(0.5, 0.5)
		grp := make([]geom.XYZ, 0, 3*m.NumTriangles())
		for _, tri := range m.Triangles {
			n := CorrectedNormal(tri, ref)
			grp = append(grp, tri[0], tri[1], tri[2])
			g.normals = append(g.normals, n, n, n)
			g.appendTriangle()
		}
		g.groups = append(g.groups, grp)
	}
	return g
}

// edgeGeometry tessellates every edge. A polyline of k points becomes k-1
// segments (b+j, b+j+1) where b is the index of its first vertex. Edges
// that tessellate to fewer than two points are skipped.
func edgeGeometry(edges []geom.Edge) *geometry {
	g := &geometry{topology: host.LineList}
	for _, e := range edges {
		pts := e.Tessellate()
		if len(pts) < 2 {
			continue
		}
		b := uint32(g.vertexCount)
		for j := 0; j < len(pts)-1; j++ {
			g.indices = append(g.indices, b+uint32(j), b+uint32(j)+1)
		}
		g.groups = append(g.groups, append([]geom.XYZ(nil), pts...))
		g.vertexCount += len(pts)
		g.primitiveCount += len(pts) - 1
	}
	return g
}

// appendTriangle accounts for three sequential vertices.
func (g *geometry) appendTriangle() {
	b := uint32(g.vertexCount)
	g.indices = append(g.indices, b, b+1, b+2)
	g.vertexCount += 3
	g.primitiveCount++
}

// CorrectedNormal returns the unit normal of tri oriented to agree with
// ref. Degenerate triangles yield the zero vector.
func CorrectedNormal(tri geom.Triangle, ref geom.XYZ) geom.XYZ {
	n := tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Normalize()
	if n.Dot(ref) < 0 {
		n = n.Negate()
	}
	return n
}

// outline returns the bounding box of every vertex.
func (g *geometry) outline() geom.Outline {
	var o geom.Outline
	for _, grp := range g.groups {
		for _, p := range grp {
			o.AddPoint(p)
		}
	}
	return o
}
