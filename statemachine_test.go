// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay3d

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
	"github.com/gogpu/overlay3d/palette"
	"github.com/gogpu/overlay3d/server"
	"github.com/gogpu/overlay3d/solids"
)

var origin = geom.Origin

func newTestMachine(t *testing.T, opts ...Option) (*StateMachine, *memhost.Host) {
	t.Helper()
	h := memhost.New()
	return New(h, opts...), h
}

func TestDrawPointCubeEndToEnd(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")

	s, err := sm.DrawPointCube(doc, origin, 5, DefaultColors)
	require.NoError(t, err)

	assert.Len(t, sm.Registry().Active(server.FamilySolid), 1)
	assert.Len(t, sm.Registry().DocumentsOf(server.FamilySolid), 1)
	assert.Equal(t, 1, doc.Refreshes())

	f, err := h.RenderFrame(h.OpenView("3D", doc), host.Shading)
	require.NoError(t, err)
	require.NotNil(t, s.FaceStorage(server.OpaquePass))
	assert.True(t, s.Style().WithNormals)
	assert.Equal(t, host.LayoutPositionNormalColored, s.FaceStorage(server.OpaquePass).Layout)
	assert.Equal(t, 12, s.FaceStorage(server.OpaquePass).PrimitiveCount)
	assert.Equal(t, 12, s.EdgeStorage(server.OpaquePass).PrimitiveCount)
	assert.Equal(t, 12, f.Primitives(host.TriangleList))
	assert.Equal(t, 24, f.Primitives(host.LineList), "edges submit in both passes")
	assert.Zero(t, f.Rejected)

	box := s.BoundingBox(nil)
	assert.True(t, box.Min.IsAlmostEqualTo(geom.Pt(-3.5, -3.5, -3.5), 1e-9), "min %v", box.Min)
	assert.True(t, box.Max.IsAlmostEqualTo(geom.Pt(3.5, 3.5, 3.5), 1e-9), "max %v", box.Max)
}

func TestDrawTransparentCube(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")

	colors := Colors{Face: palette.Blue.WithTransparency(128), Edge: palette.Black}
	s, err := sm.DrawPointCube(doc, origin, 2, colors)
	require.NoError(t, err)

	f, err := h.RenderFrame(h.OpenView("3D", doc), host.ShadingWithEdges)
	require.NoError(t, err)

	var opaqueTris, transparentTris int
	for _, fl := range f.ByServer(s.ID()) {
		if fl.Request.Topology != host.TriangleList {
			continue
		}
		if fl.Transparent {
			transparentTris += fl.Primitives()
		} else {
			opaqueTris += fl.Primitives()
		}
	}
	assert.Zero(t, opaqueTris)
	assert.Equal(t, 12, transparentTris)
}

func TestDrawWireframeSkipsFaces(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")
	_, err := sm.DrawPointCube(doc, origin, 1, DefaultColors)
	require.NoError(t, err)

	f, err := h.RenderFrame(h.OpenView("3D", doc), host.Wireframe)
	require.NoError(t, err)
	assert.Zero(t, f.Primitives(host.TriangleList))
	assert.Equal(t, 24, f.Primitives(host.LineList))
}

func TestDrawPointsSphere(t *testing.T) {
	sm, h := newTestMachine(t, WithSphereResolution(8))
	doc := h.OpenDocument("part")
	points := []geom.XYZ{origin, geom.Pt(10, 0, 0), geom.Pt(0, 10, 0)}

	ss, err := sm.DrawPointsSphere(doc, points, 2, DefaultColors)
	require.NoError(t, err)
	require.Len(t, ss, 3)
	assert.Len(t, sm.Registry().Active(server.FamilySolid), 3)
	assert.Equal(t, 3, doc.Refreshes())

	for i, s := range ss {
		assert.True(t, s.Style().WithNormals, "spheres are lit")
		box := s.BoundingBox(nil)
		c := box.Center()
		assert.True(t, c.IsAlmostEqualTo(points[i], 1e-6), "sphere %d centered at %v", i, c)
	}

	// Sphere templates are shared across the batch.
	assert.Equal(t, uint64(2), sm.Generator().TemplateStats().Hits)
}

func TestDrawPointsCubeStopsOnError(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")

	ss, err := sm.DrawPointsCube(doc, []geom.XYZ{origin, geom.Pt(1, 1, 1)}, -1, DefaultColors)
	require.ErrorIs(t, err, solids.ErrInvalidSize)
	assert.Empty(t, ss)
	assert.Zero(t, sm.Registry().Len())
}

func TestDrawBlend(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")

	s, err := sm.DrawBlend(doc, origin, geom.Pt(0, 0, 10), 4, 2, DefaultColors)
	require.NoError(t, err)

	_, err = h.RenderFrame(h.OpenView("3D", doc), host.Shading)
	require.NoError(t, err)
	require.NotNil(t, s.FaceStorage(server.OpaquePass))
	assert.Equal(t, host.LayoutPositionNormalColored, s.FaceStorage(server.OpaquePass).Layout)

	solid := s.Solid()
	assert.Len(t, solid.Faces(), 6)
	want := 10.0 / 3 * (16 + 4 + math.Sqrt(16*4))
	assert.InDelta(t, want, solid.Volume(), 1e-6)
}

func TestDrawSolidCopiesInput(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")

	src, err := solids.CreateCube(origin, 1)
	require.NoError(t, err)
	s, err := sm.DrawSolidWithNormals(doc, src, DefaultColors)
	require.NoError(t, err)
	assert.NotSame(t, geom.Solid(src), s.Solid())
	assert.True(t, s.Style().WithNormals)

	s2, err := sm.DrawSolid(doc, src, DefaultColors)
	require.NoError(t, err)
	assert.False(t, s2.Style().WithNormals)
}

func TestDrawLinesAndMeshes(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("sketch")

	lines := []geom.Line{geom.MustLine(origin, geom.Pt(1, 0, 0))}
	red := palette.Red
	_, err := sm.DrawLines(doc, lines, &red)
	require.NoError(t, err)
	_, err = sm.DrawLines(doc, lines, nil)
	require.NoError(t, err)

	m := geom.Mesh{Triangles: []geom.Triangle{{origin, geom.BasisX, geom.BasisY}}}
	_, err = sm.DrawMeshes(doc, []geom.Mesh{m}, server.MeshShaded, &red)
	require.NoError(t, err)

	assert.Len(t, sm.Registry().Active(server.FamilyLine), 2)
	assert.Len(t, sm.Registry().Active(server.FamilyMesh), 1)

	f, err := h.RenderFrame(h.OpenView("3D", doc), host.Shading)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Primitives(host.LineList))
	assert.Equal(t, 1, f.Primitives(host.TriangleList))
}

func TestDrawRejectsNilDocument(t *testing.T) {
	sm, _ := newTestMachine(t)

	_, err := sm.DrawPointCube(nil, origin, 1, DefaultColors)
	require.ErrorIs(t, err, ErrNilDocument)
	_, err = sm.DrawLines(nil, nil, nil)
	require.ErrorIs(t, err, ErrNilDocument)
	_, err = sm.DrawMeshes(nil, nil, server.MeshColored, nil)
	require.ErrorIs(t, err, ErrNilDocument)
	assert.Zero(t, sm.Registry().Len())
}

func TestDrawWhileHostUnavailable(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")
	h.SetUnavailable(true)

	_, err := sm.DrawPointCube(doc, origin, 1, DefaultColors)
	require.ErrorIs(t, err, host.ErrUnavailable)
	assert.Zero(t, sm.Registry().Len())
	assert.Zero(t, doc.Refreshes())
}

func TestClearFamilies(t *testing.T) {
	sm, h := newTestMachine(t)
	solidDoc := h.OpenDocument("solids")
	lineDoc := h.OpenDocument("lines")

	_, err := sm.DrawPointCube(solidDoc, origin, 1, DefaultColors)
	require.NoError(t, err)
	_, err = sm.DrawLines(lineDoc, []geom.Line{geom.MustLine(origin, geom.BasisZ)}, nil)
	require.NoError(t, err)

	require.NoError(t, sm.ClearLineServers())
	assert.Empty(t, sm.Registry().Active(server.FamilyLine))
	assert.Len(t, sm.Registry().Active(server.FamilySolid), 1)
	assert.Equal(t, 2, lineDoc.Refreshes(), "cleared document is refreshed")
	assert.Equal(t, 1, solidDoc.Refreshes())

	// Clearing an empty family is a no-op.
	require.NoError(t, sm.ClearMeshServers())

	require.NoError(t, sm.ClearAll())
	assert.Zero(t, sm.Registry().Len())
	registered, err := h.RegisteredServerIDs()
	require.NoError(t, err)
	assert.Empty(t, registered)
	active, err := h.ActiveServerIDs()
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestClearAllJoinsErrors(t *testing.T) {
	sm, h := newTestMachine(t)
	doc := h.OpenDocument("part")
	_, err := sm.DrawPointCube(doc, origin, 1, DefaultColors)
	require.NoError(t, err)

	h.SetUnavailable(true)
	err = sm.ClearAll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, host.ErrUnavailable))
	assert.Equal(t, 1, sm.Registry().Len(), "failed clear keeps the servers")

	h.SetUnavailable(false)
	require.NoError(t, sm.ClearSolidServers())
	assert.Zero(t, sm.Registry().Len())
}
