// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
	"github.com/gogpu/overlay3d/palette"
	"github.com/gogpu/overlay3d/solids"
)

// recorder is a DrawContext for one pass.
type recorder struct {
	transparent bool
	fail        error
	reqs        []host.FlushRequest
}

func (r *recorder) IsTransparentPass() bool { return r.transparent }

func (r *recorder) FlushBuffer(req host.FlushRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if r.fail != nil {
		return r.fail
	}
	r.reqs = append(r.reqs, req)
	return nil
}

func (r *recorder) primitives(t host.Topology) int {
	n := 0
	for _, q := range r.reqs {
		if q.Topology == t {
			n += q.PrimitiveCount
		}
	}
	return n
}

// frame renders s through both passes and returns the recorders.
func frame(s host.Server, style host.DisplayStyle) (opaque, transparent *recorder) {
	opaque, transparent = &recorder{}, &recorder{transparent: true}
	s.RenderScene(opaque, nil, style)
	s.RenderScene(transparent, nil, style)
	return opaque, transparent
}

func newDoc() host.Document {
	return memhost.New().OpenDocument("test")
}

func cube(t *testing.T, size float64) *geom.PolySolid {
	t.Helper()
	s, err := solids.CreateCube(geom.Origin, size)
	require.NoError(t, err)
	return s
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "line", FamilyLine.String())
	assert.Equal(t, "solid", FamilySolid.String())
	assert.Equal(t, "Family(9)", Family(9).String())
	assert.Equal(t, "shaded", MeshShaded.String())
}

func TestLineServer(t *testing.T) {
	lines := []geom.Line{
		geom.MustLine(geom.Origin, geom.Pt(1, 0, 0)),
		geom.MustLine(geom.Pt(0, 2, 0), geom.Pt(0, 2, 3)),
	}
	s, err := NewLineServer(newDoc(), lines)
	require.NoError(t, err)

	assert.True(t, s.CanExecute(nil))
	assert.True(t, s.UseInTransparentPass(nil))
	box := s.BoundingBox(nil)
	assert.Equal(t, geom.Pt(-1, -1, -1), box.Min)
	assert.Equal(t, geom.Pt(2, 3, 4), box.Max)

	opaque, transparent := frame(s, host.Shading)
	assert.Equal(t, 2, opaque.primitives(host.LineList))
	assert.Empty(t, transparent.reqs)
	assert.Equal(t, host.LayoutPosition, s.Storage().Layout)
}

func TestColoredLineServerPasses(t *testing.T) {
	lines := []geom.Line{geom.MustLine(geom.Origin, geom.BasisX)}
	glass := palette.Blue.WithTransparency(100)
	s, err := NewColoredLineServer(newDoc(), lines, &glass)
	require.NoError(t, err)
	opaque, transparent := frame(s, host.Shading)
	assert.Empty(t, opaque.reqs)
	assert.Len(t, transparent.reqs, 1)

	random, err := NewColoredLineServer(newDoc(), lines, nil, WithPicker(palette.NewPicker(5)))
	require.NoError(t, err)
	opaque, _ = frame(random, host.Shading)
	require.Len(t, opaque.reqs, 1)
	assert.Equal(t, host.LayoutPositionColored, opaque.reqs[0].Vertices.Layout())
}

func TestMeshServerModes(t *testing.T) {
	meshes := []geom.Mesh{{Triangles: []geom.Triangle{{geom.Origin, geom.BasisX, geom.BasisY}}}}
	red := palette.Red

	_, err := NewMeshServer(newDoc(), meshes, MeshShaded, nil)
	require.ErrorIs(t, err, ErrColorRequired)

	tests := []struct {
		mode     MeshMode
		color    *palette.Color
		layout   host.VertexLayout
		hasColor bool
	}{
		{MeshUncolored, &red, host.LayoutPosition, false},
		{MeshShaded, &red, host.LayoutPosition, true},
		{MeshColored, &red, host.LayoutPositionColored, false},
		{MeshColored, nil, host.LayoutPositionColored, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s, err := NewMeshServer(newDoc(), meshes, tt.mode, tt.color)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, s.Mode())
			opaque, _ := frame(s, host.Shading)
			require.Len(t, opaque.reqs, 1)
			assert.Equal(t, tt.layout, opaque.reqs[0].Vertices.Layout())
			assert.Equal(t, tt.hasColor, opaque.reqs[0].Effect.HasColor)
			assert.Equal(t, 1, opaque.reqs[0].PrimitiveCount)
		})
	}
}

func TestSolidServerPasses(t *testing.T) {
	tests := []struct {
		name             string
		face             palette.Color
		style            host.DisplayStyle
		opaqueFaces      int
		transparentFaces int
	}{
		{"opaque faces", palette.Orange, host.Shading, 12, 0},
		{"transparent faces", palette.Orange.WithTransparency(128), host.Shading, 0, 12},
		{"wireframe opaque", palette.Orange, host.Wireframe, 0, 0},
		{"wireframe transparent", palette.Orange.WithTransparency(128), host.Wireframe, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSolidServer(newDoc(), cube(t, 2), SolidStyle{FaceColor: tt.face, EdgeColor: palette.Black})
			require.NoError(t, err)
			opaque, transparent := frame(s, tt.style)

			assert.Equal(t, tt.opaqueFaces, opaque.primitives(host.TriangleList))
			assert.Equal(t, tt.transparentFaces, transparent.primitives(host.TriangleList))
			// Edges are drawn in every pass.
			assert.Equal(t, 12, opaque.primitives(host.LineList))
			assert.Equal(t, 12, transparent.primitives(host.LineList))
			assert.NoError(t, s.LastError())
		})
	}
}

func TestSolidServerBuffers(t *testing.T) {
	s, err := NewSolidServer(newDoc(), cube(t, 5), SolidStyle{FaceColor: palette.Green, EdgeColor: palette.Black, WithNormals: true})
	require.NoError(t, err)
	assert.Nil(t, s.FaceStorage(OpaquePass))

	opaque := &recorder{}
	s.RenderScene(opaque, nil, host.Shading)
	f := s.FaceStorage(OpaquePass)
	require.NotNil(t, f)
	assert.Equal(t, 12, f.PrimitiveCount)
	assert.Equal(t, host.LayoutPositionNormalColored, f.Layout)
	assert.Equal(t, 12, s.EdgeStorage(OpaquePass).PrimitiveCount)
	assert.Nil(t, s.FaceStorage(TransparentPass), "built lazily per pass")
	assert.Equal(t, 24, s.Stats().Primitives)

	box := s.BoundingBox(nil)
	assert.True(t, box.Min.IsAlmostEqualTo(geom.Pt(-3.5, -3.5, -3.5), 1e-9), "min %v", box.Min)
	assert.True(t, box.Max.IsAlmostEqualTo(geom.Pt(3.5, 3.5, 3.5), 1e-9), "max %v", box.Max)
}

func TestSolidServerRebuildsOnlyWhenStale(t *testing.T) {
	s, err := NewSolidServer(newDoc(), cube(t, 1), SolidStyle{FaceColor: palette.Red, EdgeColor: palette.Black})
	require.NoError(t, err)

	opaque := &recorder{}
	s.RenderScene(opaque, nil, host.Shading)
	assert.Equal(t, int64(2), s.Stats().Builds)

	for i := 0; i < 5; i++ {
		s.RenderScene(&recorder{}, nil, host.Shading)
	}
	assert.Equal(t, int64(2), s.Stats().Builds, "no rebuild while nothing changed")

	s.RenderScene(&recorder{}, nil, host.HLR)
	assert.Equal(t, int64(4), s.Stats().Builds, "style change rebuilds faces and edges")
	assert.Equal(t, s.FaceStorage(OpaquePass).Effect.Emissive, palette.Red.RGBA())

	s.EdgeStorage(OpaquePass).IndexBuffer.Dispose()
	s.RenderScene(&recorder{}, nil, host.HLR)
	assert.Equal(t, int64(5), s.Stats().Builds, "only the disposed storage is rebuilt")
}

func TestSolidServerKeepsPrivateCopy(t *testing.T) {
	src := cube(t, 1)
	s, err := NewSolidServer(newDoc(), src, SolidStyle{FaceColor: palette.Red})
	require.NoError(t, err)
	copied, ok := s.Solid().(*geom.PolySolid)
	require.True(t, ok)
	assert.NotSame(t, src, copied)
	assert.InDelta(t, src.Volume(), copied.Volume(), 1e-12)
}

// brokenFace fails inside the kernel.
type brokenFace struct{}

func (brokenFace) Triangulate() geom.Mesh              { panic("kernel: triangulation failed") }
func (brokenFace) ComputeNormal(u, v float64) geom.XYZ { return geom.BasisZ }

type brokenSolid struct{ *geom.PolySolid }

func (b brokenSolid) Faces() []geom.Face { return []geom.Face{brokenFace{}} }
func (b brokenSolid) Clone() geom.Solid  { return b }

func TestSolidServerRecoversKernelPanic(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	s, err := NewSolidServer(newDoc(), brokenSolid{cube(t, 1)}, SolidStyle{FaceColor: palette.Red}, WithLogger(logger), WithName("broken"))
	require.NoError(t, err)
	assert.Equal(t, "broken", s.Name())

	box := s.BoundingBox(nil)
	assert.False(t, box.IsEmpty(), "edges still bound the solid")

	opaque := &recorder{}
	require.NotPanics(t, func() { s.RenderScene(opaque, nil, host.Shading) })
	assert.Empty(t, opaque.reqs)
	require.ErrorIs(t, s.LastError(), ErrRenderPanic)
	assert.Equal(t, int64(1), s.Stats().Failures)
	assert.Contains(t, logs.String(), "render failed")
	assert.Contains(t, logs.String(), "server=broken")
}

func TestServerRecordsFlushErrors(t *testing.T) {
	s, err := NewSolidServer(newDoc(), cube(t, 1), SolidStyle{FaceColor: palette.Red})
	require.NoError(t, err)
	boom := errors.New("device lost")
	s.RenderScene(&recorder{fail: boom}, nil, host.Shading)
	require.ErrorIs(t, s.LastError(), boom)
	assert.Zero(t, s.Stats().Flushes)

	s.RenderScene(&recorder{}, nil, host.Shading)
	assert.Equal(t, int64(2), s.Stats().Flushes)
}

func TestConstructorPreconditions(t *testing.T) {
	_, err := NewSolidServer(newDoc(), nil, SolidStyle{})
	require.ErrorIs(t, err, ErrNilSolid)
	_, err = NewSolidServer(nil, cube(t, 1), SolidStyle{})
	require.ErrorIs(t, err, ErrNilDocument)
	_, err = NewLineServer(nil, nil)
	require.ErrorIs(t, err, ErrNilDocument)

	a, err := NewLineServer(newDoc(), nil)
	require.NoError(t, err)
	b, err := NewLineServer(newDoc(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())

	opaque, _ := frame(a, host.Shading)
	assert.Empty(t, opaque.reqs, "nothing to draw, nothing flushed")
}
