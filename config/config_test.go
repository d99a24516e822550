// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overlay3d "github.com/gogpu/overlay3d"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
	"github.com/gogpu/overlay3d/palette"
	"github.com/gogpu/overlay3d/server"
)

const sample = `
document: Bracket
style: shading
seed: 42
sphere_resolution: 8
cubes:
  - size: 5
    points: [[0, 0, 0], [10, 0, 0]]
    colors: {face: auto, edge: black}
spheres:
  - size: 2
    points: [[0, 10, 0]]
    colors: {face: Steel Blue, transparency: 128}
blends:
  - start: [0, 0, 10]
    end: [0, 0, 20]
    start_size: 4
    end_size: 2
    colors: {face: auto}
lines:
  - segments:
      - [[0, 0, 0], [0, 0, 30]]
      - [[0, 0, 0], [30, 0, 0]]
  - color: red
    segments: [[[1, 1, 1], [2, 2, 2]]]
meshes:
  - mode: shaded
    color: "#336699"
    triangles: [[[0, 0, -5], [1, 0, -5], [0, 1, -5]]]
preview:
  width: 320
  height: 240
  projection: top
  background: gainsboro
`

func TestParseSample(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Bracket", s.Document)
	assert.Equal(t, host.Shading, s.DisplayStyle())
	require.NotNil(t, s.Seed)
	assert.Equal(t, uint64(42), *s.Seed)
	assert.Len(t, s.Options(), 2)
	assert.Equal(t, 3, s.PointCount())

	po := s.PreviewOptions()
	assert.Equal(t, 320, po.Width)
	assert.Equal(t, memhost.Top, po.Projection)
	assert.NotNil(t, po.Background)

	auto := s.autoColors()
	require.Len(t, auto, 2, "one cube group and one blend ask for auto")
	assert.NotEqual(t, auto[0], auto[1])
}

func TestParseDefaults(t *testing.T) {
	s, err := Parse([]byte(`cubes: [{size: 1, points: [[0, 0, 0]]}]`))
	require.NoError(t, err)
	assert.Equal(t, "Overlay", s.Document)
	assert.Equal(t, host.ShadingWithEdges, s.DisplayStyle())
	assert.Nil(t, s.Seed)
	assert.Empty(t, s.Options())
	assert.Empty(t, s.Cubes[0].Colors.Face, "unset faces rotate through the default cycle")
	assert.Equal(t, palette.Black.Hex(), s.Cubes[0].Colors.Edge)
	assert.Equal(t, memhost.Isometric, s.PreviewOptions().Projection)

	empty, err := Parse(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.PointCount())
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", `cubez: []`},
		{"unknown style", `style: cartoon`},
		{"unknown face color", `cubes: [{size: 1, points: [[0, 0, 0]], colors: {face: plaid}}]`},
		{"auto edge color", `cubes: [{size: 1, points: [[0, 0, 0]], colors: {edge: auto}}]`},
		{"non-positive size", `spheres: [{size: 0, points: [[0, 0, 0]]}]`},
		{"short point", `cubes: [{size: 1, points: [[0, 0]]}]`},
		{"no points", `cubes: [{size: 1}]`},
		{"coincident blend", `blends: [{start: [1, 1, 1], end: [1, 1, 1], start_size: 1, end_size: 1}]`},
		{"segment arity", `lines: [{segments: [[[0, 0, 0]]]}]`},
		{"unknown mesh mode", `meshes: [{mode: glossy, triangles: []}]`},
		{"shaded mesh without color", `meshes: [{mode: shaded, triangles: []}]`},
		{"triangle arity", `meshes: [{triangles: [[[0, 0, 0], [1, 0, 0]]]}]`},
		{"unknown projection", `preview: {projection: fisheye}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
		})
	}
}

func TestValidateJoinsProblems(t *testing.T) {
	_, err := Parse([]byte(`
style: cartoon
cubes: [{size: -1, points: [[0, 0, 0]], colors: {face: plaid}}]
`))
	require.ErrorIs(t, err, ErrInvalidScene)
	msg := err.Error()
	assert.Contains(t, msg, "style")
	assert.Contains(t, msg, "size -1")
	assert.Contains(t, msg, `unknown color "plaid"`)
}

func TestEncodeRoundTrip(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))
	again, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Bracket", s.Document)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDrawScene(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)

	h := memhost.New()
	doc := h.OpenDocument(s.Document)
	sm := overlay3d.New(h, s.Options()...)

	res, err := s.Draw(sm, doc)
	require.NoError(t, err)
	assert.Equal(t, Result{Solids: 4, Lines: 2, Meshes: 1}, res)
	assert.Equal(t, 7, res.Total())
	assert.Equal(t, 7, sm.Registry().Len())
	assert.Equal(t, 7, doc.Refreshes())

	spheres := sm.Registry().Active(server.FamilySolid)
	require.Len(t, spheres, 4)
	sphere := spheres[2].(*server.SolidServer)
	assert.True(t, sphere.Style().FaceColor.HasTransparency())
	steel, _ := palette.Lookup("steelblue")
	assert.Equal(t, steel.WithTransparency(128), sphere.Style().FaceColor)

	f, err := h.RenderFrame(h.OpenView("3D", doc), s.DisplayStyle())
	require.NoError(t, err)
	assert.Zero(t, f.Rejected)
	segments := 0
	for _, ls := range sm.Registry().Active(server.FamilyLine) {
		for _, fl := range f.ByServer(ls.ID()) {
			segments += fl.Primitives()
		}
	}
	assert.Equal(t, 3, segments)
}

func TestDrawRotatesUnsetFaceColors(t *testing.T) {
	s, err := Parse([]byte(`
cubes:
  - {size: 1, points: [[0, 0, 0]]}
  - {size: 1, points: [[5, 0, 0]], colors: {face: auto}}
spheres:
  - {size: 1, points: [[0, 5, 0]]}
blends:
  - {start: [0, 0, 5], end: [0, 0, 9], start_size: 2, end_size: 1, colors: {face: white}}
`))
	require.NoError(t, err)

	h := memhost.New()
	sm := overlay3d.New(h)
	_, err = s.Draw(sm, h.OpenDocument(s.Document))
	require.NoError(t, err)

	active := sm.Registry().Active(server.FamilySolid)
	require.Len(t, active, 4)
	faceOf := func(i int) palette.Color { return active[i].(*server.SolidServer).Style().FaceColor }

	cycle := palette.DefaultCycle()
	assert.Equal(t, cycle.Next(), faceOf(0))
	assert.Equal(t, palette.Spread(1, 0.75, 0.95)[0], faceOf(1))
	assert.Equal(t, cycle.Next(), faceOf(2), "auto and named faces do not advance the cycle")
	assert.Equal(t, palette.White, faceOf(3))
	assert.Equal(t, palette.Black, active[0].(*server.SolidServer).Style().EdgeColor)
}

func TestCheckSceneBuiltInCode(t *testing.T) {
	s := &Scene{Cubes: []Points{{Size: 2, Points: []Point{{0, 0, 0}}, Colors: ColorPair{Face: AutoColor}}}}
	require.NoError(t, s.Check())
	assert.Equal(t, palette.Black.Hex(), s.Cubes[0].Colors.Edge)

	s.Cubes[0].Points = append(s.Cubes[0].Points, Point{1, 2})
	require.ErrorIs(t, s.Check(), ErrInvalidScene)
}
