// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads YAML scene files describing what to draw.
//
// A scene names a document, a display style and groups of primitives:
//
//	document: Bracket
//	style: shading-with-edges
//	seed: 42
//	cubes:
//	  - size: 5
//	    points: [[0, 0, 0], [10, 0, 0]]
//	    colors: {face: auto, edge: black}
//	lines:
//	  - color: ""            # one random color per segment
//	    segments: [[[0, 0, 0], [0, 0, 20]]]
//
// Color names resolve through palette.Lookup. The face color "auto" picks
// evenly spaced hues across every group that asks for it; a group with no
// face color takes the next color of palette.DefaultCycle.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
	"github.com/gogpu/overlay3d/palette"
	"github.com/gogpu/overlay3d/server"
)

// ErrInvalidScene wraps every validation failure.
var ErrInvalidScene = errors.New("config: invalid scene")

// AutoColor requests a generated face color.
const AutoColor = "auto"

// maxSceneSize bounds the size of a scene file.
const maxSceneSize = 8 << 20

// Scene is the root of a scene file.
type Scene struct {
	Document         string      `yaml:"document"`
	Style            string      `yaml:"style"`
	Seed             *uint64     `yaml:"seed,omitempty"`
	SphereResolution int         `yaml:"sphere_resolution,omitempty"`
	Cubes            []Points    `yaml:"cubes,omitempty"`
	Spheres          []Points    `yaml:"spheres,omitempty"`
	Blends           []Blend     `yaml:"blends,omitempty"`
	Lines            []LineSet   `yaml:"lines,omitempty"`
	Meshes           []MeshSet   `yaml:"meshes,omitempty"`
	Preview          PreviewSpec `yaml:"preview,omitempty"`
}

// Point is an [x, y, z] triple.
type Point []float64

// XYZ converts p. Call it only on validated points.
func (p Point) XYZ() geom.XYZ { return geom.Pt(p[0], p[1], p[2]) }

// ColorPair names the face and edge colors of a solid group.
type ColorPair struct {
	Face string `yaml:"face,omitempty"`
	Edge string `yaml:"edge,omitempty"`
	// Transparency applies to the face color, 0 opaque to 255 invisible.
	Transparency uint8 `yaml:"transparency,omitempty"`
}

// Points places one solid of Size at each point. Size is the edge length
// of cubes and the radius of spheres.
type Points struct {
	Size   float64   `yaml:"size"`
	Points []Point   `yaml:"points"`
	Colors ColorPair `yaml:"colors,omitempty"`
}

// Blend is a square loft between two points.
type Blend struct {
	Start     Point     `yaml:"start"`
	End       Point     `yaml:"end"`
	StartSize float64   `yaml:"start_size"`
	EndSize   float64   `yaml:"end_size"`
	Colors    ColorPair `yaml:"colors,omitempty"`
}

// LineSet is a list of segments sharing one color. An empty color gives
// every segment a random color.
type LineSet struct {
	Color    string    `yaml:"color,omitempty"`
	Segments [][]Point `yaml:"segments"`
}

// MeshSet is a triangle list drawn in one mesh mode.
type MeshSet struct {
	Mode      string    `yaml:"mode,omitempty"`
	Color     string    `yaml:"color,omitempty"`
	Triangles [][]Point `yaml:"triangles"`
}

// PreviewSpec controls the PNG preview of the CLI.
type PreviewSpec struct {
	Width      int    `yaml:"width,omitempty"`
	Height     int    `yaml:"height,omitempty"`
	Projection string `yaml:"projection,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxSceneSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrInvalidScene, path, info.Size(), maxSceneSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := s.Check(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Check fills in defaults and validates s. Scenes built in code call it
// before Draw.
func (s *Scene) Check() error {
	s.normalize()
	return s.Validate()
}

// Encode writes s as YAML.
func (s *Scene) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}

func (s *Scene) normalize() {
	if s.Document == "" {
		s.Document = "Overlay"
	}
	if s.Style == "" {
		s.Style = host.ShadingWithEdges.String()
	}
	if s.Preview.Width == 0 {
		s.Preview.Width = 800
	}
	if s.Preview.Height == 0 {
		s.Preview.Height = 600
	}
	if s.Preview.Projection == "" {
		s.Preview.Projection = "isometric"
	}
	for i := range s.Cubes {
		s.Cubes[i].Colors.normalize()
	}
	for i := range s.Spheres {
		s.Spheres[i].Colors.normalize()
	}
	for i := range s.Blends {
		s.Blends[i].Colors.normalize()
	}
	for i := range s.Meshes {
		if s.Meshes[i].Mode == "" {
			s.Meshes[i].Mode = server.MeshColored.String()
		}
	}
}

func (c *ColorPair) normalize() {
	if c.Edge == "" {
		c.Edge = palette.Black.Hex()
	}
}

// Validate reports every problem in s, joined, each wrapping ErrInvalidScene.
func (s *Scene) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidScene}, args...)...))
	}

	if _, err := host.ParseDisplayStyle(s.Style); err != nil {
		bad("style: %v", err)
	}
	if s.SphereResolution < 0 {
		bad("sphere_resolution %d is negative", s.SphereResolution)
	}
	checkPoint := func(where string, p Point) {
		if len(p) != 3 {
			bad("%s: point %v needs 3 coordinates", where, []float64(p))
		}
	}
	checkColor := func(where, name string, auto bool) {
		if name == "" || (auto && name == AutoColor) {
			return
		}
		if _, ok := palette.Lookup(name); !ok {
			bad("%s: unknown color %q", where, name)
		}
	}
	groups := func(kind string, gs []Points) {
		for i, g := range gs {
			where := fmt.Sprintf("%s[%d]", kind, i)
			if g.Size <= 0 {
				bad("%s: size %g must be positive", where, g.Size)
			}
			if len(g.Points) == 0 {
				bad("%s: no points", where)
			}
			for _, p := range g.Points {
				checkPoint(where, p)
			}
			checkColor(where+".face", g.Colors.Face, true)
			checkColor(where+".edge", g.Colors.Edge, false)
		}
	}
	groups("cubes", s.Cubes)
	groups("spheres", s.Spheres)

	for i, b := range s.Blends {
		where := fmt.Sprintf("blends[%d]", i)
		checkPoint(where+".start", b.Start)
		checkPoint(where+".end", b.End)
		if b.StartSize <= 0 || b.EndSize <= 0 {
			bad("%s: sizes %g and %g must be positive", where, b.StartSize, b.EndSize)
		}
		if len(b.Start) == 3 && len(b.End) == 3 && b.End.XYZ().Sub(b.Start.XYZ()).IsZeroLength() {
			bad("%s: start and end coincide", where)
		}
		checkColor(where+".face", b.Colors.Face, true)
		checkColor(where+".edge", b.Colors.Edge, false)
	}
	for i, ls := range s.Lines {
		where := fmt.Sprintf("lines[%d]", i)
		checkColor(where, ls.Color, false)
		for j, seg := range ls.Segments {
			if len(seg) != 2 {
				bad("%s: segment %d has %d points, want 2", where, j, len(seg))
				continue
			}
			checkPoint(where, seg[0])
			checkPoint(where, seg[1])
		}
	}
	for i, ms := range s.Meshes {
		where := fmt.Sprintf("meshes[%d]", i)
		mode, err := ParseMeshMode(ms.Mode)
		if err != nil {
			bad("%s: %v", where, err)
		}
		checkColor(where, ms.Color, false)
		if err == nil && mode == server.MeshShaded && ms.Color == "" {
			bad("%s: shaded meshes need a color", where)
		}
		for j, tri := range ms.Triangles {
			if len(tri) != 3 {
				bad("%s: triangle %d has %d points, want 3", where, j, len(tri))
				continue
			}
			for _, p := range tri {
				checkPoint(where, p)
			}
		}
	}
	if _, err := ParseProjection(s.Preview.Projection); err != nil {
		bad("preview: %v", err)
	}
	checkColor("preview.background", s.Preview.Background, false)
	if s.Preview.Width < 0 || s.Preview.Height < 0 {
		bad("preview: negative size %dx%d", s.Preview.Width, s.Preview.Height)
	}
	return errors.Join(errs...)
}

// ParseMeshMode parses "uncolored", "shaded" or "colored".
func ParseMeshMode(s string) (server.MeshMode, error) {
	for _, m := range []server.MeshMode{server.MeshUncolored, server.MeshShaded, server.MeshColored} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mesh mode %q", s)
}

// ParseProjection parses "isometric", "top" or "front".
func ParseProjection(s string) (memhost.Projection, error) {
	switch strings.ToLower(s) {
	case "isometric", "iso":
		return memhost.Isometric, nil
	case "top":
		return memhost.Top, nil
	case "front":
		return memhost.Front, nil
	}
	return 0, fmt.Errorf("unknown projection %q", s)
}
