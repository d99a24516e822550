// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"image/color"

	overlay3d "github.com/gogpu/overlay3d"
	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
	"github.com/gogpu/overlay3d/palette"
)

// Result counts the servers a scene created.
type Result struct {
	Solids int
	Lines  int
	Meshes int
}

// Total returns the number of servers over all families.
func (r Result) Total() int { return r.Solids + r.Lines + r.Meshes }

// Options returns the state machine options the scene asks for.
func (s *Scene) Options() []overlay3d.Option {
	var opts []overlay3d.Option
	if s.Seed != nil {
		opts = append(opts, overlay3d.WithPicker(palette.NewPicker(*s.Seed)))
	}
	if s.SphereResolution > 0 {
		opts = append(opts, overlay3d.WithSphereResolution(s.SphereResolution))
	}
	return opts
}

// DisplayStyle returns the parsed style. Call it only on a validated scene.
func (s *Scene) DisplayStyle() host.DisplayStyle {
	st, _ := host.ParseDisplayStyle(s.Style)
	return st
}

// PointCount returns the number of cubes and spheres the scene places.
func (s *Scene) PointCount() int {
	n := 0
	for _, g := range s.Cubes {
		n += len(g.Points)
	}
	for _, g := range s.Spheres {
		n += len(g.Points)
	}
	return n
}

// PreviewOptions converts the preview section.
func (s *Scene) PreviewOptions() memhost.PreviewOptions {
	proj, _ := ParseProjection(s.Preview.Projection)
	opts := memhost.PreviewOptions{
		Width:      s.Preview.Width,
		Height:     s.Preview.Height,
		Projection: proj,
	}
	if c, ok := palette.Lookup(s.Preview.Background); ok {
		opts.Background = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	return opts
}

// autoColors returns one generated color per group whose face is AutoColor,
// in cubes, spheres, blends order.
func (s *Scene) autoColors() []palette.Color {
	n := 0
	for _, c := range s.colorPairs() {
		if c.Face == AutoColor {
			n++
		}
	}
	return palette.Spread(n, 0.75, 0.95)
}

func (s *Scene) colorPairs() []ColorPair {
	var out []ColorPair
	for _, g := range s.Cubes {
		out = append(out, g.Colors)
	}
	for _, g := range s.Spheres {
		out = append(out, g.Colors)
	}
	for _, b := range s.Blends {
		out = append(out, b.Colors)
	}
	return out
}

// colorsFor resolves c. An auto face takes the next generated color and an
// unset face the next color of cycle.
func colorsFor(c ColorPair, auto *[]palette.Color, cycle *palette.Cycle) overlay3d.Colors {
	var face palette.Color
	switch c.Face {
	case AutoColor:
		face, *auto = (*auto)[0], (*auto)[1:]
	case "":
		face = cycle.Next()
	default:
		face, _ = palette.Lookup(c.Face)
	}
	edge, _ := palette.Lookup(c.Edge)
	return overlay3d.Colors{Face: face.WithTransparency(c.Transparency), Edge: edge}
}

func optionalColor(name string) *palette.Color {
	c, ok := palette.Lookup(name)
	if !ok {
		return nil
	}
	return &c
}

// Draw issues one draw intent per group of s against doc. It stops at the
// first failing intent; servers registered before it stay registered.
func (s *Scene) Draw(sm *overlay3d.StateMachine, doc host.Document) (Result, error) {
	var res Result
	auto := s.autoColors()
	cycle := palette.DefaultCycle()

	for i, g := range s.Cubes {
		ss, err := sm.DrawPointsCube(doc, points(g.Points), g.Size, colorsFor(g.Colors, &auto, cycle))
		res.Solids += len(ss)
		if err != nil {
			return res, fmt.Errorf("config: cubes[%d]: %w", i, err)
		}
	}
	for i, g := range s.Spheres {
		ss, err := sm.DrawPointsSphere(doc, points(g.Points), g.Size, colorsFor(g.Colors, &auto, cycle))
		res.Solids += len(ss)
		if err != nil {
			return res, fmt.Errorf("config: spheres[%d]: %w", i, err)
		}
	}
	for i, b := range s.Blends {
		if _, err := sm.DrawBlend(doc, b.Start.XYZ(), b.End.XYZ(), b.StartSize, b.EndSize, colorsFor(b.Colors, &auto, cycle)); err != nil {
			return res, fmt.Errorf("config: blends[%d]: %w", i, err)
		}
		res.Solids++
	}
	for i, ls := range s.Lines {
		lines := make([]geom.Line, 0, len(ls.Segments))
		for _, seg := range ls.Segments {
			l, err := geom.NewLine(seg[0].XYZ(), seg[1].XYZ())
			if err != nil {
				return res, fmt.Errorf("config: lines[%d]: %w", i, err)
			}
			lines = append(lines, l)
		}
		if _, err := sm.DrawLines(doc, lines, optionalColor(ls.Color)); err != nil {
			return res, fmt.Errorf("config: lines[%d]: %w", i, err)
		}
		res.Lines++
	}
	for i, ms := range s.Meshes {
		mode, _ := ParseMeshMode(ms.Mode)
		m := geom.Mesh{Triangles: make([]geom.Triangle, 0, len(ms.Triangles))}
		for _, tri := range ms.Triangles {
			m.Triangles = append(m.Triangles, geom.Triangle{tri[0].XYZ(), tri[1].XYZ(), tri[2].XYZ()})
		}
		if _, err := sm.DrawMeshes(doc, []geom.Mesh{m}, mode, optionalColor(ms.Color)); err != nil {
			return res, fmt.Errorf("config: meshes[%d]: %w", i, err)
		}
		res.Meshes++
	}
	return res, nil
}

func points(ps []Point) []geom.XYZ {
	out := make([]geom.XYZ, len(ps))
	for i, p := range ps {
		out[i] = p.XYZ()
	}
	return out
}
