// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/gogpu/overlay3d/config"
)

// gridScene builds the default scene: an n×n grid of cubes in auto colors,
// a row of translucent spheres above it, a tapering blend and the axes.
func gridScene(n int) (*config.Scene, error) {
	if n < 1 {
		return nil, fmt.Errorf("grid %d must be at least 1", n)
	}
	const pitch = 10.0
	seed := uint64(1)
	s := &config.Scene{
		Document: fmt.Sprintf("Grid %dx%d", n, n),
		Seed:     &seed,
		Preview:  config.PreviewSpec{Width: 1024, Height: 768, Background: "gainsboro"},
	}

	for row := 0; row < n; row++ {
		g := config.Points{Size: 5, Colors: config.ColorPair{Face: config.AutoColor, Edge: "black"}}
		for col := 0; col < n; col++ {
			g.Points = append(g.Points, config.Point{float64(col) * pitch, float64(row) * pitch, 0})
		}
		s.Cubes = append(s.Cubes, g)
	}

	spheres := config.Points{Size: 3, Colors: config.ColorPair{Face: "dodgerblue", Edge: "darkblue", Transparency: 96}}
	for col := 0; col < n; col++ {
		spheres.Points = append(spheres.Points, config.Point{float64(col) * pitch, 0, 12})
	}
	s.Spheres = append(s.Spheres, spheres)

	top := float64(n) * pitch
	s.Blends = append(s.Blends, config.Blend{
		Start:     config.Point{top, top, 0},
		End:       config.Point{top, top, 20},
		StartSize: 8,
		EndSize:   3,
		Colors:    config.ColorPair{Face: "crimson", Edge: "black"},
	})

	s.Lines = append(s.Lines, config.LineSet{Segments: [][]config.Point{
		{{0, 0, 0}, {top, 0, 0}},
		{{0, 0, 0}, {0, top, 0}},
		{{0, 0, 0}, {0, 0, top}},
	}})

	if err := s.Check(); err != nil {
		return nil, fmt.Errorf("grid scene: %w", err)
	}
	return s, nil
}
