// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package server

import (
	"github.com/gogpu/overlay3d/buffer"
	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/palette"
)

// LineServer draws a set of line segments.
type LineServer struct {
	base
	lines   []geom.Line
	colored bool
	color   *palette.Color

	storage *buffer.LineStorage
}

var _ Server = (*LineServer)(nil)

// NewLineServer creates a server drawing lines in the host's default look.
func NewLineServer(doc host.Document, lines []geom.Line, opts ...Option) (*LineServer, error) {
	return newLineServer(doc, lines, false, nil, opts)
}

// NewColoredLineServer creates a server drawing lines in color, or in one
// picked color per line when color is nil.
func NewColoredLineServer(doc host.Document, lines []geom.Line, color *palette.Color, opts ...Option) (*LineServer, error) {
	return newLineServer(doc, lines, true, color, opts)
}

func newLineServer(doc host.Document, lines []geom.Line, colored bool, color *palette.Color, opts []Option) (*LineServer, error) {
	b, err := newBase(FamilyLine, doc, opts)
	if err != nil {
		return nil, err
	}
	s := &LineServer{
		base:    b,
		lines:   append([]geom.Line(nil), lines...),
		colored: colored,
	}
	if color != nil {
		c := *color
		s.color = &c
	}
	var o geom.Outline
	for _, l := range s.lines {
		o.AddPoint(l.EndPoint(0))
		o.AddPoint(l.EndPoint(1))
	}
	s.bounds = o.Expanded(BoundsMargin)
	return s, nil
}

// Storage returns the storage built last, or nil.
func (s *LineServer) Storage() *buffer.LineStorage { return s.storage }

// transparent reports whether the lines belong in the transparent pass.
func (s *LineServer) transparent() bool {
	return s.color != nil && s.color.HasTransparency()
}

// RenderScene implements host.Server.
func (s *LineServer) RenderScene(dc host.DrawContext, _ host.View, style host.DisplayStyle) {
	pass := dc.IsTransparentPass()
	s.guard(style, pass, func() error {
		if s.storage == nil || s.storage.NeedsRebuild(style) {
			if err := s.rebuild(style); err != nil {
				return err
			}
		}
		if pass != s.transparent() {
			return nil
		}
		return s.flush(dc, &s.storage.Storage)
	})
}

func (s *LineServer) rebuild(style host.DisplayStyle) error {
	if s.storage != nil {
		s.storage.Dispose()
		s.storage = nil
	}
	st := buffer.NewLineStorage(s.lines, style, buffer.WithPicker(s.picker))
	var err error
	if s.colored {
		err = st.BuildPositionColored(s.color)
	} else {
		err = st.BuildPosition(nil)
	}
	if err != nil {
		return err
	}
	s.storage = st
	s.primitives.Store(int64(st.PrimitiveCount))
	s.built(style, "lines", &st.Storage)
	return nil
}
