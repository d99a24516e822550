// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package server implements the host's per-frame render contract for
// lines, meshes and solids.
//
// A server owns its source primitives and the buffer storages built from
// them. Storages are built lazily inside RenderScene and rebuilt from the
// source whenever the display style changes or the host disposes one of
// their resources. Failures inside RenderScene, panics from the geometry
// kernel included, are recovered, logged and recorded; they never reach
// the host.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/overlay3d/buffer"
	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/internal/logging"
	"github.com/gogpu/overlay3d/palette"
)

// Construction errors.
var (
	ErrNilSolid      = errors.New("server: solid is nil")
	ErrNilDocument   = errors.New("server: document is nil")
	ErrColorRequired = errors.New("server: shaded mesh needs a color")
	ErrRenderPanic   = errors.New("server: panic during render")
)

// BoundsMargin is added on every side of a server's bounding box.
const BoundsMargin = 1.0

// Family groups servers for bulk clearing.
type Family int

const (
	FamilyLine Family = iota
	FamilyMesh
	FamilySolid
)

// Families lists every family.
var Families = []Family{FamilyLine, FamilyMesh, FamilySolid}

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case FamilyLine:
		return "line"
	case FamilyMesh:
		return "mesh"
	case FamilySolid:
		return "solid"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Server is a host.Server that belongs to a family and a document.
type Server interface {
	host.Server
	Family() Family
	Document() host.Document
}

// Stats are a server's counters.
type Stats struct {
	Builds   int64
	Flushes  int64
	Failures int64
	// Primitives is the primitive total of the storages built last.
	Primitives int
}

// Option configures a server.
type Option func(*config)

type config struct {
	picker *palette.Picker
	logger *slog.Logger
	name   string
}

// WithPicker sets the source of random sub-group colors.
func WithPicker(p *palette.Picker) Option {
	return func(c *config) { c.picker = p }
}

// WithLogger sets the server's logger. The default is the package-wide
// logger configured with overlay3d.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithName sets the name reported to the host.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// base carries what every server has in common.
type base struct {
	id     host.ServerID
	name   string
	family Family
	doc    host.Document
	bounds geom.Outline
	picker *palette.Picker
	log    *slog.Logger

	builds     atomic.Int64
	flushes    atomic.Int64
	failures   atomic.Int64
	primitives atomic.Int64

	mu      sync.Mutex
	lastErr error
}

func newBase(family Family, doc host.Document, opts []Option) (base, error) {
	if doc == nil {
		return base{}, ErrNilDocument
	}
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	id := host.NewServerID()
	if c.name == "" {
		c.name = fmt.Sprintf("overlay3d %s %s", family, id)
	}
	if c.logger == nil {
		c.logger = logging.With("server")
	}
	if c.picker == nil {
		c.picker = palette.NewPicker(uint64(id))
	}
	return base{
		id:     id,
		name:   c.name,
		family: family,
		doc:    doc,
		picker: c.picker,
		log:    c.logger.With(slog.String("server", c.name)),
	}, nil
}

// ID implements host.Server.
func (b *base) ID() host.ServerID { return b.id }

// Name implements host.Server.
func (b *base) Name() string { return b.name }

// Family returns the server's family.
func (b *base) Family() Family { return b.family }

// Document returns the owning document.
func (b *base) Document() host.Document { return b.doc }

// BoundingBox implements host.Server.
func (b *base) BoundingBox(host.View) geom.Outline { return b.bounds }

// CanExecute implements host.Server. Culling is left to the host.
func (b *base) CanExecute(host.View) bool { return true }

// UseInTransparentPass implements host.Server. The pass filter is applied
// inside RenderScene.
func (b *base) UseInTransparentPass(host.View) bool { return true }

// LastError returns the most recent render failure, or nil.
func (b *base) LastError() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Stats returns a snapshot of the server's counters.
func (b *base) Stats() Stats {
	return Stats{
		Builds:     b.builds.Load(),
		Flushes:    b.flushes.Load(),
		Failures:   b.failures.Load(),
		Primitives: int(b.primitives.Load()),
	}
}

// guard runs one frame's work and absorbs any error or panic.
func (b *base) guard(style host.DisplayStyle, transparent bool, fn func() error) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRenderPanic, r)
		}
		if err != nil {
			b.failures.Add(1)
			b.mu.Lock()
			b.lastErr = err
			b.mu.Unlock()
			b.log.Warn("render failed", "style", style, "transparent", transparent, "err", err)
		}
	}()
	err = fn()
}

// flush submits s when it holds anything to draw.
func (b *base) flush(dc host.DrawContext, s *buffer.Storage) error {
	if s == nil || s.PrimitiveCount <= 0 {
		return nil
	}
	if err := dc.FlushBuffer(s.FlushRequest()); err != nil {
		return err
	}
	b.flushes.Add(1)
	return nil
}

// built records a completed storage build.
func (b *base) built(style host.DisplayStyle, what string, s *buffer.Storage) {
	b.builds.Add(1)
	b.log.Debug("buffers built", "what", what, "style", style,
		"layout", s.Layout, "vertices", s.VertexCount, "primitives", s.PrimitiveCount)
}
