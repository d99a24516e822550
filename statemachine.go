// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay3d

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/internal/logging"
	"github.com/gogpu/overlay3d/palette"
	"github.com/gogpu/overlay3d/registry"
	"github.com/gogpu/overlay3d/server"
	"github.com/gogpu/overlay3d/solids"
)

// ErrNilDocument is returned by every draw intent given a nil document.
var ErrNilDocument = errors.New("overlay3d: document is nil")

// Colors is the face and edge color pair of a solid.
type Colors struct {
	Face palette.Color
	Edge palette.Color
}

// DefaultColors draws orange faces with black edges.
var DefaultColors = Colors{Face: palette.Orange, Edge: palette.Black}

// StateMachine turns high-level draw intents into registered servers.
//
// Registration calls are serialized by a mutex; rendering is driven by the
// host and never takes it.
type StateMachine struct {
	mu       sync.Mutex
	registry *registry.Registry
	gen      *solids.Generator
	opts     options
	log      *slog.Logger
}

// New creates a state machine registering servers with service.
func New(service host.DrawService, opts ...Option) *StateMachine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Logger()
	}
	var genOpts []solids.Option
	if o.sphereResolution > 0 {
		genOpts = append(genOpts, solids.WithResolution(o.sphereResolution))
	}
	return &StateMachine{
		registry: registry.New(service, registry.WithLogger(o.logger.With(slog.String("component", "registry")))),
		gen:      solids.NewGenerator(genOpts...),
		opts:     o,
		log:      o.logger.With(slog.String("component", "statemachine")),
	}
}

// Registry returns the registry holding the active servers.
func (sm *StateMachine) Registry() *registry.Registry { return sm.registry }

// Generator returns the solid generator.
func (sm *StateMachine) Generator() *solids.Generator { return sm.gen }

func (sm *StateMachine) serverOptions(name string) []server.Option {
	opts := []server.Option{server.WithLogger(sm.opts.logger.With(slog.String("component", "server")))}
	if sm.opts.picker != nil {
		opts = append(opts, server.WithPicker(sm.opts.picker))
	}
	if name != "" {
		opts = append(opts, server.WithName(name))
	}
	return opts
}

// register activates s under the state machine lock.
func (sm *StateMachine) register(s server.Server, doc host.Document) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.registry.Register(s, doc)
}

func (sm *StateMachine) drawSolid(doc host.Document, solid geom.Solid, colors Colors, withNormals bool, name string) (*server.SolidServer, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	s, err := server.NewSolidServer(doc, solid, server.SolidStyle{
		FaceColor:   colors.Face,
		EdgeColor:   colors.Edge,
		WithNormals: withNormals,
	}, sm.serverOptions(name)...)
	if err != nil {
		return nil, err
	}
	if err := sm.register(s, doc); err != nil {
		return nil, err
	}
	return s, nil
}

// DrawPointCube draws a cube of edge size centered at point. Generated
// solids carry per-triangle normals so the host can light them.
func (sm *StateMachine) DrawPointCube(doc host.Document, point geom.XYZ, size float64, colors Colors) (*server.SolidServer, error) {
	c, err := sm.gen.CreateCube(point, size)
	if err != nil {
		return nil, err
	}
	return sm.drawSolid(doc, c, colors, true, "")
}

// DrawPointsCube draws one cube per point. On failure it returns the
// servers registered so far along with the error.
func (sm *StateMachine) DrawPointsCube(doc host.Document, points []geom.XYZ, size float64, colors Colors) ([]*server.SolidServer, error) {
	return sm.batch(points, func(p geom.XYZ) (*server.SolidServer, error) {
		return sm.DrawPointCube(doc, p, size, colors)
	})
}

// DrawPointSphere draws a sphere of radius centered at point.
func (sm *StateMachine) DrawPointSphere(doc host.Document, point geom.XYZ, radius float64, colors Colors) (*server.SolidServer, error) {
	s, err := sm.gen.CreateSphere(point, radius)
	if err != nil {
		return nil, err
	}
	return sm.drawSolid(doc, s, colors, true, "")
}

// DrawPointsSphere draws one sphere per point. On failure it returns the
// servers registered so far along with the error.
func (sm *StateMachine) DrawPointsSphere(doc host.Document, points []geom.XYZ, radius float64, colors Colors) ([]*server.SolidServer, error) {
	return sm.batch(points, func(p geom.XYZ) (*server.SolidServer, error) {
		return sm.DrawPointSphere(doc, p, radius, colors)
	})
}

func (sm *StateMachine) batch(points []geom.XYZ, draw func(geom.XYZ) (*server.SolidServer, error)) ([]*server.SolidServer, error) {
	out := make([]*server.SolidServer, 0, len(points))
	for i, p := range points {
		s, err := draw(p)
		if err != nil {
			return out, fmt.Errorf("overlay3d: point %d of %d: %w", i+1, len(points), err)
		}
		out = append(out, s)
		if sm.opts.progress != nil {
			sm.opts.progress(i+1, len(points))
		}
	}
	return out, nil
}

// DrawBlend draws a square loft from start to end.
func (sm *StateMachine) DrawBlend(doc host.Document, start, end geom.XYZ, startSize, endSize float64, colors Colors) (*server.SolidServer, error) {
	b, err := sm.gen.CreateBlend(start, end, startSize, endSize)
	if err != nil {
		return nil, err
	}
	return sm.drawSolid(doc, b, colors, true, "")
}

// DrawSolid draws a caller-supplied solid with unlit faces. The server keeps
// a private copy of solid.
func (sm *StateMachine) DrawSolid(doc host.Document, solid geom.Solid, colors Colors) (*server.SolidServer, error) {
	return sm.drawSolid(doc, solid, colors, false, "")
}

// DrawSolidWithNormals draws a caller-supplied solid with per-triangle
// normals so the host can light it.
func (sm *StateMachine) DrawSolidWithNormals(doc host.Document, solid geom.Solid, colors Colors) (*server.SolidServer, error) {
	return sm.drawSolid(doc, solid, colors, true, "")
}

// DrawLines draws line segments in color, or in one random color per line
// when color is nil.
func (sm *StateMachine) DrawLines(doc host.Document, lines []geom.Line, color *palette.Color) (*server.LineServer, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	s, err := server.NewColoredLineServer(doc, lines, color, sm.serverOptions("")...)
	if err != nil {
		return nil, err
	}
	if err := sm.register(s, doc); err != nil {
		return nil, err
	}
	return s, nil
}

// DrawMeshes draws triangle meshes in the given mode.
func (sm *StateMachine) DrawMeshes(doc host.Document, meshes []geom.Mesh, mode server.MeshMode, color *palette.Color) (*server.MeshServer, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	s, err := server.NewMeshServer(doc, meshes, mode, color, sm.serverOptions("")...)
	if err != nil {
		return nil, err
	}
	if err := sm.register(s, doc); err != nil {
		return nil, err
	}
	return s, nil
}

func (sm *StateMachine) clear(f server.Family) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.registry.UnregisterFamily(f)
}

// ClearSolidServers removes every solid server.
func (sm *StateMachine) ClearSolidServers() error { return sm.clear(server.FamilySolid) }

// ClearLineServers removes every line server.
func (sm *StateMachine) ClearLineServers() error { return sm.clear(server.FamilyLine) }

// ClearMeshServers removes every mesh server.
func (sm *StateMachine) ClearMeshServers() error { return sm.clear(server.FamilyMesh) }

// ClearAll removes every server of every family.
func (sm *StateMachine) ClearAll() error {
	var errs []error
	for _, f := range server.Families {
		if err := sm.clear(f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
