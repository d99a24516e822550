// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package overlay3d draws transient 3D geometry (cubes, spheres, blends,
// arbitrary solids, lines and meshes) into the viewports of a host CAD
// application.
//
// # Overview
//
// overlay3d does not own a GPU device. The host calls each registered
// server once per frame and pass; the server answers by flushing packed
// vertex and index buffers into the host's draw context. Buffers are built
// lazily and rebuilt only when the display style changes or the host
// disposes them.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/overlay3d"
//		"github.com/gogpu/overlay3d/geom"
//		"github.com/gogpu/overlay3d/palette"
//	)
//
//	sm := overlay3d.New(service) // service implements host.DrawService
//	_, err := sm.DrawPointCube(doc, geom.Pt(0, 0, 0), 5, overlay3d.Colors{
//		Face: palette.Orange,
//		Edge: palette.Black,
//	})
//	...
//	err = sm.ClearSolidServers()
//
// # Architecture
//
// The module is organized into:
//   - geom: vectors, transforms and the solid kernel contracts
//   - palette: colors, the named catalog and seedable color pickers
//   - solids: cube, sphere and blend generation
//   - buffer: primitive collections packed into host buffers
//   - server: per-entity render adapters (line, mesh, solid)
//   - registry: activation with the host and per-family document tracking
//   - host: the contracts with the embedding application
//   - host/memhost: an in-memory host for tests and previews
//   - config: YAML scene files for cmd/overlaydemo
//
// # Logging
//
// overlay3d is silent by default. Call SetLogger to route its slog output.
package overlay3d

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
