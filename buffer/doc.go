// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package buffer packs primitive collections into host vertex and index
// buffers.
//
// A storage is built in two steps. The constructor walks its source once and
// keeps an immutable geometry value: positions grouped per sub-group (one
// line, one source mesh, one face, one edge), optional per-vertex normals and
// the index list. A single Build call then writes that geometry into fresh
// host buffers for one vertex layout. Storages are never rebuilt in place;
// when NeedsRebuild reports true the owner constructs a new one from its
// original source.
//
// Supported layouts:
//
//	Line       Position, PositionColored
//	Mesh       Position, PositionColored
//	SolidFace  Position (shading color required), PositionNormalColored
//	SolidEdge  Position (shading color required)
//
// Any other combination returns ErrNotSupported.
package buffer
