// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package memhost is an in-memory viewport host.
//
// It keeps a server table, documents and views, drives registered servers
// through the opaque and transparent passes of a frame, and records every
// flushed draw call. Recorded frames can be rasterized to an image for a
// quick visual check.
//
//	h := memhost.New()
//	doc := h.OpenDocument("site")
//	view := h.OpenView("3D", doc)
//	...register servers...
//	frame, err := h.RenderFrame(view, host.Shading)
//	img := h.Preview(frame, 512, 512)
package memhost
