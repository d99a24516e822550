// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package host defines the contracts between overlay3d and the viewport
// application that embeds it.
//
// The host owns the rendering pipeline: it calls each registered Server once
// per frame and pass, and the server answers by flushing packed vertex and
// index buffers into a DrawContext. Buffers, vertex formats and effect
// instances are plain CPU-side resources here; the host may dispose any of
// them at any time (for example after a device reset) and servers treat a
// disposed resource as a signal to rebuild.
//
// Package memhost provides an in-memory implementation of every contract,
// used by the tests and the overlaydemo command.
package host
