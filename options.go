// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay3d

import (
	"log/slog"

	"github.com/gogpu/overlay3d/palette"
)

// Option configures a StateMachine during creation.
// Use functional options to customize its behavior.
//
// Example:
//
//	// Defaults: random colors seeded per server, 24-segment spheres
//	sm := overlay3d.New(service)
//
//	// Reproducible colors and finer spheres
//	sm := overlay3d.New(service,
//		overlay3d.WithPicker(palette.NewPicker(42)),
//		overlay3d.WithSphereResolution(48),
//	)
type Option func(*options)

// options holds optional configuration for StateMachine creation.
type options struct {
	logger           *slog.Logger
	picker           *palette.Picker
	sphereResolution int
	progress         func(done, total int)
}

// defaultOptions returns the default state machine options.
func defaultOptions() options {
	return options{
		logger:           nil, // Will be set to the package logger if nil
		picker:           nil, // Each server seeds its own picker if nil
		sphereResolution: 0,   // solids.DefaultResolution if zero
	}
}

// WithLogger sets the logger used by the state machine, its registry and
// every server it creates.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPicker sets the color picker shared by every server the state
// machine creates. Random sub-group colors then depend only on the
// picker's seed and the sub-group index.
func WithPicker(p *palette.Picker) Option {
	return func(o *options) {
		o.picker = p
	}
}

// WithSphereResolution sets the number of segments along a sphere meridian.
func WithSphereResolution(n int) Option {
	return func(o *options) {
		o.sphereResolution = n
	}
}

// WithProgress sets a callback invoked after each server of a batch intent
// (DrawPointsCube, DrawPointsSphere) is registered.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) {
		o.progress = fn
	}
}
