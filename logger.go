// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay3d

import (
	"log/slog"

	"github.com/gogpu/overlay3d/internal/logging"
)

// SetLogger configures the logger for overlay3d and all its sub-packages.
// By default, overlay3d produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by overlay3d:
//   - [slog.LevelDebug]: buffer builds, frames rendered by memhost
//   - [slog.LevelInfo]: server registration and family clears
//   - [slog.LevelWarn]: render failures absorbed at the host boundary
//
// Example:
//
//	overlay3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by overlay3d.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
