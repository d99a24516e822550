// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package host

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/overlay3d/geom"
)

// ErrUnavailable is returned by a DrawService that cannot be reached.
var ErrUnavailable = errors.New("host: draw service unavailable")

// ServerID identifies a Server for the lifetime of the process.
type ServerID uint64

var lastServerID atomic.Uint64

// NewServerID returns a fresh, non-zero identity.
func NewServerID() ServerID {
	return ServerID(lastServerID.Add(1))
}

// String implements fmt.Stringer.
func (id ServerID) String() string {
	return fmt.Sprintf("srv-%06d", uint64(id))
}

// Server is the capability the host drives once per frame and pass.
type Server interface {
	ID() ServerID
	Name() string
	// BoundingBox encloses everything the server may draw in view.
	BoundingBox(view View) geom.Outline
	CanExecute(view View) bool
	UseInTransparentPass(view View) bool
	// RenderScene draws into dc. It must not panic and must not return
	// errors to the host.
	RenderScene(dc DrawContext, view View, style DisplayStyle)
}

// DrawService is the host's server table. Registered servers are known to
// the host; active ones are drawn.
type DrawService interface {
	AddServer(s Server) error
	RemoveServer(id ServerID) error
	ActiveServerIDs() ([]ServerID, error)
	SetActiveServerIDs(ids []ServerID) error
	RegisteredServerIDs() ([]ServerID, error)
	Server(id ServerID) (Server, bool)
}
