// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memhost

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/btree"

	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/internal/logging"
)

var (
	errClosed    = errors.New("memhost: document closed")
	errDuplicate = errors.New("memhost: server already registered")
	errUnknownID = errors.New("memhost: server not registered")
)

// btreeDegree is the fan-out of the server table.
const btreeDegree = 8

type entry struct {
	id     host.ServerID
	server host.Server
}

func entryLess(a, b entry) bool { return a.id < b.id }

// Host is an in-memory viewport application. Its zero value is not usable;
// call New.
type Host struct {
	mu         sync.Mutex
	registered *btree.BTreeG[entry]
	active     []host.ServerID

	unavailable atomic.Bool
	docs        documents
	resources   resourceSet
	frames      atomic.Int64
}

var _ host.DrawService = (*Host)(nil)

// New creates an empty host.
func New() *Host {
	return &Host{registered: btree.NewG(btreeDegree, entryLess)}
}

// OpenDocument opens a new document.
func (h *Host) OpenDocument(title string) *Document {
	return h.docs.open(title)
}

// Documents returns every document opened so far, closed ones included.
func (h *Host) Documents() []*Document {
	return h.docs.all()
}

// OpenView creates a view of doc.
func (h *Host) OpenView(name string, doc *Document) *View {
	return &View{name: name, doc: doc}
}

// SetUnavailable makes every service call fail with host.ErrUnavailable.
func (h *Host) SetUnavailable(v bool) {
	h.unavailable.Store(v)
}

func (h *Host) check() error {
	if h.unavailable.Load() {
		return host.ErrUnavailable
	}
	return nil
}

// AddServer registers s.
func (h *Host) AddServer(s host.Server) error {
	if err := h.check(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	e := entry{id: s.ID(), server: s}
	if h.registered.Has(e) {
		return fmt.Errorf("%w: %s", errDuplicate, e.id)
	}
	h.registered.ReplaceOrInsert(e)
	logging.Logger().Debug("memhost: server added", "id", e.id, "name", s.Name())
	return nil
}

// RemoveServer unregisters id and drops it from the active list.
func (h *Host) RemoveServer(id host.ServerID) error {
	if err := h.check(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.registered.Delete(entry{id: id}); !ok {
		return fmt.Errorf("%w: %s", errUnknownID, id)
	}
	h.active = slices.DeleteFunc(h.active, func(a host.ServerID) bool { return a == id })
	return nil
}

// ActiveServerIDs returns the active ids in activation order.
func (h *Host) ActiveServerIDs() ([]host.ServerID, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.active), nil
}

// SetActiveServerIDs replaces the active list. Every id must be registered.
func (h *Host) SetActiveServerIDs(ids []host.ServerID) error {
	if err := h.check(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range ids {
		if !h.registered.Has(entry{id: id}) {
			return fmt.Errorf("%w: %s", errUnknownID, id)
		}
	}
	h.active = slices.Compact(slices.Clone(ids))
	return nil
}

// RegisteredServerIDs returns every registered id in ascending order.
func (h *Host) RegisteredServerIDs() ([]host.ServerID, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]host.ServerID, 0, h.registered.Len())
	h.registered.Ascend(func(e entry) bool {
		ids = append(ids, e.id)
		return true
	})
	return ids, nil
}

// Server looks up a registered server.
func (h *Host) Server(id host.ServerID) (host.Server, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.registered.Get(entry{id: id})
	return e.server, ok
}

// activeServers resolves the active list under the lock.
func (h *Host) activeServers() []host.Server {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]host.Server, 0, len(h.active))
	for _, id := range h.active {
		if e, ok := h.registered.Get(entry{id: id}); ok {
			out = append(out, e.server)
		}
	}
	return out
}
