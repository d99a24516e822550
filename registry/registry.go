// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package registry activates servers with the host and tracks which
// documents each server family has touched.
package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/internal/logging"
	"github.com/gogpu/overlay3d/server"
)

// Registry holds the active servers of every family.
//
// Touched documents are tracked per family: clearing one family refreshes
// and forgets only the documents that family drew into.
type Registry struct {
	mu      sync.Mutex
	service host.DrawService
	active  map[server.Family][]server.Server
	docs    map[server.Family][]host.Document
	log     *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a registry bound to a host draw service.
func New(service host.DrawService, opts ...Option) *Registry {
	r := &Registry{
		service: service,
		active:  make(map[server.Family][]server.Server),
		docs:    make(map[server.Family][]host.Document),
		log:     logging.With("registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Service returns the host draw service.
func (r *Registry) Service() host.DrawService { return r.service }

// Register adds s to the host, activates it and refreshes doc's views.
// Host failures are returned and leave nothing registered.
func (r *Registry) Register(s server.Server, doc host.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.service.AddServer(s); err != nil {
		return fmt.Errorf("registry: add %s: %w", s.Name(), err)
	}
	ids, err := r.service.ActiveServerIDs()
	if err == nil {
		err = r.service.SetActiveServerIDs(append(ids, s.ID()))
	}
	if err != nil {
		if rerr := r.service.RemoveServer(s.ID()); rerr != nil {
			r.log.Warn("rollback failed", "server", s.Name(), "err", rerr)
		}
		return fmt.Errorf("registry: activate %s: %w", s.Name(), err)
	}

	f := s.Family()
	r.active[f] = append(r.active[f], s)
	if !slices.Contains(r.docs[f], doc) {
		r.docs[f] = append(r.docs[f], doc)
	}
	r.refresh(doc)
	r.log.Info("server registered", "server", s.Name(), "family", f, "document", doc.Title())
	return nil
}

// UnregisterFamily removes every registered server of family f from the
// host, refreshes the documents the family touched and forgets them.
func (r *Registry) UnregisterFamily(f server.Family) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	registered, err := r.service.RegisteredServerIDs()
	if err != nil {
		return fmt.Errorf("registry: list %s servers: %w", f, err)
	}
	var removed []host.ServerID
	for _, id := range registered {
		if !r.belongsTo(id, f) {
			continue
		}
		if err := r.service.RemoveServer(id); err != nil {
			return fmt.Errorf("registry: remove %s: %w", id, err)
		}
		removed = append(removed, id)
	}

	ids, err := r.service.ActiveServerIDs()
	if err != nil {
		return fmt.Errorf("registry: list active servers: %w", err)
	}
	kept := slices.DeleteFunc(ids, func(id host.ServerID) bool { return slices.Contains(removed, id) })
	if len(kept) != len(ids) {
		if err := r.service.SetActiveServerIDs(kept); err != nil {
			return fmt.Errorf("registry: deactivate %s servers: %w", f, err)
		}
	}

	delete(r.active, f)
	for _, doc := range r.docs[f] {
		if doc.IsValidObject() {
			r.refresh(doc)
		}
	}
	delete(r.docs, f)
	r.log.Info("family cleared", "family", f, "removed", len(removed))
	return nil
}

// belongsTo reports whether the host server id is one of family f.
func (r *Registry) belongsTo(id host.ServerID, f server.Family) bool {
	if slices.ContainsFunc(r.active[f], func(s server.Server) bool { return s.ID() == id }) {
		return true
	}
	s, ok := r.service.Server(id)
	if !ok {
		return false
	}
	fs, ok := s.(interface{ Family() server.Family })
	return ok && fs.Family() == f
}

func (r *Registry) refresh(doc host.Document) {
	if err := doc.UpdateAllOpenViews(); err != nil {
		r.log.Warn("view refresh failed", "document", doc.Title(), "err", err)
	}
}

// Active returns the active servers of family f in registration order.
func (r *Registry) Active(f server.Family) []server.Server {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.active[f])
}

// Len returns the number of active servers over all families.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ss := range r.active {
		n += len(ss)
	}
	return n
}

// DocumentsOf returns the documents family f has touched.
func (r *Registry) DocumentsOf(f server.Family) []host.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.docs[f])
}

// Documents returns every touched document once, in family order.
func (r *Registry) Documents() []host.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []host.Document
	for _, f := range server.Families {
		for _, d := range r.docs[f] {
			if !slices.Contains(out, d) {
				out = append(out, d)
			}
		}
	}
	return out
}

// Tracks reports whether any family has touched doc.
func (r *Registry) Tracks(doc host.Document) bool {
	return slices.Contains(r.Documents(), doc)
}
