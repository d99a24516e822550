// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memhost

import (
	"fmt"
	"sync"

	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/internal/logging"
)

// Flush is one recorded draw call.
type Flush struct {
	Server      host.ServerID
	Transparent bool
	Request     host.FlushRequest
}

// Primitives returns the number of primitives drawn.
func (f Flush) Primitives() int { return f.Request.PrimitiveCount }

// Frame is the outcome of one RenderFrame call.
type Frame struct {
	Number  int64
	View    host.View
	Style   host.DisplayStyle
	Flushes []Flush
	// Rejected counts flushes that failed validation.
	Rejected int
}

// ByServer returns the flushes submitted by id, in submission order.
func (f *Frame) ByServer(id host.ServerID) []Flush {
	var out []Flush
	for _, fl := range f.Flushes {
		if fl.Server == id {
			out = append(out, fl)
		}
	}
	return out
}

// Primitives returns the primitive total over flushes matching topology.
func (f *Frame) Primitives(topology host.Topology) int {
	n := 0
	for _, fl := range f.Flushes {
		if fl.Request.Topology == topology {
			n += fl.Request.PrimitiveCount
		}
	}
	return n
}

// passContext is the DrawContext handed to one server during one pass.
type passContext struct {
	host        *Host
	frame       *Frame
	server      host.ServerID
	transparent bool
}

func (c *passContext) IsTransparentPass() bool { return c.transparent }

func (c *passContext) FlushBuffer(req host.FlushRequest) error {
	if err := req.Validate(); err != nil {
		c.frame.Rejected++
		return fmt.Errorf("memhost: flush from %s: %w", c.server, err)
	}
	c.host.resources.track(req)
	c.frame.Flushes = append(c.frame.Flushes, Flush{
		Server:      c.server,
		Transparent: c.transparent,
		Request:     req,
	})
	return nil
}

// RenderFrame draws every active server into view: first the opaque pass,
// then the transparent pass for servers that take part in it.
func (h *Host) RenderFrame(view host.View, style host.DisplayStyle) (*Frame, error) {
	if err := h.check(); err != nil {
		return nil, err
	}
	frame := &Frame{Number: h.frames.Add(1), View: view, Style: style}
	servers := h.activeServers()
	for _, transparent := range []bool{false, true} {
		for _, s := range servers {
			if !s.CanExecute(view) {
				continue
			}
			if transparent && !s.UseInTransparentPass(view) {
				continue
			}
			s.RenderScene(&passContext{host: h, frame: frame, server: s.ID(), transparent: transparent}, view, style)
		}
	}
	logging.Logger().Debug("memhost: frame rendered",
		"frame", frame.Number, "style", style, "servers", len(servers), "flushes", len(frame.Flushes))
	return frame, nil
}

// DisposeResources invalidates every resource flushed so far, the way a
// device reset would.
func (h *Host) DisposeResources() int {
	return h.resources.disposeAll()
}

// resourceSet remembers the live resources seen in flushes.
type resourceSet struct {
	mu   sync.Mutex
	seen map[host.Resource]struct{}
}

// track records the resources of req and forgets those their owner has
// disposed since, such as the buffers of a storage replaced by a rebuild.
func (rs *resourceSet) track(req host.FlushRequest) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.seen == nil {
		rs.seen = make(map[host.Resource]struct{})
	}
	for r := range rs.seen {
		if !r.Valid() {
			delete(rs.seen, r)
		}
	}
	for _, r := range []host.Resource{req.Vertices, req.Indices, req.Format, req.Effect} {
		rs.seen[r] = struct{}{}
	}
}

func (rs *resourceSet) len() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.seen)
}

func (rs *resourceSet) disposeAll() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	n := 0
	for r := range rs.seen {
		if r.Valid() {
			r.Dispose()
			n++
		}
	}
	rs.seen = nil
	return n
}
