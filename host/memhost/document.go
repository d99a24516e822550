// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memhost

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/overlay3d/host"
)

// Document is an open model.
type Document struct {
	title     string
	closed    atomic.Bool
	refreshes atomic.Int64
	failNext  atomic.Bool
}

var _ host.Document = (*Document)(nil)

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// IsValidObject reports whether the document is still open.
func (d *Document) IsValidObject() bool { return !d.closed.Load() }

// UpdateAllOpenViews counts a refresh request.
func (d *Document) UpdateAllOpenViews() error {
	if d.closed.Load() {
		return errClosed
	}
	if d.failNext.CompareAndSwap(true, false) {
		return host.ErrUnavailable
	}
	d.refreshes.Add(1)
	return nil
}

// Refreshes returns the number of successful refresh requests.
func (d *Document) Refreshes() int { return int(d.refreshes.Load()) }

// Close marks the document closed. Closed documents are no longer valid.
func (d *Document) Close() { d.closed.Store(true) }

// FailNextRefresh makes the next UpdateAllOpenViews call fail.
func (d *Document) FailNextRefresh() { d.failNext.Store(true) }

// View is a viewport of a Document.
type View struct {
	name string
	doc  *Document
}

var _ host.View = (*View)(nil)

// Name returns the view name.
func (v *View) Name() string { return v.name }

// Document returns the viewed document.
func (v *View) Document() host.Document { return v.doc }

type documents struct {
	mu   sync.Mutex
	docs []*Document
}

func (ds *documents) open(title string) *Document {
	d := &Document{title: title}
	ds.mu.Lock()
	ds.docs = append(ds.docs, d)
	ds.mu.Unlock()
	return d
}

func (ds *documents) all() []*Document {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return append([]*Document(nil), ds.docs...)
}
