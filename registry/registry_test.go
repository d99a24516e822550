// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/overlay3d/geom"
	"github.com/gogpu/overlay3d/host"
	"github.com/gogpu/overlay3d/host/memhost"
	"github.com/gogpu/overlay3d/palette"
	"github.com/gogpu/overlay3d/server"
	"github.com/gogpu/overlay3d/solids"
)

func solidServer(t *testing.T, doc host.Document) *server.SolidServer {
	t.Helper()
	c, err := solids.CreateCube(geom.Origin, 1)
	require.NoError(t, err)
	s, err := server.NewSolidServer(doc, c, server.SolidStyle{FaceColor: palette.Red, EdgeColor: palette.Black})
	require.NoError(t, err)
	return s
}

func meshServer(t *testing.T, doc host.Document) *server.MeshServer {
	t.Helper()
	m := geom.Mesh{Triangles: []geom.Triangle{{geom.Origin, geom.BasisX, geom.BasisY}}}
	s, err := server.NewMeshServer(doc, []geom.Mesh{m}, server.MeshColored, nil)
	require.NoError(t, err)
	return s
}

func TestRegister(t *testing.T) {
	h := memhost.New()
	doc := h.OpenDocument("a")
	r := New(h)

	s := solidServer(t, doc)
	require.NoError(t, r.Register(s, doc))

	active, err := h.ActiveServerIDs()
	require.NoError(t, err)
	assert.Equal(t, []host.ServerID{s.ID()}, active)
	assert.Len(t, r.Active(server.FamilySolid), 1)
	assert.True(t, r.Tracks(doc))
	assert.Equal(t, 1, doc.Refreshes())

	// A second server on the same document does not duplicate it.
	require.NoError(t, r.Register(solidServer(t, doc), doc))
	assert.Len(t, r.Documents(), 1)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, doc.Refreshes())
}

func TestRegisterPropagatesHostFailure(t *testing.T) {
	h := memhost.New()
	doc := h.OpenDocument("a")
	r := New(h)

	h.SetUnavailable(true)
	require.ErrorIs(t, r.Register(solidServer(t, doc), doc), host.ErrUnavailable)
	h.SetUnavailable(false)

	assert.Zero(t, r.Len())
	assert.False(t, r.Tracks(doc))
	ids, err := h.RegisteredServerIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestUnregisterFamily(t *testing.T) {
	h := memhost.New()
	doc := h.OpenDocument("a")
	r := New(h)
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Register(solidServer(t, doc), doc))
	}
	before := doc.Refreshes()

	require.NoError(t, r.UnregisterFamily(server.FamilySolid))
	assert.Empty(t, r.Active(server.FamilySolid))
	assert.Empty(t, r.Documents())
	assert.False(t, r.Tracks(doc))
	assert.Equal(t, before+1, doc.Refreshes(), "touched document refreshed once")

	ids, err := h.RegisteredServerIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)
	active, err := h.ActiveServerIDs()
	require.NoError(t, err)
	assert.Empty(t, active)

	// Clearing an empty family is a no-op.
	require.NoError(t, r.UnregisterFamily(server.FamilySolid))
}

func TestDocumentsAreTrackedPerFamily(t *testing.T) {
	h := memhost.New()
	shared := h.OpenDocument("shared")
	solidOnly := h.OpenDocument("solid only")
	r := New(h)

	mesh := meshServer(t, shared)
	require.NoError(t, r.Register(solidServer(t, shared), shared))
	require.NoError(t, r.Register(solidServer(t, solidOnly), solidOnly))
	require.NoError(t, r.Register(mesh, shared))

	require.NoError(t, r.UnregisterFamily(server.FamilySolid))
	assert.True(t, r.Tracks(shared), "still has a mesh server")
	assert.False(t, r.Tracks(solidOnly))
	assert.Equal(t, []host.Document{shared}, r.DocumentsOf(server.FamilyMesh))

	active, err := h.ActiveServerIDs()
	require.NoError(t, err)
	assert.Equal(t, []host.ServerID{mesh.ID()}, active)
}

func TestUnregisterSkipsClosedDocuments(t *testing.T) {
	h := memhost.New()
	open, closed := h.OpenDocument("open"), h.OpenDocument("closed")
	r := New(h)
	require.NoError(t, r.Register(solidServer(t, open), open))
	require.NoError(t, r.Register(solidServer(t, closed), closed))
	closed.Close()

	require.NoError(t, r.UnregisterFamily(server.FamilySolid))
	assert.Equal(t, 2, open.Refreshes())
	assert.Equal(t, 1, closed.Refreshes())
}

func TestRefreshFailureDoesNotFailRegistration(t *testing.T) {
	h := memhost.New()
	doc := h.OpenDocument("a")
	doc.FailNextRefresh()
	r := New(h)
	require.NoError(t, r.Register(solidServer(t, doc), doc))
	assert.Equal(t, 1, r.Len())
	assert.Zero(t, doc.Refreshes())
}

func TestUnregisterPropagatesHostFailure(t *testing.T) {
	h := memhost.New()
	doc := h.OpenDocument("a")
	r := New(h)
	require.NoError(t, r.Register(solidServer(t, doc), doc))

	h.SetUnavailable(true)
	require.ErrorIs(t, r.UnregisterFamily(server.FamilySolid), host.ErrUnavailable)
	h.SetUnavailable(false)
	assert.Equal(t, 1, r.Len(), "state kept when the host refused")
}
