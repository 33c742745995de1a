package neutron

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listCall struct {
	path       string
	collection string
	query      url.Values
}

type fakeLister struct {
	items []map[string]any
	err   error
	calls []listCall
}

func (f *fakeLister) List(_ context.Context, path, collection string, query url.Values) ([]map[string]any, error) {
	f.calls = append(f.calls, listCall{path: path, collection: collection, query: query})
	return f.items, f.err
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(&Descriptor{Name: "network"})
	r.MustRegister(&Descriptor{Name: "subnet"})
	r.MustRegister(&Descriptor{Name: "lbaas_pool", Key: "pool", Path: "lbaas/pools"})
	r.MustRegister(&Descriptor{Name: "healthmonitor", Shadow: "lbaas_healthmonitor"})
	r.MustRegister(&Descriptor{Name: "lbaas_healthmonitor", Key: "healthmonitor", Path: "lbaas/healthmonitors"})
	return r
}

const netID = "9f8a3c2e-1b4d-4e5f-8a7b-6c5d4e3f2a1b"

func TestIsID(t *testing.T) {
	assert.True(t, IsID(netID))
	assert.False(t, IsID("private"))
	assert.False(t, IsID("9f8a3c2e1b4d4e5f8a7b6c5d4e3f2a1b"))
	assert.False(t, IsID("{9f8a3c2e-1b4d-4e5f-8a7b-6c5d4e3f2a}"))
}

func TestResolveID(t *testing.T) {
	lister := &fakeLister{}
	r := NewResolver(lister, testRegistry(), nil)

	id, err := r.Resolve(context.Background(), "network", netID)
	require.NoError(t, err)
	assert.Equal(t, netID, id)
	assert.Empty(t, lister.calls)
}

func TestResolveName(t *testing.T) {
	lister := &fakeLister{items: []map[string]any{{"id": netID}}}
	r := NewResolver(lister, testRegistry(), nil)

	id, err := r.Resolve(context.Background(), "network", "private")
	require.NoError(t, err)
	assert.Equal(t, netID, id)

	require.Len(t, lister.calls, 1)
	call := lister.calls[0]
	assert.Equal(t, "networks", call.path)
	assert.Equal(t, "networks", call.collection)
	assert.Equal(t, "private", call.query.Get("name"))
	assert.Equal(t, "id", call.query.Get("fields"))
}

func TestResolveNotFound(t *testing.T) {
	r := NewResolver(&fakeLister{}, testRegistry(), nil)

	_, err := r.Resolve(context.Background(), "network", "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Unable to find network with name 'ghost'", err.Error())
}

func TestResolveAmbiguous(t *testing.T) {
	lister := &fakeLister{items: []map[string]any{{"id": "id-1"}, {"id": "id-2"}}}
	r := NewResolver(lister, testRegistry(), nil)

	_, err := r.Resolve(context.Background(), "network", "dup")
	require.Error(t, err)

	var amb *AmbiguousError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, []string{"id-1", "id-2"}, amb.IDs)
}

func TestResolveEmptyIdentifier(t *testing.T) {
	r := NewResolver(&fakeLister{}, testRegistry(), nil)
	_, err := r.Resolve(context.Background(), "network", "")
	assert.True(t, IsInvalidArgument(err))
}

func TestResolveWithOptions(t *testing.T) {
	t.Run("ParentAndTenant", func(t *testing.T) {
		lister := &fakeLister{items: []map[string]any{{"id": "s1"}}}
		r := NewResolver(lister, testRegistry(), nil)

		_, err := r.Resolve(context.Background(), "subnet", "sub", WithParent("network_id", netID), WithTenant("t1"))
		require.NoError(t, err)
		q := lister.calls[0].query
		assert.Equal(t, netID, q.Get("network_id"))
		assert.Equal(t, "t1", q.Get("tenant_id"))
	})

	t.Run("CmdResource", func(t *testing.T) {
		lister := &fakeLister{items: []map[string]any{{"id": "p1"}}}
		r := NewResolver(lister, testRegistry(), nil)

		_, err := r.Resolve(context.Background(), "pool", "web", WithCmdResource("lbaas_pool"))
		require.NoError(t, err)
		assert.Equal(t, "lbaas/pools", lister.calls[0].path)
		assert.Equal(t, "pools", lister.calls[0].collection)
	})

	t.Run("ShadowEndpoint", func(t *testing.T) {
		lister := &fakeLister{items: []map[string]any{{"id": "h1"}}}
		r := NewResolver(lister, testRegistry(), nil)

		_, err := r.Resolve(context.Background(), "healthmonitor", "hm")
		require.NoError(t, err)
		assert.Equal(t, "lbaas/healthmonitors", lister.calls[0].path)
		assert.Equal(t, "healthmonitors", lister.calls[0].collection)
	})
}

func TestResolveUnknownResource(t *testing.T) {
	r := NewResolver(&fakeLister{}, testRegistry(), nil)
	_, err := r.Resolve(context.Background(), "widget", "w")
	assert.Error(t, err)
}

func TestResolveListError(t *testing.T) {
	boom := errors.New("boom")
	r := NewResolver(&fakeLister{err: boom}, testRegistry(), nil)
	_, err := r.Resolve(context.Background(), "network", "n")
	assert.ErrorIs(t, err, boom)
}
