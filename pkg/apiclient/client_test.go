package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at server as if the catalog returned it as
// the network endpoint.
func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	provider := &gophercloud.ProviderClient{}
	provider.SetToken("test-token")
	sc := &gophercloud.ServiceClient{
		ProviderClient: provider,
		Endpoint:       server.URL + "/",
		ResourceBase:   server.URL + "/v2.0/",
	}
	return New(sc, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListDecodesCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2.0/routers", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, []string{"id", "name"}, r.URL.Query()["fields"])
		writeJSON(w, http.StatusOK, map[string]any{
			"routers": []map[string]any{
				{"id": "r1", "name": "one"},
				{"id": "r2", "name": "two"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	items, err := client.List(context.Background(), "routers", "routers", url.Values{"fields": {"id", "name"}})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "r1", items[0]["id"])
	assert.Equal(t, "two", items[1]["name"])
}

func TestListMissingCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"networks": []any{}})
	}))
	defer server.Close()

	_, err := newTestClient(t, server).List(context.Background(), "routers", "routers", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no "routers" collection`)
}

func TestGetUnwrapsObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2.0/lbaas/loadbalancers/lb1/stats", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"stats": map[string]any{"bytes_in": 10}})
	}))
	defer server.Close()

	obj, err := newTestClient(t, server).Get(context.Background(), "lbaas/loadbalancers/lb1/stats", "stats", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(10), obj["bytes_in"])
}

func TestCreateSendsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2.0/security-groups", r.URL.Path)

		var body map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "web", body["security_group"]["name"])

		writeJSON(w, http.StatusCreated, map[string]any{
			"security_group": map[string]any{"id": "sg1", "name": "web"},
		})
	}))
	defer server.Close()

	obj, err := newTestClient(t, server).Create(context.Background(), "security-groups", "security_group",
		map[string]any{"security_group": map[string]any{"name": "web"}})
	require.NoError(t, err)
	assert.Equal(t, "sg1", obj["id"])
}

func TestUpdateAndPut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		switch r.URL.Path {
		case "/v2.0/routers/r1":
			writeJSON(w, http.StatusOK, map[string]any{"router": map[string]any{"id": "r1", "name": "new"}})
		case "/v2.0/routers/r1/add_router_interface":
			writeJSON(w, http.StatusOK, map[string]any{"subnet_id": "s1", "port_id": "p1"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)

	obj, err := client.Update(context.Background(), "routers/r1", "router",
		map[string]any{"router": map[string]any{"name": "new"}})
	require.NoError(t, err)
	assert.Equal(t, "new", obj["name"])

	resp, err := client.Put(context.Background(), "routers/r1/add_router_interface",
		map[string]any{"subnet_id": "s1"})
	require.NoError(t, err)
	assert.Equal(t, "p1", resp["port_id"])
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v2.0/floatingips/f1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, newTestClient(t, server).Delete(context.Background(), "floatingips/f1"))
}

func TestNeutronErrorIsDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"NeutronError": map[string]any{
				"type":    "RouterNotFound",
				"message": "Router r9 could not be found",
				"detail":  "",
			},
		})
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Get(context.Background(), "routers/r9", "router", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "RouterNotFound", apiErr.Type)
	assert.Equal(t, "Router r9 could not be found (HTTP 404)", apiErr.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsAuthError(err))
}

func TestPlainTextErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("port in use\n"))
	}))
	defer server.Close()

	err := newTestClient(t, server).Delete(context.Background(), "ports/p1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "port in use", apiErr.Message)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	_, err := client.List(context.Background(), "networks", "networks", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET")

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

type recordingMetrics struct {
	calls []string
}

func (m *recordingMetrics) ObserveRequest(method, resource string, status int, _ time.Duration) {
	m.calls = append(m.calls, method+" "+resource+" "+http.StatusText(status))
}

func (m *recordingMetrics) ObservePage(string, int) {}

func TestMetricsLabelsReplaceIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"network": map[string]any{"id": "x"}})
	}))
	defer server.Close()

	m := &recordingMetrics{}
	client := newTestClient(t, server, WithMetrics(m))
	_, err := client.Get(context.Background(), "networks/3f1c8a2e-5b4d-4c6e-9f7a-1b2c3d4e5f60", "network", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"GET networks/:id OK"}, m.calls)
}

func TestResourceLabel(t *testing.T) {
	assert.Equal(t, "routers", resourceLabel("/routers"))
	assert.Equal(t, "routers/:id/add_router_interface",
		resourceLabel("routers/0b8f3a52-7f7a-4b8e-a2e2-2f9d3e7c1a10/add_router_interface"))
	assert.Equal(t, "ports/not-an-id", resourceLabel("ports/not-an-id"))
}
