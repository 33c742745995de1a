package neutrontest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// Keystone is a fake Keystone v3 token endpoint. Its catalog lists one
// public network endpoint.
type Keystone struct {
	*httptest.Server

	// Password is the only password accepted.
	Password  string
	Token     string
	ExpiresAt time.Time

	mu       sync.Mutex
	requests []map[string]any
}

// NewKeystone starts a Keystone whose catalog points at networkURL. It is
// closed when the test ends.
func NewKeystone(t testing.TB, networkURL string) *Keystone {
	t.Helper()

	k := &Keystone{
		Password:  "secret",
		Token:     "gAAAAAB-keystone-token",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	r := chi.NewRouter()
	r.Post("/v3/auth/tokens", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]any{"code": 400, "message": err.Error()}})
			return
		}

		k.mu.Lock()
		k.requests = append(k.requests, body)
		k.mu.Unlock()

		if password(body) != k.Password {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"error": map[string]any{"code": 401, "title": "Unauthorized", "message": "The request you have made requires authentication."},
			})
			return
		}

		w.Header().Set("X-Subject-Token", k.Token)
		writeJSON(w, http.StatusCreated, map[string]any{
			"token": map[string]any{
				"methods":    []string{"password"},
				"expires_at": k.ExpiresAt.Format("2006-01-02T15:04:05.000000Z"),
				"issued_at":  time.Now().UTC().Format("2006-01-02T15:04:05.000000Z"),
				"project":    map[string]any{"id": "project-id", "name": "demo", "domain": map[string]any{"id": "default", "name": "Default"}},
				"user":       map[string]any{"id": "user-id", "name": "demo", "domain": map[string]any{"id": "default", "name": "Default"}},
				"catalog": []any{
					map[string]any{
						"id":   "network-service",
						"type": "network",
						"name": "neutron",
						"endpoints": []any{
							map[string]any{"id": "public", "interface": "public", "region": "RegionOne", "region_id": "RegionOne", "url": networkURL},
						},
					},
				},
			},
		})
	})

	k.Server = httptest.NewServer(r)
	t.Cleanup(k.Close)
	return k
}

// AuthURL is the Keystone v3 URL to authenticate against.
func (k *Keystone) AuthURL() string {
	return k.URL + "/v3"
}

// Requests returns the decoded token requests received so far.
func (k *Keystone) Requests() []map[string]any {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := make([]map[string]any, len(k.requests))
	copy(out, k.requests)
	return out
}

// password digs auth.identity.password.user.password out of a token request.
func password(body map[string]any) string {
	node := any(body)
	for _, key := range []string{"auth", "identity", "password", "user", "password"} {
		m, ok := node.(map[string]any)
		if !ok {
			return ""
		}
		node = m[key]
	}
	s, _ := node.(string)
	return s
}
