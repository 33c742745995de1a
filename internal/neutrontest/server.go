// Package neutrontest provides an in-memory Neutron v2.0 API for tests. It
// serves every collection registered in a neutron.Registry, supports the
// name/id/field filters, fields selection and limit/marker paging that
// neutronctl relies on, and records each request.
package neutrontest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gophercloud/gophercloud/v2"
	"github.com/marmos91/neutronctl/pkg/apiclient"
	"github.com/marmos91/neutronctl/pkg/neutron"
)

// Request is one recorded API call.
type Request struct {
	Method string
	Path   string // relative to /v2.0/, e.g. "routers/abc"
	Query  url.Values
	Body   map[string]any
	Token  string // X-Auth-Token
}

type collection struct {
	key    string
	plural string
	items  []map[string]any
}

// Server is a fake Neutron endpoint.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	requests    []Request
	collections map[string]*collection // by collection path
	overrides   map[string]http.HandlerFunc
}

// New starts a server serving the collections of every descriptor in reg.
// It is closed when the test ends.
func New(t testing.TB, reg *neutron.Registry) *Server {
	t.Helper()

	s := &Server{
		collections: make(map[string]*collection),
		overrides:   make(map[string]http.HandlerFunc),
	}
	for _, name := range reg.Names() {
		d, _ := reg.Lookup(name)
		api := reg.API(d)
		if _, ok := s.collections[api.CollectionPath()]; !ok {
			s.collections[api.CollectionPath()] = &collection{key: api.ObjectKey(), plural: api.PluralName()}
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.HandleFunc("/v2.0/*", s.serve)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Client returns an API client talking to the server.
func (s *Server) Client(opts ...apiclient.Option) *apiclient.Client {
	provider := &gophercloud.ProviderClient{HTTPClient: *s.Server.Client()}
	provider.SetToken("test-token")
	sc := &gophercloud.ServiceClient{
		ProviderClient: provider,
		Endpoint:       s.URL + "/",
		ResourceBase:   s.URL + "/v2.0/",
		Type:           "network",
	}
	return apiclient.New(sc, opts...)
}

// Seed adds objects to the collection at path. Objects without an id get
// one.
func (s *Server) Seed(path string, items ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.mustCollection(path)
	for _, item := range items {
		if _, ok := item["id"]; !ok {
			item["id"] = uuid.NewString()
		}
		c.items = append(c.items, item)
	}
}

// Items returns the objects stored at path.
func (s *Server) Items(path string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.mustCollection(path).items)
}

// Handle overrides METHOD path (relative to /v2.0/) with h.
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+strings.Trim(path, "/")] = h
}

// Requests returns the recorded requests in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// Reset forgets recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) mustCollection(path string) *collection {
	c, ok := s.collections[strings.Trim(path, "/")]
	if !ok {
		panic(fmt.Sprintf("neutrontest: no collection registered at %q", path))
	}
	return c
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := Request{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, "/v2.0/"),
			Query:  r.URL.Query(),
			Token:  r.Header.Get("X-Auth-Token"),
		}
		if r.Body != nil {
			data, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			if len(data) > 0 {
				_ = json.Unmarshal(data, &req.Body)
			}
			r.Body = io.NopCloser(strings.NewReader(string(data)))
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(chi.URLParam(r, "*"), "/")

	s.mu.Lock()
	override, ok := s.overrides[r.Method+" "+path]
	s.mu.Unlock()
	if ok {
		override(w, r)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, id, action := s.route(path)
	if c == nil {
		writeError(w, http.StatusNotFound, "HTTPNotFound", "The resource could not be found.")
		return
	}

	switch {
	case id == "" && r.Method == http.MethodGet:
		s.list(w, r, c)
	case id == "" && r.Method == http.MethodPost:
		s.create(w, r, c)
	case action != "" && r.Method == http.MethodPut:
		s.action(w, r, c, id)
	case action == "" && r.Method == http.MethodGet:
		s.show(w, r, c, id)
	case action == "" && r.Method == http.MethodPut:
		s.update(w, r, c, id)
	case action == "" && r.Method == http.MethodDelete:
		s.delete(w, c, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "HTTPMethodNotAllowed", "Method not allowed.")
	}
}

// route splits path into its collection, item id and member action.
func (s *Server) route(path string) (*collection, string, string) {
	for cpath, c := range s.collections {
		if path == cpath {
			return c, "", ""
		}
		rest, ok := strings.CutPrefix(path, cpath+"/")
		if !ok {
			continue
		}
		id, action, _ := strings.Cut(rest, "/")
		return c, id, action
	}
	return nil, "", ""
}

func (s *Server) find(c *collection, id string) (int, map[string]any) {
	for i, item := range c.items {
		if item["id"] == id {
			return i, item
		}
	}
	return -1, nil
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, c *collection) {
	q := r.URL.Query()

	matched := make([]map[string]any, 0, len(c.items))
	for _, item := range c.items {
		if matches(item, q) {
			matched = append(matched, item)
		}
	}

	if marker := q.Get("marker"); marker != "" {
		for i, item := range matched {
			if item["id"] == marker {
				matched = matched[i+1:]
				break
			}
		}
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	out := make([]map[string]any, len(matched))
	for i, item := range matched {
		out[i] = project(item, q["fields"])
	}
	writeJSON(w, http.StatusOK, map[string]any{c.plural: out})
}

var reservedParams = []string{"fields", "limit", "marker", "sort_key", "sort_dir", "verbose"}

func matches(item map[string]any, q url.Values) bool {
	for key, want := range q {
		if slices.Contains(reservedParams, key) {
			continue
		}
		got := fmt.Sprint(item[key])
		if !slices.ContainsFunc(want, func(v string) bool { return strings.EqualFold(v, got) }) {
			return false
		}
	}
	return true
}

func project(item map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return item
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := item[f]; ok {
			out[f] = v
		}
	}
	return out
}

func (s *Server) show(w http.ResponseWriter, r *http.Request, c *collection, id string) {
	_, item := s.find(c, id)
	if item == nil {
		writeNotFound(w, c, id)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{c.key: project(item, r.URL.Query()["fields"])})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, c *collection) {
	obj, ok := decodeObject(w, r, c.key)
	if !ok {
		return
	}
	if _, ok := obj["id"]; !ok {
		obj["id"] = uuid.NewString()
	}
	c.items = append(c.items, obj)
	writeJSON(w, http.StatusCreated, map[string]any{c.key: obj})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request, c *collection, id string) {
	_, item := s.find(c, id)
	if item == nil {
		writeNotFound(w, c, id)
		return
	}
	obj, ok := decodeObject(w, r, c.key)
	if !ok {
		return
	}
	for k, v := range obj {
		item[k] = v
	}
	writeJSON(w, http.StatusOK, map[string]any{c.key: item})
}

// action answers member actions such as add_router_interface by echoing
// the request body with the member id.
func (s *Server) action(w http.ResponseWriter, r *http.Request, c *collection, id string) {
	if _, item := s.find(c, id); item == nil {
		writeNotFound(w, c, id)
		return
	}
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body == nil {
		body = map[string]any{}
	}
	body["id"] = id
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) delete(w http.ResponseWriter, c *collection, id string) {
	i, item := s.find(c, id)
	if item == nil {
		writeNotFound(w, c, id)
		return
	}
	c.items = slices.Delete(c.items, i, i+1)
	w.WriteHeader(http.StatusNoContent)
}

func decodeObject(w http.ResponseWriter, r *http.Request, key string) (map[string]any, bool) {
	var body map[string]map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "BadRequest", "Malformed request body")
		return nil, false
	}
	obj, ok := body[key]
	if !ok || obj == nil {
		writeError(w, http.StatusBadRequest, "BadRequest", fmt.Sprintf("Resource body required: %s", key))
		return nil, false
	}
	return obj, true
}

func writeNotFound(w http.ResponseWriter, c *collection, id string) {
	writeError(w, http.StatusNotFound, "NotFound", fmt.Sprintf("%s %s could not be found.", c.key, id))
}

func writeError(w http.ResponseWriter, status int, typ, msg string) {
	writeJSON(w, status, map[string]any{
		"NeutronError": map[string]any{"type": typ, "message": msg, "detail": ""},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSON writes v with status; for Handle overrides.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, v)
}
