// Package neutron holds the resource model shared by every neutronctl command:
// resource descriptors, name resolution, request bodies, and the error kinds
// the CLI maps to exit codes.
package neutron

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Descriptor is the static metadata of one Neutron resource type.
type Descriptor struct {
	// Name is the singular resource name used by commands and the registry.
	Name string

	// Key is the request/response envelope key. Defaults to Name.
	Key string

	// Plural is the list envelope key. Defaults to the object key + "s".
	Plural string

	// Path is the collection path relative to the v2.0 resource base.
	Path string

	// Shadow names another registered descriptor whose endpoint is used for
	// API calls and name lookups.
	Shadow string

	// ListColumns are the columns shown by list when no selection is given.
	ListColumns []string

	Pagination bool
	Sorting    bool

	// AllowNames permits show/update/delete to take a name instead of an ID.
	AllowNames bool
}

// ObjectKey returns the single-object envelope key.
func (d *Descriptor) ObjectKey() string {
	if d.Key != "" {
		return d.Key
	}
	return d.Name
}

// PluralName returns the list envelope key.
func (d *Descriptor) PluralName() string {
	if d.Plural != "" {
		return d.Plural
	}
	return d.ObjectKey() + "s"
}

// CollectionPath returns the collection path without a leading slash.
func (d *Descriptor) CollectionPath() string {
	if d.Path != "" {
		return strings.Trim(d.Path, "/")
	}
	return strings.ReplaceAll(d.PluralName(), "_", "-")
}

// ItemPath returns the path of a single resource.
func (d *Descriptor) ItemPath(id string) string {
	return d.CollectionPath() + "/" + id
}

// Registry maps resource names to descriptors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// Register adds a descriptor. Registering a name twice is an error.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil || d.Name == "" {
		return fmt.Errorf("descriptor must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[d.Name]; exists {
		return fmt.Errorf("resource %q already registered", d.Name)
	}
	r.descriptors[d.Name] = d
	return nil
}

// MustRegister is Register that panics on error, for static tables.
func (r *Registry) MustRegister(d *Descriptor) *Descriptor {
	if err := r.Register(d); err != nil {
		panic(err)
	}
	return d
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// API returns the descriptor whose endpoint serves d, following Shadow.
func (r *Registry) API(d *Descriptor) *Descriptor {
	if d.Shadow == "" {
		return d
	}
	if shadow, ok := r.Lookup(d.Shadow); ok {
		return shadow
	}
	return d
}

// Names returns all registered resource names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
