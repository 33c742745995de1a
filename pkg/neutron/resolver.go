package neutron

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
)

// Resolver turns a name-or-ID into a canonical resource ID.
type Resolver struct {
	client   Lister
	registry *Registry
	logger   *slog.Logger
}

// NewResolver creates a resolver. A nil logger discards output.
func NewResolver(client Lister, registry *Registry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{client: client, registry: registry, logger: logger}
}

type resolveOptions struct {
	cmdResource string
	filters     url.Values
}

// ResolveOption narrows a name lookup.
type ResolveOption func(*resolveOptions)

// WithCmdResource looks the name up through another registered resource's
// endpoint, e.g. "lbaas_pool" for a load-balancer v2 pool.
func WithCmdResource(name string) ResolveOption {
	return func(o *resolveOptions) { o.cmdResource = name }
}

// WithFilter adds an equality filter to the lookup query.
func WithFilter(key, value string) ResolveOption {
	return func(o *resolveOptions) {
		if value != "" {
			o.filters.Add(key, value)
		}
	}
}

// WithParent scopes the lookup to children of a parent resource, e.g.
// WithParent("network_id", id) for subnets.
func WithParent(key, parentID string) ResolveOption {
	return WithFilter(key, parentID)
}

// WithTenant scopes the lookup to one project.
func WithTenant(tenantID string) ResolveOption {
	return WithFilter("tenant_id", tenantID)
}

// IsID reports whether s is in canonical UUID form.
func IsID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Resolve returns the ID of the single resource identified by identifier.
// IDs are returned unchanged without a request; names are looked up with one
// list call filtered by name.
func (r *Resolver) Resolve(ctx context.Context, resource, identifier string, opts ...ResolveOption) (string, error) {
	if identifier == "" {
		return "", InvalidArgumentf("%s name or ID must not be empty", resource)
	}
	if IsID(identifier) {
		return identifier, nil
	}

	o := resolveOptions{filters: url.Values{}}
	for _, opt := range opts {
		opt(&o)
	}

	lookup := resource
	if o.cmdResource != "" {
		lookup = o.cmdResource
	}
	d, ok := r.registry.Lookup(lookup)
	if !ok {
		return "", fmt.Errorf("unknown resource type %q", lookup)
	}
	api := r.registry.API(d)

	query := o.filters
	query.Set("name", identifier)
	query.Set("fields", "id")

	r.logger.DebugContext(ctx, "resolving name", "resource", resource, "name", identifier, "path", api.CollectionPath())

	items, err := r.client.List(ctx, api.CollectionPath(), api.PluralName(), query)
	if err != nil {
		return "", err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		if id, ok := item["id"].(string); ok {
			ids = append(ids, id)
		}
	}

	switch len(ids) {
	case 0:
		return "", &NotFoundError{Resource: resource, Name: identifier}
	case 1:
		return ids[0], nil
	default:
		return "", &AmbiguousError{Resource: resource, Name: identifier, IDs: ids}
	}
}
