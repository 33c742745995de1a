package neutron

import (
	"context"
	"net/url"
)

// Lister lists a collection. It is all name resolution needs.
type Lister interface {
	List(ctx context.Context, path, collection string, query url.Values) ([]map[string]any, error)
}

// Client is the transport surface used by commands. Paths are relative to
// the v2.0 resource base; resource and collection name the JSON envelope.
type Client interface {
	Lister
	Get(ctx context.Context, path, resource string, query url.Values) (map[string]any, error)
	Create(ctx context.Context, path, resource string, body map[string]any) (map[string]any, error)
	Update(ctx context.Context, path, resource string, body map[string]any) (map[string]any, error)
	Put(ctx context.Context, path string, body map[string]any) (map[string]any, error)
	Delete(ctx context.Context, path string) error
}
