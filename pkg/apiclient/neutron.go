package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/marmos91/neutronctl/pkg/neutron"
)

var _ neutron.Client = (*Client)(nil)

// List fetches one page of a collection and returns the objects under the
// collection key.
func (c *Client) List(ctx context.Context, path, collection string, query url.Values) ([]map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}

	raw, ok := resp[collection]
	if !ok {
		return nil, fmt.Errorf("response from %s has no %q collection", path, collection)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("response from %s: %q is not a list", path, collection)
	}

	items := make([]map[string]any, 0, len(list))
	for _, e := range list {
		obj, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("response from %s: %q contains a non-object", path, collection)
		}
		items = append(items, obj)
	}
	return items, nil
}

// Get fetches a single object.
func (c *Client) Get(ctx context.Context, path, resource string, query url.Values) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return unwrapObject(resp, path, resource)
}

// Create POSTs body to a collection and returns the created object.
func (c *Client) Create(ctx context.Context, path, resource string, body map[string]any) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return unwrapObject(resp, path, resource)
}

// Update PUTs body to an object and returns the updated object.
func (c *Client) Update(ctx context.Context, path, resource string, body map[string]any) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return unwrapObject(resp, path, resource)
}

// Put PUTs body to a member action such as add_router_interface and
// returns the raw response object.
func (c *Client) Put(ctx context.Context, path string, body map[string]any) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodPut, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes an object.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func unwrapObject(resp map[string]any, path, resource string) (map[string]any, error) {
	raw, ok := resp[resource]
	if !ok {
		return nil, fmt.Errorf("response from %s has no %q object", path, resource)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response from %s: %q is not an object", path, resource)
	}
	return obj, nil
}
