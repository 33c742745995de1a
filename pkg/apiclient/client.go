// Package apiclient is the Neutron v2.0 transport used by neutronctl. It
// sends JSON requests through a gophercloud ServiceClient and decodes the
// {resource: {...}} / {resources: [...]} envelopes into plain maps.
package apiclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/marmos91/neutronctl/internal/logger"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/metrics"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client is the Neutron API client.
type Client struct {
	sc      *gophercloud.ServiceClient
	logger  *slog.Logger
	metrics metrics.APIMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing at DEBUG level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records every request in m.
func WithMetrics(m metrics.APIMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client on top of an authenticated network ServiceClient.
func New(sc *gophercloud.ServiceClient, opts ...Option) *Client {
	c := &Client{
		sc:     sc,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the v2.0 resource base URL.
func (c *Client) Endpoint() string {
	return c.sc.ResourceBaseURL()
}

// do performs one request. body and result may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	target := c.sc.ServiceURL(strings.TrimPrefix(path, "/"))
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	label := resourceLabel(path)

	ctx, span := telemetry.StartSpan(ctx, "neutron."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(telemetry.AttrHTTPMethod, method),
			attribute.String(telemetry.AttrNeutronResource, label),
		))
	defer span.End()

	start := time.Now()
	resp, err := c.send(ctx, method, target, body, result)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	var unexpected gophercloud.ErrUnexpectedResponseCode
	if errors.As(err, &unexpected) {
		status = unexpected.Actual
	}

	metrics.ObserveRequest(c.metrics, method, label, status, time.Since(start))
	span.SetAttributes(attribute.Int(telemetry.AttrHTTPStatus, status))
	c.logger.DebugContext(ctx, "neutron request",
		logger.KeyMethod, method,
		logger.KeyPath, path,
		logger.Resource(label),
		logger.Status(status),
		logger.KeyDurationMs, logger.Duration(start))

	if err != nil {
		telemetry.RecordError(ctx, err)
		return wrapError(method, target, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, target string, body, result any) (*http.Response, error) {
	switch method {
	case http.MethodGet:
		return c.sc.Get(ctx, target, result, nil)
	case http.MethodPost:
		return c.sc.Post(ctx, target, body, result, &gophercloud.RequestOpts{
			OkCodes: []int{http.StatusOK, http.StatusCreated, http.StatusAccepted},
		})
	case http.MethodPut:
		return c.sc.Put(ctx, target, body, result, &gophercloud.RequestOpts{
			OkCodes: []int{http.StatusOK, http.StatusCreated, http.StatusAccepted},
		})
	case http.MethodDelete:
		return c.sc.Delete(ctx, target, &gophercloud.RequestOpts{
			OkCodes: []int{http.StatusOK, http.StatusAccepted, http.StatusNoContent},
		})
	default:
		return nil, errors.New("unsupported method " + method)
	}
}

// resourceLabel reduces a path to a metric label by replacing IDs with ":id".
func resourceLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if neutron.IsID(p) {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
