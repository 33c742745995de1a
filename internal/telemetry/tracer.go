package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on neutronctl spans.
const (
	AttrCommand         = "neutronctl.command"
	AttrNeutronResource = "neutron.resource"
	AttrNeutronID       = "neutron.id"
	AttrHTTPMethod      = "http.request.method"
	AttrHTTPStatus      = "http.response.status_code"
	AttrPage            = "neutron.page"
	AttrItems           = "neutron.items"
)

// Command returns the attribute naming the CLI command.
func Command(name string) attribute.KeyValue {
	return attribute.String(AttrCommand, name)
}

// Resource returns the attribute naming a Neutron resource type.
func Resource(name string) attribute.KeyValue {
	return attribute.String(AttrNeutronResource, name)
}

// ResourceID returns the attribute carrying a resolved resource ID.
func ResourceID(id string) attribute.KeyValue {
	return attribute.String(AttrNeutronID, id)
}

// StartCommandSpan starts the root span of one CLI invocation.
func StartCommandSpan(ctx context.Context, command string) (context.Context, trace.Span) {
	return StartSpan(ctx, "neutronctl "+command,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(Command(command)))
}
