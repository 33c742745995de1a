package logger

import "log/slog"

// Standard field keys for structured logging. Use these consistently so
// debug output from different commands can be grepped the same way.
const (
	// Distributed tracing
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	// Invocation
	KeyCommand  = "command"
	KeyResource = "resource"
	KeyContext  = "context"

	// HTTP exchange with the Networking API
	KeyMethod     = "method"
	KeyPath       = "path"
	KeyStatus     = "status"
	KeyDurationMs = "duration_ms"
	KeyEndpoint   = "endpoint"
	KeyRegion     = "region"

	// Name resolution and listing
	KeyName   = "name"
	KeyID     = "id"
	KeyMarker = "marker"
	KeyPage   = "page"
	KeyCount  = "count"

	KeyError = "error"
)

// Err returns a slog.Attr for an error; nil errors produce an empty attr
// which handlers skip.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Resource returns a slog.Attr for a Neutron resource name.
func Resource(name string) slog.Attr {
	return slog.String(KeyResource, name)
}

// Status returns a slog.Attr for an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}
