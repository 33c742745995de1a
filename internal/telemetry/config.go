package telemetry

// Config selects where neutronctl sends its traces. One invocation produces
// a single trace: the command span plus one child span per API call.
type Config struct {
	Enabled bool

	// ServiceName and ServiceVersion populate the OTel resource.
	ServiceName    string
	ServiceVersion string

	// Endpoint is an OTLP/gRPC collector address, host:port.
	Endpoint string
	Insecure bool
	// Headers go with every export, typically a collector API key.
	Headers map[string]string

	// SampleRate in [0, 1]. Values outside the range are clamped.
	SampleRate float64
}

// DefaultConfig is tracing off, pointed at a local collector.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "neutronctl",
		ServiceVersion: "dev",
		Endpoint:       "localhost:4317",
		Insecure:       true,
		SampleRate:     1.0,
	}
}
