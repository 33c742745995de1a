// Package metrics defines the instrumentation hooks used by the API client.
//
// A nil APIMetrics is valid everywhere and records nothing, so commands run
// without metrics pay no cost.
package metrics

import "time"

// APIMetrics records Neutron API calls.
type APIMetrics interface {
	// ObserveRequest records one HTTP call. status is 0 when no response
	// was received.
	ObserveRequest(method, resource string, status int, duration time.Duration)

	// ObservePage records one page fetched by a paginated list.
	ObservePage(resource string, items int)
}

// ObserveRequest records an API call if m is not nil.
func ObserveRequest(m APIMetrics, method, resource string, status int, duration time.Duration) {
	if m != nil {
		m.ObserveRequest(method, resource, status, duration)
	}
}

// ObservePage records a list page if m is not nil.
func ObservePage(m APIMetrics, resource string, items int) {
	if m != nil {
		m.ObservePage(resource, items)
	}
}
