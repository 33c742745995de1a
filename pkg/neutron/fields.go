package neutron

import (
	"reflect"
	"strings"
)

// Fields is the inner mapping of a request body: field name to value.
type Fields map[string]any

// Set stores value under key and returns f for chaining.
func (f Fields) Set(key string, value any) Fields {
	f[key] = value
	return f
}

// SetString stores value only when it is not empty.
func (f Fields) SetString(key, value string) Fields {
	if value != "" {
		f[key] = value
	}
	return f
}

// Merge folds extra arguments into f. When both sides hold lists of the
// same element kind the extra list is appended; otherwise extra wins.
func (f Fields) Merge(extra map[string]any) Fields {
	for k, v := range extra {
		if cur, ok := f[k]; ok {
			if merged, ok := appendLists(cur, v); ok {
				f[k] = merged
				continue
			}
		}
		f[k] = v
	}
	return f
}

// Envelope wraps f under the resource key: {resource: {...}}.
func (f Fields) Envelope(resource string) map[string]any {
	return map[string]any{resource: map[string]any(f)}
}

func appendLists(a, b any) ([]any, bool) {
	la, ok := toList(a)
	if !ok {
		return nil, false
	}
	lb, ok := toList(b)
	if !ok {
		return nil, false
	}
	if len(la) > 0 && len(lb) > 0 && reflect.TypeOf(la[0]) != reflect.TypeOf(lb[0]) {
		return nil, false
	}
	return append(la, lb...), true
}

func toList(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if l, ok := v.([]any); ok {
		return append([]any(nil), l...), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ParseKeyValue parses "k1=v1,k2=v2" into a map. Values may contain '='.
func ParseKeyValue(s string) (map[string]any, error) {
	out := make(map[string]any)
	if strings.TrimSpace(s) == "" {
		return nil, InvalidArgumentf("empty key=value list")
	}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, InvalidArgumentf("invalid key=value pair %q in %q", pair, s)
		}
		out[k] = v
	}
	return out, nil
}
