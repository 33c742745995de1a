package neutron

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// extraOpt accumulates one "--key ..." group of extra arguments.
type extraOpt struct {
	name   string
	typ    string
	list   bool
	clear  bool
	inline bool
	values []string
}

// ParseExtraArgs parses the free-form arguments given after "--" into body
// fields or query filters:
//
//	--key value                        string
//	--key v1 v2                        list of strings
//	--key=value                        string
//	--key type=int 5                   typed value (int, bool, dict, str, list)
//	--key list=true type=dict a=1 b=2  list of dicts
//	--key action=clear                 null
//	--key                              true
//
// Keys have dashes converted to underscores.
func ParseExtraArgs(specs []string) (map[string]any, error) {
	result := make(map[string]any)
	var cur *extraOpt
	seen := make(map[string]bool)

	flush := func() error {
		if cur == nil {
			return nil
		}
		value, err := cur.value()
		if err != nil {
			return err
		}
		result[strings.ReplaceAll(cur.name, "-", "_")] = value
		return nil
	}

	for _, item := range specs {
		switch {
		case item == "--":
			continue
		case strings.HasPrefix(item, "---"):
			return nil, InvalidArgumentf("invalid extra argument %q", item)
		case strings.HasPrefix(item, "--"):
			if err := flush(); err != nil {
				return nil, err
			}
			name := item[2:]
			opt := &extraOpt{}
			if k, v, ok := strings.Cut(name, "="); ok {
				name = k
				opt.inline = true
				opt.values = []string{v}
			}
			if name == "" {
				return nil, InvalidArgumentf("invalid extra argument %q", item)
			}
			if seen[name] {
				return nil, InvalidArgumentf("duplicated extra argument --%s", name)
			}
			seen[name] = true
			opt.name = name
			cur = opt
		case cur == nil:
			return nil, InvalidArgumentf("extra argument %q must follow an option", item)
		case strings.HasPrefix(item, "type=") && cur.typ == "":
			cur.typ = strings.TrimPrefix(item, "type=")
			switch cur.typ {
			case "str", "int", "bool", "dict", "list":
			default:
				return nil, InvalidArgumentf("unsupported type %q for --%s", cur.typ, cur.name)
			}
		case item == "list=true":
			cur.list = true
		case item == "action=clear":
			cur.clear = true
		default:
			if cur.inline {
				return nil, InvalidArgumentf("unexpected value %q after --%s=", item, cur.name)
			}
			if strings.HasPrefix(item, "-") && !isNumber(item) {
				return nil, InvalidArgumentf("invalid extra argument %q", item)
			}
			cur.values = append(cur.values, item)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return result, nil
}

func (o *extraOpt) value() (any, error) {
	if len(o.values) == 0 {
		if o.typ != "" || o.list {
			return nil, InvalidArgumentf("--%s requires a value", o.name)
		}
		if o.clear {
			return nil, nil
		}
		return true, nil
	}

	if len(o.values) > 1 || o.list || o.typ == "list" {
		out := make([]any, 0, len(o.values))
		for _, raw := range o.values {
			v, err := convertExtra(o.name, o.typ, raw)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return convertExtra(o.name, o.typ, o.values[0])
}

func convertExtra(name, typ, raw string) (any, error) {
	switch typ {
	case "int":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, InvalidArgumentf("--%s: %q is not an integer", name, raw)
		}
		return n, nil
	case "bool":
		return strings.EqualFold(raw, "true"), nil
	case "dict":
		return ParseKeyValue(raw)
	default:
		return raw, nil
	}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// QueryFilters turns parsed extra arguments into list/show query parameters.
// Lists become repeated parameters; cleared values are dropped.
func QueryFilters(extra map[string]any) url.Values {
	q := url.Values{}
	for k, v := range extra {
		switch val := v.(type) {
		case nil:
		case []any:
			for _, e := range val {
				q.Add(k, queryValue(e))
			}
		default:
			q.Add(k, queryValue(val))
		}
	}
	return q
}

func queryValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
