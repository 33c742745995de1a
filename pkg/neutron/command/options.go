package command

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Kind is how an option's flag value becomes a body value.
type Kind int

const (
	// String sends the flag value as a string.
	String Kind = iota
	// Bool is a switch; it sends Option.Value, or true when Value is nil.
	Bool
	// Int sends the flag value as an integer.
	Int
	// StringArray is a repeatable flag sent as a list of strings.
	StringArray
	// KV parses "k=v,k2=v2" into an object.
	KV
	// KVArray is a repeatable KV flag sent as a list of objects.
	KVArray
	// BoolString takes "true" or "false" (any case) and sends a boolean.
	BoolString
)

// Option declares one flag and, when Field is set, the body field it fills.
type Option struct {
	Flag  string
	Short string
	Usage string
	Kind  Kind

	// Field is the body field. Options without a field are read by hooks.
	Field string

	// Default is shown in help and, when not empty, sent if the flag is
	// not given.
	Default string

	// Choices restricts String and Int values.
	Choices []string

	// Keys restricts the keys accepted by KV and KVArray values.
	Keys []string

	Required bool
	Hidden   bool

	// Value is the body value of a Bool switch.
	Value any

	// Resolve names the resource a String or StringArray value refers to;
	// names are resolved to IDs.
	Resolve string

	// ResolveVia looks names up through another resource's endpoint.
	ResolveVia string
}

// Positional declares one positional argument.
type Positional struct {
	// Name is the metavar shown in usage, e.g. NETWORK.
	Name string

	// Field is the body field. Positionals without a field are read by
	// hooks through Invocation.Args.
	Field string

	Optional   bool
	Resolve    string
	ResolveVia string
}

// Table is the declarative description of a command's arguments. It
// implements BodyBuilder.
type Table struct {
	Positionals []Positional
	Options     []Option

	// Defaults are fields always present in the body, overridden by
	// options the user sets.
	Defaults map[string]any

	// Exclusive lists groups of flags that cannot be combined.
	Exclusive [][]string
}

// usage returns the positional metavars for the Use line.
func (t *Table) usage() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Positionals))
	for i, p := range t.Positionals {
		if p.Optional {
			names[i] = "[" + p.Name + "]"
		} else {
			names[i] = p.Name
		}
	}
	return names
}

// Register declares the table's flags on cmd.
func (t *Table) Register(cmd *cobra.Command) {
	if t == nil {
		return
	}
	fs := cmd.Flags()
	for _, o := range t.Options {
		usage := o.Usage
		if len(o.Choices) > 0 {
			usage = fmt.Sprintf("%s {%s}", usage, strings.Join(o.Choices, ","))
		}

		switch o.Kind {
		case Bool:
			fs.BoolP(o.Flag, o.Short, false, usage)
		case Int:
			def := 0
			if o.Default != "" {
				def, _ = strconv.Atoi(o.Default)
			}
			fs.IntP(o.Flag, o.Short, def, usage)
		case StringArray, KVArray:
			fs.StringArrayP(o.Flag, o.Short, nil, usage)
		default:
			fs.StringP(o.Flag, o.Short, o.Default, usage)
		}

		if o.Required {
			_ = cmd.MarkFlagRequired(o.Flag)
		}
		if o.Hidden {
			_ = fs.MarkHidden(o.Flag)
		}
	}
}

// Body fills body from the positionals, the defaults and the options the
// user set.
func (t *Table) Body(in *Invocation, body neutron.Fields) error {
	if t == nil {
		return nil
	}
	if err := t.checkExclusive(in); err != nil {
		return err
	}
	for k, v := range t.Defaults {
		body[k] = v
	}

	for i, p := range t.Positionals {
		if p.Field == "" || i >= len(in.Args) {
			continue
		}
		v, err := resolveValue(in, in.Args[i], p.Resolve, p.ResolveVia)
		if err != nil {
			return err
		}
		body[p.Field] = v
	}

	fs := in.Flags()
	for _, o := range t.Options {
		if o.Field == "" {
			continue
		}
		flag := fs.Lookup(o.Flag)
		if flag == nil {
			continue
		}
		if !flag.Changed && (o.Default == "" || o.Kind == Bool) {
			continue
		}
		v, err := o.value(in, flag)
		if err != nil {
			return err
		}
		body[o.Field] = v
	}
	return nil
}

// checkExclusive runs before any lookup so conflicting flags cost no
// requests.
func (t *Table) checkExclusive(in *Invocation) error {
	for _, group := range t.Exclusive {
		var set []string
		for _, name := range group {
			if in.Changed(name) {
				set = append(set, "--"+name)
			}
		}
		if len(set) > 1 {
			return neutron.InvalidArgumentf("%s: not allowed together", strings.Join(set, ", "))
		}
	}
	return nil
}

func (o *Option) value(in *Invocation, flag *pflag.Flag) (any, error) {
	if o.Kind == String || o.Kind == Int {
		if s := flag.Value.String(); len(o.Choices) > 0 && !slices.Contains(o.Choices, s) {
			return nil, neutron.InvalidArgumentf("--%s: invalid choice %q (choose from %s)",
				o.Flag, s, strings.Join(o.Choices, ", "))
		}
	}

	switch o.Kind {
	case Bool:
		if o.Value != nil {
			return o.Value, nil
		}
		return true, nil

	case Int:
		n, err := strconv.Atoi(flag.Value.String())
		if err != nil {
			return nil, neutron.InvalidArgumentf("--%s: %q is not an integer", o.Flag, flag.Value.String())
		}
		return n, nil

	case BoolString:
		return ParseBool(o.Flag, flag.Value.String())

	case KV:
		return o.keyValue(flag.Value.String())

	case StringArray, KVArray:
		raw, _ := in.Flags().GetStringArray(o.Flag)
		out := make([]any, 0, len(raw))
		for _, s := range raw {
			var (
				v   any
				err error
			)
			if o.Kind == KVArray {
				v, err = o.keyValue(s)
			} else {
				v, err = resolveValue(in, s, o.Resolve, o.ResolveVia)
			}
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	default:
		return resolveValue(in, flag.Value.String(), o.Resolve, o.ResolveVia)
	}
}

func (o *Option) keyValue(s string) (map[string]any, error) {
	kv, err := neutron.ParseKeyValue(s)
	if err != nil {
		return nil, neutron.InvalidArgumentf("--%s: %v", o.Flag, err)
	}
	if len(o.Keys) > 0 {
		for k := range kv {
			if !slices.Contains(o.Keys, k) {
				return nil, neutron.InvalidArgumentf("--%s: unknown key %q (valid: %s)",
					o.Flag, k, strings.Join(o.Keys, ", "))
			}
		}
	}
	return kv, nil
}

func resolveValue(in *Invocation, value, resource, via string) (any, error) {
	if resource == "" {
		return value, nil
	}
	var opts []neutron.ResolveOption
	if via != "" {
		opts = append(opts, neutron.WithCmdResource(via))
	}
	return in.Resolve(resource, value, opts...)
}

// ParseBool accepts "true" or "false" in any case.
func ParseBool(flag, s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, neutron.InvalidArgumentf("--%s: invalid value %q (choose from True, False)", flag, s)
	}
}

// Changed reports whether the named flag was given.
func (in *Invocation) Changed(flag string) bool {
	f := in.Flags().Lookup(flag)
	return f != nil && f.Changed
}

// String returns a string flag's value.
func (in *Invocation) String(flag string) string {
	f := in.Flags().Lookup(flag)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

// Strings returns a repeatable flag's values.
func (in *Invocation) Strings(flag string) []string {
	v, _ := in.Flags().GetStringArray(flag)
	return v
}

// KeyValues parses a repeatable key=value flag that is read by a hook
// rather than mapped to a field. Keys, when given, restrict the accepted
// keys.
func (in *Invocation) KeyValues(flag string, keys ...string) ([]map[string]any, error) {
	o := Option{Flag: flag, Keys: keys}
	var out []map[string]any
	for _, s := range in.Strings(flag) {
		kv, err := o.keyValue(s)
		if err != nil {
			return nil, err
		}
		out = append(out, kv)
	}
	return out, nil
}
