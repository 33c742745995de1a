package command

import (
	"net/url"
	"slices"
	"strconv"

	"github.com/marmos91/neutronctl/internal/cli/output"
	"github.com/marmos91/neutronctl/internal/logger"
	"github.com/marmos91/neutronctl/internal/telemetry"
	"github.com/marmos91/neutronctl/pkg/metrics"
	"github.com/marmos91/neutronctl/pkg/neutron"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

// ListSpec parameterizes a list command.
type ListSpec struct {
	Name     string
	Resource string
	Short    string

	// Flags registers command-specific flags read by the hooks.
	Flags func(cmd *cobra.Command)

	// Extend enriches the fetched items before rendering.
	Extend func(in *Invocation, items []map[string]any) error

	// Columns adjusts the displayed columns, e.g. to show a name column
	// filled by Extend in place of an ID column. It also sees columns
	// selected with -c.
	Columns func(in *Invocation, columns []string) []string

	// Fields rewrites the --fields values before they are sent.
	Fields func(in *Invocation, fields []string) []string
}

// ListOptions are the parsed generic list flags.
type ListOptions struct {
	Fields      []string
	Columns     []string
	SortKeys    []string
	SortDirs    []string
	PageSize    int
	ShowDetails bool
	TenantID    string
}

// NewList builds a "<resource>-list" command.
func NewList(env *Env, spec ListSpec) *cobra.Command {
	d, _ := env.Registry.Lookup(spec.Resource)

	cmd := &cobra.Command{
		Use:   use(spec.Name),
		Short: spec.Short,
		Args:  positionalArgs(),
	}

	fs := cmd.Flags()
	fs.StringArrayP("fields", "F", nil, "Specify the field(s) to be returned by server (repeatable)")
	fs.StringArrayP("column", "c", nil, "Specify the column(s) to include (repeatable)")
	fs.BoolP("show-details", "D", false, "Show detailed information")
	fs.String("tenant-id", "", "Only list resources of this tenant")
	addRequestFormat(cmd)
	if d == nil || d.Sorting {
		fs.StringArray("sort-key", nil, "Sorts the list by the specified field (repeatable)")
		fs.StringArray("sort-dir", nil, "Sorts the list in the specified direction {asc,desc} (repeatable)")
	}
	if d == nil || d.Pagination {
		fs.IntP("page-size", "P", 0, "Specify retrieve unit of each request, then split one request to several requests")
	}
	if spec.Flags != nil {
		spec.Flags(cmd)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in, err := newInvocation(env, cmd, spec.Resource, args)
		if err != nil {
			return err
		}
		return runList(in, spec)
	}
	return cmd
}

func listOptions(in *Invocation, d *neutron.Descriptor) (ListOptions, error) {
	opts := ListOptions{
		Fields:   in.Strings("fields"),
		Columns:  in.Strings("column"),
		SortKeys: in.Strings("sort-key"),
		SortDirs: in.Strings("sort-dir"),
		TenantID: in.String("tenant-id"),
	}
	if d.Pagination {
		opts.PageSize = in.env.PageSize
	}
	opts.ShowDetails, _ = in.Flags().GetBool("show-details")
	if in.Changed("page-size") {
		opts.PageSize, _ = in.Flags().GetInt("page-size")
		if opts.PageSize <= 0 {
			return opts, neutron.InvalidArgumentf("--page-size must be a positive integer")
		}
	}
	if err := validateSort(opts.SortKeys, opts.SortDirs); err != nil {
		return opts, err
	}
	return opts, nil
}

// validateSort checks sort directions. Directions are optional, but when
// given there must be one per key.
func validateSort(keys, dirs []string) error {
	for _, dir := range dirs {
		if dir != "asc" && dir != "desc" {
			return neutron.InvalidArgumentf("--sort-dir: invalid choice %q (choose from asc, desc)", dir)
		}
	}
	if len(dirs) > 0 && len(dirs) != len(keys) {
		return neutron.InvalidArgumentf("number of --sort-dir (%d) must match number of --sort-key (%d)",
			len(dirs), len(keys))
	}
	return nil
}

// Query builds the list query from the options and extra-argument filters.
func (o ListOptions) Query(extra map[string]any) url.Values {
	q := neutron.QueryFilters(extra)
	for _, f := range o.Fields {
		q.Add("fields", f)
	}
	for _, k := range o.SortKeys {
		q.Add("sort_key", k)
	}
	for _, d := range o.SortDirs {
		q.Add("sort_dir", d)
	}
	if o.TenantID != "" {
		q.Set("tenant_id", o.TenantID)
	}
	if o.ShowDetails {
		q.Set("verbose", "True")
	}
	return q
}

func runList(in *Invocation, spec ListSpec) error {
	d, err := in.Descriptor()
	if err != nil {
		return err
	}
	opts, err := listOptions(in, d)
	if err != nil {
		return err
	}
	printer, err := in.Printer()
	if err != nil {
		return err
	}

	if spec.Fields != nil && len(opts.Fields) > 0 {
		opts.Fields = spec.Fields(in, opts.Fields)
	}

	api := in.Registry().API(d)
	items, err := in.ListAll(api, opts.Query(in.Extra), opts.PageSize)
	if err != nil {
		return err
	}

	if spec.Extend != nil {
		if err := spec.Extend(in, items); err != nil {
			return err
		}
	}

	columns := listColumns(d, opts, items)
	if spec.Columns != nil {
		columns = spec.Columns(in, columns)
	}
	return printer.Print(&output.Records{Columns: output.Columns(columns...), Items: items})
}

func listColumns(d *neutron.Descriptor, opts ListOptions, items []map[string]any) []string {
	switch {
	case len(opts.Columns) > 0:
		return opts.Columns
	case len(opts.Fields) > 0:
		return opts.Fields
	case opts.ShowDetails || len(d.ListColumns) == 0:
		return allKeys(items)
	default:
		return d.ListColumns
	}
}

// allKeys returns the union of the item keys, id and name first.
func allKeys(items []map[string]any) []string {
	union := make(map[string]any)
	for _, item := range items {
		for k := range item {
			union[k] = nil
		}
	}
	keys := make([]string, 0, len(union))
	for _, k := range []string{"id", "name"} {
		if _, ok := union[k]; ok {
			keys = append(keys, k)
			delete(union, k)
		}
	}
	return append(keys, output.SortedKeys(union)...)
}

// ListAll fetches a collection. With pageSize > 0 it follows limit/marker
// pages until a page is not exactly pageSize long; otherwise it issues one
// request. A server with pagination disabled ignores limit and answers
// with everything at once, which also ends the loop.
func (in *Invocation) ListAll(api *neutron.Descriptor, query url.Values, pageSize int) ([]map[string]any, error) {
	client, err := in.Client()
	if err != nil {
		return nil, err
	}

	path, collection := api.CollectionPath(), api.PluralName()
	if pageSize <= 0 {
		items, err := client.List(in.Ctx, path, collection, query)
		if err != nil {
			return nil, err
		}
		metrics.ObservePage(in.env.Metrics, api.Name, len(items))
		return items, nil
	}

	// The marker is the last item's id, so paged queries must return it.
	if fields, ok := query["fields"]; ok && !slices.Contains(fields, "id") {
		query = cloneValues(query)
		query.Add("fields", "id")
	}

	var (
		all    []map[string]any
		marker string
	)
	for page := 1; ; page++ {
		q := cloneValues(query)
		q.Set("limit", strconv.Itoa(pageSize))
		if marker != "" {
			q.Set("marker", marker)
		}

		items, err := client.List(in.Ctx, path, collection, q)
		if err != nil {
			return nil, err
		}
		metrics.ObservePage(in.env.Metrics, api.Name, len(items))
		in.Logger().DebugContext(in.Ctx, "fetched page",
			logger.KeyPage, page, logger.KeyCount, len(items), logger.KeyMarker, marker)
		all = append(all, items...)

		if len(items) != pageSize {
			break
		}
		next, _ := items[len(items)-1]["id"].(string)
		if next == "" || next == marker {
			break
		}
		marker = next
	}

	telemetry.SetAttributes(in.Ctx, attribute.Int(telemetry.AttrItems, len(all)))
	return all, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+2)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
