package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// TableRenderer is implemented by types that can render themselves as a table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// verbatimHeaders is implemented by renderers whose headers are API field
// names and are printed as-is.
type verbatimHeaders interface {
	VerbatimHeaders() bool
}

// PrintTable writes data as a borderless table.
func PrintTable(w io.Writer, data TableRenderer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(data.Headers())

	verbatim := false
	if v, ok := data.(verbatimHeaders); ok {
		verbatim = v.VerbatimHeaders()
	}

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(!verbatim)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(data.Rows())
	table.Render()
	return nil
}

// TableData is a simple TableRenderer for ad-hoc tables.
type TableData struct {
	headers []string
	rows    [][]string
}

// NewTableData creates a new TableData with the given headers.
func NewTableData(headers ...string) *TableData {
	return &TableData{
		headers: headers,
		rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *TableData) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *TableData) Headers() []string { return t.headers }
func (t *TableData) Rows() [][]string  { return t.rows }

// Column maps a table header to the object field it displays.
type Column struct {
	Header string
	Field  string
}

// Columns builds identity columns, header == field.
func Columns(fields ...string) []Column {
	cols := make([]Column, len(fields))
	for i, f := range fields {
		cols[i] = Column{Header: f, Field: f}
	}
	return cols
}

// Records renders decoded API objects, one row per object.
type Records struct {
	Columns []Column
	Items   []map[string]any
}

func (r *Records) VerbatimHeaders() bool { return true }

func (r *Records) Headers() []string {
	headers := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		headers[i] = c.Header
	}
	return headers
}

func (r *Records) Rows() [][]string {
	rows := make([][]string, 0, len(r.Items))
	for _, item := range r.Items {
		row := make([]string, len(r.Columns))
		for i, c := range r.Columns {
			row[i] = FormatCell(item[c.Field])
		}
		rows = append(rows, row)
	}
	return rows
}

// Project returns the items reduced to the selected columns, keyed by header.
// Used for structured formats so they honor column selection.
func (r *Records) Project() []map[string]any {
	out := make([]map[string]any, 0, len(r.Items))
	for _, item := range r.Items {
		obj := make(map[string]any, len(r.Columns))
		for _, c := range r.Columns {
			obj[c.Header] = item[c.Field]
		}
		out = append(out, obj)
	}
	return out
}

// Value implements Valuer.
func (r *Records) Value() any { return r.Project() }

// FieldTable renders a single object as Field/Value rows sorted by field.
type FieldTable struct {
	Object map[string]any
	// Fields restricts and orders the rows; empty means every field, sorted.
	Fields []string
}

func (f *FieldTable) VerbatimHeaders() bool { return true }

func (f *FieldTable) Headers() []string { return []string{"Field", "Value"} }

func (f *FieldTable) Rows() [][]string {
	fields := f.Fields
	if len(fields) == 0 {
		fields = SortedKeys(f.Object)
	}
	rows := make([][]string, 0, len(fields))
	for _, k := range fields {
		v, ok := f.Object[k]
		if !ok {
			continue
		}
		rows = append(rows, []string{k, FormatCell(v)})
	}
	return rows
}

// Value returns the object restricted to Fields, or the whole object.
func (f *FieldTable) Value() any {
	if len(f.Fields) == 0 {
		return f.Object
	}
	obj := make(map[string]any, len(f.Fields))
	for _, k := range f.Fields {
		if v, ok := f.Object[k]; ok {
			obj[k] = v
		}
	}
	return obj
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatCell turns a decoded JSON value into table text. Lists render one
// element per line and objects as compact JSON.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			if _, isMap := e.(map[string]any); isMap {
				parts[i] = compactJSON(e)
				continue
			}
			parts[i] = FormatCell(e)
		}
		return strings.Join(parts, "\n")
	case map[string]any:
		return compactJSON(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
