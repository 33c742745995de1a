// Package output renders command results as tables, JSON, YAML, CSV or bare
// values.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format represents the output format type.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	// FormatCSV writes a header line followed by quoted records.
	FormatCSV Format = "csv"
	// FormatValue writes bare values separated by spaces, one record per line.
	FormatValue Format = "value"
)

// Formats lists every supported format, in help order.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML, FormatCSV, FormatValue}

// ParseFormat parses a string into a Format, returning an error if invalid.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "value":
		return FormatValue, nil
	default:
		return "", fmt.Errorf("invalid output format: %q (valid: %s)", s, formatList())
	}
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func (f Format) String() string {
	return string(f)
}

// Structured reports whether the format serializes whole objects rather than
// rendering rows.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// Printer handles formatted output to a writer.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

// ColorEnabled reports whether w is a terminal that should get colored
// messages. NO_COLOR turns color off.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewPrinter creates a new Printer with the given options.
func NewPrinter(out io.Writer, format Format, color bool) *Printer {
	return &Printer{
		out:    out,
		format: format,
		color:  color,
	}
}

func (p *Printer) Format() Format {
	return p.format
}

func (p *Printer) Writer() io.Writer {
	return p.out
}

// Valuer is implemented by renderers that serialize to something other
// than themselves in structured formats.
type Valuer interface {
	Value() any
}

// Print outputs data in the configured format. Row formats need a
// TableRenderer; anything else falls back to JSON.
func (p *Printer) Print(data any) error {
	if p.format.Structured() {
		if v, ok := data.(Valuer); ok {
			data = v.Value()
		}
		if p.format == FormatYAML {
			return PrintYAML(p.out, data)
		}
		return PrintJSON(p.out, data)
	}

	renderer, ok := data.(TableRenderer)
	if !ok {
		return PrintJSON(p.out, data)
	}
	switch p.format {
	case FormatTable:
		return PrintTable(p.out, renderer)
	case FormatCSV:
		return PrintCSV(p.out, renderer)
	case FormatValue:
		return PrintValue(p.out, renderer)
	default:
		return fmt.Errorf("unknown format: %s", p.format)
	}
}

// Printf prints a formatted message.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Success prints a success message. Nothing is printed for structured
// formats so their output stays machine readable.
func (p *Printer) Success(msg string) {
	if p.format.Structured() {
		return
	}
	if p.color {
		_, _ = fmt.Fprintf(p.out, "\033[32m%s\033[0m\n", msg)
	} else {
		_, _ = fmt.Fprintln(p.out, msg)
	}
}

// Warning prints msg prefixed with "Warning: ". Like Success it is
// skipped for structured formats.
func (p *Printer) Warning(msg string) {
	if p.format.Structured() {
		return
	}
	if p.color {
		_, _ = fmt.Fprintf(p.out, "\033[33mWarning: %s\033[0m\n", msg)
	} else {
		_, _ = fmt.Fprintln(p.out, "Warning: "+msg)
	}
}
