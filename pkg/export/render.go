package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/umd-lib/staffdir/pkg/errors"
)

// Format names an output format.
type Format string

const (
	// FormatCSV is RFC 4180 CSV with a header row.
	FormatCSV Format = "csv"
	// FormatLegacy is the original text sink: every value followed by a
	// comma, including the last, one line per person, no header.
	FormatLegacy Format = "legacy"
	// FormatTable is an aligned text table for terminals.
	FormatTable Format = "table"
	// FormatJSON is an array of objects keyed by column.
	FormatJSON Format = "json"
	// FormatYAML is a sequence of mappings keyed by column.
	FormatYAML Format = "yaml"
)

// Formats returns all supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatLegacy, FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewValidationError("format", s,
		fmt.Sprintf("invalid format %q: must be one of: csv, legacy, table, json, yaml", s))
}

// Renderer writes a Result. Every renderer emits exactly the header
// columns, in order, and renders absent values as "".
type Renderer interface {
	Render(w io.Writer, r *Result) error
}

// RendererFunc allows functions to implement Renderer.
type RendererFunc func(io.Writer, *Result) error

// Render implements Renderer.
func (f RendererFunc) Render(w io.Writer, r *Result) error {
	return f(w, r)
}

// NewRenderer returns the renderer for format; unknown formats get CSV.
func NewRenderer(format Format) Renderer {
	switch format {
	case FormatLegacy:
		return RendererFunc(renderLegacy)
	case FormatTable:
		return RendererFunc(renderTable)
	case FormatJSON:
		return &JSONRenderer{Indent: "  "}
	case FormatYAML:
		return RendererFunc(renderYAML)
	default:
		return &CSVRenderer{}
	}
}

// CSVRenderer writes CSV with a header row.
type CSVRenderer struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
	// NoHeader omits the header row.
	NoHeader bool
}

// Render implements Renderer.
func (c *CSVRenderer) Render(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)
	if c.Comma != 0 {
		cw.Comma = c.Comma
	}
	if !c.NoHeader {
		if err := cw.Write(r.Columns); err != nil {
			return errors.WrapIO("write", "csv header", err)
		}
	}
	if err := cw.WriteAll(r.Values()); err != nil {
		return errors.WrapIO("write", "csv rows", err)
	}
	return nil
}

func renderLegacy(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	for _, vals := range r.Values() {
		for _, v := range vals {
			bw.WriteString(v)
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	return errors.WrapIO("write", "legacy rows", bw.Flush())
}

func renderTable(w io.Writer, r *Result) error {
	tbl := tablewriter.NewTable(w)

	headers := make([]any, len(r.Columns))
	for i, h := range r.Columns {
		headers[i] = h
	}
	tbl.Header(headers...)

	for _, vals := range r.Values() {
		row := make([]any, len(vals))
		for i, v := range vals {
			row[i] = v
		}
		if err := tbl.Append(row...); err != nil {
			return err
		}
	}
	return tbl.Render()
}

// JSONRenderer writes an array of objects whose keys follow column order.
type JSONRenderer struct {
	Indent string
}

// Render implements Renderer.
func (j *JSONRenderer) Render(w io.Writer, r *Result) error {
	objects := make([]orderedObject, len(r.Rows))
	for i, vals := range r.Values() {
		objects[i] = orderedObject{keys: r.Columns, values: vals}
	}
	enc := json.NewEncoder(w)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(objects)
}

// orderedObject marshals as a JSON object with keys in a fixed order.
type orderedObject struct {
	keys   []string
	values []string
}

// MarshalJSON implements json.Marshaler.
func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func renderYAML(w io.Writer, r *Result) error {
	docs := make([]yaml.MapSlice, len(r.Rows))
	for i, vals := range r.Values() {
		item := make(yaml.MapSlice, len(r.Columns))
		for j, col := range r.Columns {
			item[j] = yaml.MapItem{Key: col, Value: vals[j]}
		}
		docs[i] = item
	}
	data, err := yaml.MarshalWithOptions(docs, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return errors.WrapParse("yaml", "export", err)
	}
	_, err = w.Write(data)
	return errors.WrapIO("write", "yaml", err)
}
