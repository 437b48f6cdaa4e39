package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/comicdto/pkg/data"
	"github.com/kerbaras/comicdto/pkg/hydrate"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"

	cellWidth = 40
)

// entry and object keep key order through JSON and YAML output.
type entry struct {
	key string
	val any
}

type object []entry

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshal(e.key)
		if err != nil {
			return nil, err
		}
		v, err := marshal(e.val)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// plain turns a hydrated value into ordered plain values. Credentials are
// masked unless reveal is set.
func plain(v hydrate.Value, reveal bool) any {
	switch v.Kind() {
	case hydrate.KindPrimitive:
		p, _ := v.Primitive()
		return p
	case hydrate.KindSequence:
		out := make([]any, 0, v.Len())
		for _, e := range v.Elems() {
			out = append(out, plain(e, reveal))
		}
		return out
	case hydrate.KindObject:
		out := make(object, 0, v.Len())
		for _, k := range v.Keys() {
			e, _ := v.Get(k)
			out = append(out, entry{k, plain(e, reveal)})
		}
		return out
	case hydrate.KindRecord:
		rec, _ := v.Record()
		out := make(object, 0, rec.Len())
		rec.Each(func(name string, fv hydrate.Value) {
			val := plain(fv, reveal)
			if s, ok := val.(string); ok && !reveal && data.Secret(rec.Shape().Name, name) {
				val = data.Mask(s)
			}
			out = append(out, entry{name, val})
		})
		return out
	}
	return nil
}

func render(w io.Writer, v hydrate.Value, format string, reveal bool) error {
	switch format {
	case formatJSON:
		return renderJSON(w, v, reveal)
	case formatYAML:
		return renderYAML(w, v, reveal)
	case formatTable:
		return renderTable(w, v, reveal)
	}
	return fmt.Errorf("unknown format %q (json, yaml, table)", format)
}

func renderJSON(w io.Writer, v hydrate.Value, reveal bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(plain(v, reveal))
}

func renderYAML(w io.Writer, v hydrate.Value, reveal bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlNode(plain(v, reveal))); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}

func yamlNode(x any) *yaml.Node {
	switch x := x.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(x)}
	case json.Number:
		tag := "!!float"
		if _, err := x.Int64(); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: x.String()}
	case object:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, e := range x {
			n.Content = append(n.Content, yamlNode(e.key), yamlNode(e.val))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, e := range x {
			n.Content = append(n.Content, yamlNode(e))
		}
		return n
	}
	n := &yaml.Node{}
	if err := n.Encode(x); err != nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fmt.Sprint(x)}
	}
	return n
}

// renderTable prints records one per row. Values that hold no records fall
// back to JSON.
func renderTable(w io.Writer, v hydrate.Value, reveal bool) error {
	var t *table.Table

	switch v.Kind() {
	case hydrate.KindRecord:
		rec, _ := v.Record()
		t = newTable("Field", "Value")
		for _, f := range rec.Shape().Fields {
			if rec.Has(f.Name) {
				t.Row(f.Name, cell(rec, f.Name, reveal))
			}
		}
	case hydrate.KindSequence:
		shape := firstShape(v.Elems()...)
		if shape == nil {
			break
		}
		t = newTable(append([]string{"#"}, fieldNames(shape)...)...)
		for i, e := range v.Elems() {
			t.Row(recordRow(strconv.Itoa(i+1), e, shape, reveal)...)
		}
	case hydrate.KindObject:
		elems := make([]hydrate.Value, 0, v.Len())
		for _, k := range v.Keys() {
			e, _ := v.Get(k)
			elems = append(elems, e)
		}
		shape := firstShape(elems...)
		if shape == nil {
			break
		}
		t = newTable(append([]string{"Key"}, fieldNames(shape)...)...)
		for i, k := range v.Keys() {
			t.Row(recordRow(k, elems[i], shape, reveal)...)
		}
	}

	if t == nil {
		return renderJSON(w, v, reveal)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func newTable(headers ...string) *table.Table {
	var (
		purple = lipgloss.Color("99")

		headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...)
}

func firstShape(elems ...hydrate.Value) *hydrate.Shape {
	for _, e := range elems {
		if rec, ok := e.Record(); ok {
			return rec.Shape()
		}
	}
	return nil
}

func fieldNames(s *hydrate.Shape) []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func recordRow(label string, v hydrate.Value, s *hydrate.Shape, reveal bool) []string {
	row := make([]string, 1, len(s.Fields)+1)
	row[0] = label
	rec, ok := v.Record()
	for _, f := range s.Fields {
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, cell(rec, f.Name, reveal))
	}
	return row
}

func cell(rec *hydrate.Record, field string, reveal bool) string {
	v, ok := rec.Get(field)
	if !ok {
		return ""
	}
	if s, ok := v.Str(); ok {
		if !reveal && data.Secret(rec.Shape().Name, field) {
			s = data.Mask(s)
		}
		return truncateString(s, cellWidth)
	}
	b, err := marshal(plain(v, reveal))
	if err != nil {
		return ""
	}
	return truncateString(string(b), cellWidth)
}
