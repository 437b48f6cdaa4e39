package hydrate

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// FieldKind says how a declared field is hydrated.
type FieldKind uint8

const (
	FieldPrimitive FieldKind = iota // copied verbatim
	FieldRecord                     // one nested record
	FieldSequence                   // ordered sequence of nested records
	FieldMapping                    // string-keyed mapping of nested records
)

func (k FieldKind) String() string {
	switch k {
	case FieldPrimitive:
		return "primitive"
	case FieldRecord:
		return "record"
	case FieldSequence:
		return "sequence"
	case FieldMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Field is one declared field of a Shape. Shape names the nested shape for
// every kind except FieldPrimitive.
type Field struct {
	Name  string
	Kind  FieldKind
	Shape string
}

func (f Field) String() string {
	switch f.Kind {
	case FieldRecord:
		return f.Shape
	case FieldSequence:
		return "[]" + f.Shape
	case FieldMapping:
		return "map[string]" + f.Shape
	}
	return "primitive"
}

func Prim(name string) Field { return Field{Name: name, Kind: FieldPrimitive} }

func Rec(name, shape string) Field { return Field{Name: name, Kind: FieldRecord, Shape: shape} }

func Seq(name, shape string) Field { return Field{Name: name, Kind: FieldSequence, Shape: shape} }

func Map(name, shape string) Field { return Field{Name: name, Kind: FieldMapping, Shape: shape} }

// Shape is a named, fixed set of fields describing one record.
type Shape struct {
	Name   string
	Fields []Field
}

func NewShape(name string, fields ...Field) *Shape {
	return &Shape{Name: name, Fields: fields}
}

// Field returns the declared field with the given wire name.
func (s *Shape) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var (
	jsonUnmarshaler = reflect.TypeFor[json.Unmarshaler]()
	textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Describe derives a Shape from struct T. Wire names come from json tags,
// falling back to the Go field name. Nested structs, slices of structs and
// string-keyed maps of structs become nested fields referring to the shape
// named after the struct type.
func Describe[T any]() *Shape {
	return describe(reflect.TypeFor[T]())
}

func describe(t reflect.Type) *Shape {
	t = deref(t)
	s := &Shape{Name: t.Name()}
	if t.Kind() != reflect.Struct {
		return s
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, ok := wireName(sf)
		if !ok {
			continue
		}
		kind, ref := fieldKind(sf.Type)
		s.Fields = append(s.Fields, Field{Name: name, Kind: kind, Shape: ref})
	}
	return s
}

func wireName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, true
}

func fieldKind(t reflect.Type) (FieldKind, string) {
	if isRecordType(t) {
		return FieldRecord, deref(t).Name()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		if isRecordType(t.Elem()) {
			return FieldSequence, deref(t.Elem()).Name()
		}
	case reflect.Map:
		if t.Key().Kind() == reflect.String && isRecordType(t.Elem()) {
			return FieldMapping, deref(t.Elem()).Name()
		}
	}
	return FieldPrimitive, ""
}

// isRecordType reports whether t is a named struct that does not decode
// itself (time.Time and friends stay primitive).
func isRecordType(t reflect.Type) bool {
	if reflect.PointerTo(deref(t)).Implements(jsonUnmarshaler) || reflect.PointerTo(deref(t)).Implements(textUnmarshaler) {
		return false
	}
	t = deref(t)
	return t.Kind() == reflect.Struct && t.Name() != ""
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Registry is the set of known shapes. It is read-only once built and safe
// for concurrent use.
type Registry struct {
	shapes map[string]*Shape
	order  []string
}

// NewRegistry validates and indexes shapes: names must be non-empty and
// unique, and every nested field must refer to a registered shape.
func NewRegistry(shapes ...*Shape) (*Registry, error) {
	r := &Registry{shapes: make(map[string]*Shape, len(shapes))}
	for _, s := range shapes {
		if s == nil || s.Name == "" {
			return nil, errors.New("shape without a name")
		}
		if _, dup := r.shapes[s.Name]; dup {
			return nil, fmt.Errorf("shape %s registered twice", s.Name)
		}
		r.shapes[s.Name] = s
		r.order = append(r.order, s.Name)
	}

	for _, s := range shapes {
		for _, f := range s.Fields {
			if f.Kind == FieldPrimitive {
				continue
			}
			if _, ok := r.shapes[f.Shape]; !ok {
				return nil, fmt.Errorf("shape %s field %s: %w: %q", s.Name, f.Name, ErrUnknownShape, f.Shape)
			}
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level declarations.
func MustRegistry(shapes ...*Shape) *Registry {
	r, err := NewRegistry(shapes...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Lookup(name string) (*Shape, bool) {
	s, ok := r.shapes[name]
	return s, ok
}

// Shapes returns the registered shapes in registration order.
func (r *Registry) Shapes() []*Shape {
	out := make([]*Shape, len(r.order))
	for i, name := range r.order {
		out[i] = r.shapes[name]
	}
	return out
}
