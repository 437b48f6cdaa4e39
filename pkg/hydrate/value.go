package hydrate

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindNull
	KindPrimitive
	KindObject
	KindSequence
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindSequence:
		return "sequence"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Value is a loosely-typed payload value. The zero Value is absent.
type Value struct {
	kind   Kind
	prim   any
	keys   []string
	fields map[string]Value
	elems  []Value
	rec    *Record
}

func Absent() Value { return Value{} }

func Null() Value { return Value{kind: KindNull} }

// Primitive wraps a scalar (string, bool, json.Number or a Go number).
func Primitive(p any) Value {
	if p == nil {
		return Null()
	}
	return Value{kind: KindPrimitive, prim: p}
}

// SequenceOf builds an ordered sequence. A call without elements yields an
// empty sequence, which is distinct from an absent value.
func SequenceOf(elems ...Value) Value {
	out := make([]Value, len(elems))
	copy(out, elems)
	return Value{kind: KindSequence, elems: out}
}

// ObjectOf builds a keyed object with keys in sorted order.
func ObjectOf(m map[string]Value) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := newObject(len(keys))
	for _, k := range keys {
		o.set(k, m[k])
	}
	return o
}

func newObject(size int) Value {
	return Value{kind: KindObject, keys: make([]string, 0, size), fields: make(map[string]Value, size)}
}

// set keeps the first position of a duplicated key and the last value.
func (v *Value) set(key string, val Value) {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

func recordValue(r *Record) Value { return Value{kind: KindRecord, rec: r} }

func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v carries no data: absent or null.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent || v.kind == KindNull }

func (v Value) Primitive() (any, bool) {
	if v.kind != KindPrimitive {
		return nil, false
	}
	return v.prim, true
}

// Str returns the string held by a primitive value.
func (v Value) Str() (string, bool) {
	s, ok := v.prim.(string)
	return s, ok && v.kind == KindPrimitive
}

// Number returns the json.Number held by a primitive value decoded from JSON.
func (v Value) Number() (json.Number, bool) {
	n, ok := v.prim.(json.Number)
	return n, ok && v.kind == KindPrimitive
}

func (v Value) Record() (*Record, bool) {
	return v.rec, v.kind == KindRecord && v.rec != nil
}

func (v Value) Elems() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.elems
}

// Keys returns object keys in source order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.keys
}

// Get looks up an object entry or a record field.
func (v Value) Get(key string) (Value, bool) {
	switch v.kind {
	case KindObject:
		val, ok := v.fields[key]
		return val, ok
	case KindRecord:
		return v.rec.Get(key)
	}
	return Value{}, false
}

// Len is the number of elements, entries or present fields.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.elems)
	case KindObject:
		return len(v.keys)
	case KindRecord:
		return v.rec.Len()
	}
	return 0
}

// Interface converts v into plain Go values: nil, scalars, []any and
// map[string]any. Records become maps of their present fields.
func (v Value) Interface() any {
	switch v.kind {
	case KindPrimitive:
		return v.prim
	case KindSequence:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].Interface()
		}
		return out
	case KindRecord:
		out := make(map[string]any, v.rec.Len())
		v.rec.Each(func(name string, val Value) {
			out[name] = val.Interface()
		})
		return out
	}
	return nil
}

// MarshalJSON encodes v keeping object key order and record field order.
// Absent values encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindPrimitive:
		return json.Marshal(v.prim)
	case KindSequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := e.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeEntry(&buf, k, v.fields[k]); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case KindRecord:
		return v.rec.MarshalJSON()
	}
	return []byte("null"), nil
}

func writeEntry(buf *bytes.Buffer, key string, val Value) error {
	kb, err := json.Marshal(key)
	if err != nil {
		return err
	}
	vb, err := val.MarshalJSON()
	if err != nil {
		return err
	}
	buf.Write(kb)
	buf.WriteByte(':')
	buf.Write(vb)
	return nil
}

// FromAny builds a Value from plain Go data. Maps with string keys become
// objects and slices become sequences; everything else is a primitive.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Record:
		if t == nil {
			return Null()
		}
		return recordValue(t)
	case json.RawMessage:
		if v, err := FromJSON(t); err == nil {
			return v
		}
		return Primitive(string(t))
	case string, bool, json.Number, float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Primitive(t)
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			m[k] = FromAny(e)
		}
		return ObjectOf(m)
	case []any:
		out := make([]Value, len(t))
		for i, e := range t {
			out[i] = FromAny(e)
		}
		return Value{kind: KindSequence, elems: out}
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return Primitive(x)
		}
		fallthrough
	case reflect.Array:
		out := make([]Value, rv.Len())
		for i := range out {
			out[i] = FromAny(rv.Index(i).Interface())
		}
		return Value{kind: KindSequence, elems: out}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Primitive(x)
		}
		if rv.IsNil() {
			return Null()
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = FromAny(iter.Value().Interface())
		}
		return ObjectOf(m)
	case reflect.Struct:
		b, err := json.Marshal(x)
		if err != nil {
			return Primitive(x)
		}
		v, err := FromJSON(b)
		if err != nil {
			return Primitive(x)
		}
		return v
	}
	return Primitive(x)
}
