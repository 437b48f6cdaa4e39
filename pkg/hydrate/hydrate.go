// Package hydrate turns loosely-typed payload values into typed records.
//
// A Registry holds the record shapes. Hydrate walks the input structurally:
// sequences are hydrated element-wise, objects become records (or, in map
// mode, objects of records), and nulls, absent values and primitives pass
// through unchanged. Primitive fields are never coerced or validated, and
// undeclared keys are dropped. The only input error is a *ParseError for a
// top-level string that is not valid JSON.
package hydrate

import "fmt"

type options struct {
	asMap bool
}

// Option tunes a single Hydrate call.
type Option func(*options)

// AsMap treats a keyed input as a lookup table: every entry is hydrated on
// its own and keys are kept.
func AsMap() Option {
	return func(o *options) { o.asMap = true }
}

// Hydrate converts in into instances of the named shape.
func (r *Registry) Hydrate(in Value, shape string, opts ...Option) (Value, error) {
	s, ok := r.shapes[shape]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if str, ok := in.Str(); ok {
		if str == "" {
			return in, nil
		}
		parsed, err := FromJSON([]byte(str))
		if err != nil {
			return Value{}, err
		}
		in = parsed
	}
	return r.convert(in, s, o.asMap), nil
}

// HydrateJSON parses data and hydrates it.
func (r *Registry) HydrateJSON(data []byte, shape string, opts ...Option) (Value, error) {
	if _, ok := r.shapes[shape]; !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownShape, shape)
	}
	in, err := FromJSON(data)
	if err != nil {
		return Value{}, err
	}
	return r.Hydrate(in, shape, opts...)
}

func (r *Registry) convert(v Value, s *Shape, asMap bool) Value {
	switch v.kind {
	case KindSequence:
		out := make([]Value, len(v.elems))
		for i, e := range v.elems {
			out[i] = r.convert(e, s, false)
		}
		return Value{kind: KindSequence, elems: out}
	case KindRecord:
		return r.convert(v.rec.asObject(), s, asMap)
	case KindObject:
		if asMap {
			out := newObject(len(v.keys))
			for _, k := range v.keys {
				out.set(k, r.convert(v.fields[k], s, false))
			}
			return out
		}
		return recordValue(r.build(v, s))
	}
	return v
}

func (r *Registry) build(obj Value, s *Shape) *Record {
	rec := &Record{shape: s, fields: make(map[string]Value, len(s.Fields))}
	for _, f := range s.Fields {
		src, ok := obj.fields[f.Name]
		if !ok {
			continue
		}
		switch f.Kind {
		case FieldPrimitive:
			rec.fields[f.Name] = src
		case FieldMapping:
			rec.fields[f.Name] = r.convert(src, r.shapes[f.Shape], true)
		default:
			rec.fields[f.Name] = r.convert(src, r.shapes[f.Shape], false)
		}
	}
	return rec
}
