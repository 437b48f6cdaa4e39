package hydrate

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// Bind copies v into the Go value dst points to, matching struct fields by
// wire name. Absent and null values leave the destination at its zero value
// and primitives of the wrong type are skipped, so binding never fails on
// payload content.
func Bind(v Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	bindValue(v, rv.Elem())
	return nil
}

// Decode hydrates in against the shape named after T and binds the result.
func Decode[T any](r *Registry, in Value, opts ...Option) (T, error) {
	var out T
	v, err := r.Hydrate(in, shapeName[T](), opts...)
	if err != nil {
		return out, err
	}
	err = Bind(v, &out)
	return out, err
}

// DecodeSlice is Decode for a sequence of T. An absent input yields nil.
func DecodeSlice[T any](r *Registry, in Value) ([]T, error) {
	var out []T
	v, err := r.Hydrate(in, shapeName[T]())
	if err != nil {
		return nil, err
	}
	err = Bind(v, &out)
	return out, err
}

// DecodeMap is Decode in map mode.
func DecodeMap[T any](r *Registry, in Value) (map[string]T, error) {
	var out map[string]T
	v, err := r.Hydrate(in, shapeName[T](), AsMap())
	if err != nil {
		return nil, err
	}
	err = Bind(v, &out)
	return out, err
}

func shapeName[T any]() string {
	return deref(reflect.TypeFor[T]()).Name()
}

// bindValue reports whether anything was assigned to rv.
func bindValue(v Value, rv reflect.Value) bool {
	if v.IsAbsent() || !rv.CanSet() {
		return false
	}

	switch rv.Kind() {
	case reflect.Pointer:
		tmp := reflect.New(rv.Type().Elem())
		if !bindValue(v, tmp.Elem()) {
			return false
		}
		rv.Set(tmp)
		return true
	case reflect.Interface:
		if rv.NumMethod() > 0 {
			return false
		}
		x := v.Interface()
		if x == nil {
			return false
		}
		rv.Set(reflect.ValueOf(x))
		return true
	}

	switch v.kind {
	case KindPrimitive:
		return setPrimitive(v.prim, rv)
	case KindRecord:
		if rv.Kind() == reflect.Struct {
			bindStruct(v.rec.Get, rv)
			return true
		}
	case KindObject:
		switch rv.Kind() {
		case reflect.Struct:
			bindStruct(v.Get, rv)
			return true
		case reflect.Map:
			return bindMap(v, rv)
		}
	case KindSequence:
		return bindSequence(v, rv)
	}
	return false
}

func bindStruct(get func(string) (Value, bool), rv reflect.Value) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, ok := wireName(sf)
		if !ok {
			continue
		}
		if fv, ok := get(name); ok {
			bindValue(fv, rv.Field(i))
		}
	}
}

func bindMap(v Value, rv reflect.Value) bool {
	t := rv.Type()
	if t.Key().Kind() != reflect.String {
		return false
	}
	m := reflect.MakeMapWithSize(t, len(v.keys))
	for _, k := range v.keys {
		elem := reflect.New(t.Elem()).Elem()
		bindValue(v.fields[k], elem)
		m.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), elem)
	}
	rv.Set(m)
	return true
}

func bindSequence(v Value, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(rv.Type(), len(v.elems), len(v.elems))
		for i, e := range v.elems {
			bindValue(e, s.Index(i))
		}
		rv.Set(s)
		return true
	case reflect.Array:
		for i := 0; i < rv.Len() && i < len(v.elems); i++ {
			bindValue(v.elems[i], rv.Index(i))
		}
		return true
	}
	return false
}

// setPrimitive assigns p when it fits the destination kind and leaves rv
// untouched otherwise.
func setPrimitive(p any, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.String:
		s, ok := p.(string)
		if ok {
			rv.SetString(s)
		}
		return ok
	case reflect.Bool:
		b, ok := p.(bool)
		if ok {
			rv.SetBool(b)
		}
		return ok
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt(p)
		if !ok || rv.OverflowInt(n) {
			return false
		}
		rv.SetInt(n)
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := toInt(p)
		if !ok || n < 0 || rv.OverflowUint(uint64(n)) {
			return false
		}
		rv.SetUint(uint64(n))
		return true
	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(p)
		if !ok || rv.OverflowFloat(f) {
			return false
		}
		rv.SetFloat(f)
		return true
	}
	pv := reflect.ValueOf(p)
	if !pv.Type().AssignableTo(rv.Type()) {
		return false
	}
	rv.Set(pv)
	return true
}

func toInt(p any) (int64, bool) {
	switch n := p.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	}
	pv := reflect.ValueOf(p)
	switch pv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return pv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := pv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat(p any) (float64, bool) {
	switch n := p.(type) {
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	if i, ok := toInt(p); ok {
		return float64(i), true
	}
	return 0, false
}
