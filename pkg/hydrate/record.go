package hydrate

import "bytes"

// Record is a hydrated instance of a Shape. Only declared fields that were
// present in the source are set.
type Record struct {
	shape  *Shape
	fields map[string]Value
}

func (r *Record) Shape() *Shape { return r.shape }

func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

func (r *Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

func (r *Record) Len() int { return len(r.fields) }

// Each calls fn for every present field in declared order.
func (r *Record) Each(fn func(name string, v Value)) {
	for _, f := range r.shape.Fields {
		if v, ok := r.fields[f.Name]; ok {
			fn(f.Name, v)
		}
	}
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var (
		buf bytes.Buffer
		err error
		n   int
	)
	buf.WriteByte('{')
	r.Each(func(name string, v Value) {
		if err != nil {
			return
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		err = writeEntry(&buf, name, v)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) asObject() Value {
	o := newObject(len(r.fields))
	r.Each(func(name string, v Value) {
		o.set(name, v)
	})
	return o
}
