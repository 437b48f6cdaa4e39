package hydrate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxDepth matches the nesting limit of encoding/json.Unmarshal.
const maxDepth = 10000

var errMaxDepth = errors.New("exceeded max depth")

// FromJSON decodes data into a Value. Numbers stay json.Number and object
// keys keep their source order. Any syntax error, an empty document,
// trailing data or nesting deeper than maxDepth yields a *ParseError.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, &ParseError{Offset: dec.InputOffset(), Err: err}
	}

	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected trailing data %v", tok)
		}
		return Value{}, &ParseError{Offset: dec.InputOffset(), Err: err}
	}
	return v, nil
}

// decodeValue reads one value nested inside depth containers.
func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case json.Delim:
		if depth >= maxDepth {
			return Value{}, errMaxDepth
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeSequence(dec, depth+1)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	default:
		return Primitive(t), nil
	}
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	obj := newObject(8)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key %v is not a string", tok)
		}
		val, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		obj.set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeSequence(dec *json.Decoder, depth int) (Value, error) {
	elems := make([]Value, 0)
	for dec.More() {
		val, err := decodeValue(dec, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: KindSequence, elems: elems}, nil
}
