package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
)

// ParseJSON decodes a single JSON document into a Value.
// Mapping entries keep their source order and duplicate keys are retained.
// Trailing data after the top-level value is an error.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := DecodeJSON(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("empty JSON document")
		}
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// DecodeJSON reads the next JSON value from dec. It switches dec to
// UseNumber mode so numbers are parsed exactly once, as float64.
// io.EOF is returned unchanged when the stream has no more values.
func DecodeJSON(dec *json.Decoder) (Value, error) {
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s: %w", t.String(), err)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeSequence(dec)
		case '{':
			return decodeMapping(dec)
		}
	}
	return Value{}, fmt.Errorf("unexpected JSON token %v at offset %d", tok, dec.InputOffset())
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	seq := []Value{}
	for dec.More() {
		tok, err := nextToken(dec)
		if err != nil {
			return Value{}, err
		}
		elem, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, err
		}
		seq = append(seq, elem)
	}
	// closing ']'
	if _, err := nextToken(dec); err != nil {
		return Value{}, err
	}
	return Value{kind: KindSequence, seq: seq}, nil
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	entries := []Entry{}
	for dec.More() {
		keyTok, err := nextToken(dec)
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", keyTok)
		}
		tok, err := nextToken(dec)
		if err != nil {
			return Value{}, err
		}
		val, err := decodeToken(dec, tok)
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: val})
	}
	// closing '}'
	if _, err := nextToken(dec); err != nil {
		return Value{}, err
	}
	return Value{kind: KindMapping, entries: entries}, nil
}

// nextToken reads a token that must exist; running out of input inside a
// composite value is reported as io.ErrUnexpectedEOF.
func nextToken(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

// MarshalJSON encodes v as JSON, keeping mapping entries in order.
// Non-finite numbers cannot be represented and produce an error.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendJSON(nil, v, false)
}

// UnmarshalJSON decodes data with the order-preserving decoder.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func appendJSON(buf []byte, v Value, lenient bool) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(buf, "null"...), nil
	case KindBool:
		if v.b {
			return append(buf, "true"...), nil
		}
		return append(buf, "false"...), nil
	case KindNumber:
		switch {
		case math.IsNaN(v.num):
			if !lenient {
				return nil, fmt.Errorf("value: cannot encode NaN as JSON")
			}
			return append(buf, "NaN"...), nil
		case math.IsInf(v.num, 1):
			if !lenient {
				return nil, fmt.Errorf("value: cannot encode +Inf as JSON")
			}
			return append(buf, "Infinity"...), nil
		case math.IsInf(v.num, -1):
			if !lenient {
				return nil, fmt.Errorf("value: cannot encode -Inf as JSON")
			}
			return append(buf, "-Infinity"...), nil
		}
		b, err := json.Marshal(v.num)
		if err != nil {
			return nil, err
		}
		return append(buf, b...), nil
	case KindString:
		return appendString(buf, v.str)
	case KindSequence:
		buf = append(buf, '[')
		for i, e := range v.seq {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendJSON(buf, e, lenient); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case KindMapping:
		buf = append(buf, '{')
		for i, e := range v.entries {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendString(buf, e.Key); err != nil {
				return nil, err
			}
			buf = append(buf, ':')
			if buf, err = appendJSON(buf, e.Value, lenient); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	}
	return nil, fmt.Errorf("value: unknown kind %v", v.kind)
}

func appendString(buf []byte, s string) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(buf, b...), nil
}
