// Package value provides the dynamic value model used for recorded case inputs
// and expected outputs.
//
// A Value is a closed variant over six kinds: null, bool, number, string,
// sequence and mapping. Mappings keep their entries in source order, and
// duplicate keys read from a document are retained as separate entries.
package value

import (
	"fmt"
	"math"
)

// Kind identifies the dynamic kind of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// AllKinds lists every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{KindNull, KindBool, KindNumber, KindString, KindSequence, KindMapping}
}

// Entry is a single key/value pair of a mapping.
type Entry struct {
	Key   string
	Value Value
}

// Value is an immutable dynamic value. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	num     float64
	str     string
	seq     []Value
	entries []Entry
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Sequence returns an ordered sequence of the given elements.
func Sequence(elems ...Value) Value {
	seq := make([]Value, len(elems))
	copy(seq, elems)
	return Value{kind: KindSequence, seq: seq}
}

// Mapping returns a mapping with the given entries in order.
// Duplicate keys are kept; see Get for lookup semantics.
func Mapping(entries ...Entry) Value {
	es := make([]Entry, len(entries))
	copy(es, entries)
	return Value{kind: KindMapping, entries: es}
}

// E is shorthand for constructing an Entry.
func E(key string, v Value) Entry {
	return Entry{Key: key, Value: v}
}

// Kind returns the dynamic kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload and whether v is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the numeric payload and whether v is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string payload and whether v is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// Len returns the number of elements of a sequence or the number of entries
// of a mapping (duplicates included). It returns 0 for other kinds.
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.entries)
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence.
// It panics if v is not a sequence or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindSequence {
		panic("value: Index called on " + v.kind.String())
	}
	return v.seq[i]
}

// Elements returns a copy of the elements of a sequence, or nil for other kinds.
func (v Value) Elements() []Value {
	if v.kind != KindSequence {
		return nil
	}
	out := make([]Value, len(v.seq))
	copy(out, v.seq)
	return out
}

// Entries returns a copy of the entries of a mapping in order, or nil for other kinds.
func (v Value) Entries() []Entry {
	if v.kind != KindMapping {
		return nil
	}
	out := make([]Entry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Get returns the value stored under key in a mapping. When the key occurs
// more than once the last occurrence wins, as with JSON.parse.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	for i := len(v.entries) - 1; i >= 0; i-- {
		if v.entries[i].Key == key {
			return v.entries[i].Value, true
		}
	}
	return Value{}, false
}

// Has reports whether a mapping contains key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Size returns the number of nodes in v, counting v itself.
func (v Value) Size() int {
	n := 1
	switch v.kind {
	case KindSequence:
		for _, e := range v.seq {
			n += e.Size()
		}
	case KindMapping:
		for _, e := range v.entries {
			n += e.Value.Size()
		}
	}
	return n
}

// String renders v as compact JSON. Non-finite numbers are rendered as
// NaN, Infinity and -Infinity.
func (v Value) String() string {
	buf, err := appendJSON(nil, v, true)
	if err != nil {
		return fmt.Sprintf("%%!(value: %v)", err)
	}
	return string(buf)
}

// IsFinite reports whether v contains only finite numbers.
func (v Value) IsFinite() bool {
	switch v.kind {
	case KindNumber:
		return !math.IsNaN(v.num) && !math.IsInf(v.num, 0)
	case KindSequence:
		for _, e := range v.seq {
			if !e.IsFinite() {
				return false
			}
		}
	case KindMapping:
		for _, e := range v.entries {
			if !e.Value.IsFinite() {
				return false
			}
		}
	}
	return true
}
