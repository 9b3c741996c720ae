// Package value implements the six-variant JSON value model that the
// TOON encoder and decoder share: null, bool, number, string, object
// (insertion-ordered), and array.
package value

import "math"

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

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
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the JSON data model. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	obj  *Object
	arr  []Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64, normalizing negative zero to positive zero per
// the invariant that TOON numbers never carry a sign on zero.
func Number(n float64) Value {
	if n == 0 {
		n = 0
	}
	return Value{kind: KindNumber, n: n}
}

// String wraps a UTF-8 string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a finite ordered sequence of values. The slice is not copied;
// callers must not mutate it after passing ownership in.
func Array(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// FromObject wraps an *Object as an object-kind Value.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsArray() bool  { return v.kind == KindArray }

// IsPrimitive reports whether v is null, bool, number, or string — the set
// of kinds eligible for an inline array cell or row cell.
func (v Value) IsPrimitive() bool {
	switch v.kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// BoolValue, NumberValue, StrValue, ObjectValue, ArrayValue are unchecked accessors; callers must
// guard with the matching Is* predicate first.
func (v Value) BoolValue() bool     { return v.b }
func (v Value) NumberValue() float64 { return v.n }
func (v Value) StrValue() string    { return v.s }
func (v Value) ObjectValue() *Object { return v.obj }
func (v Value) ArrayValue() []Value { return v.arr }

// Equal reports deep structural equality, treating NaN as unequal to
// itself like the JSON model it represents (finite numbers only appear
// in well-formed TOON input).
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		if math.IsNaN(v.n) || math.IsNaN(other.n) {
			return false
		}
		return v.n == other.n
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(other.obj)
	default:
		return false
	}
}

// Object is an insertion-ordered mapping from unique string keys to Values.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: map[string]Value{}}
}

// Set inserts or overwrites the value for key, preserving the key's
// original insertion position on overwrite.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice must not
// be mutated by the caller.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

func (o *Object) equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, k := range o.keys {
		ov, ok := other.Get(k)
		if !ok {
			return false
		}
		v, _ := o.Get(k)
		if !v.Equal(ov) {
			return false
		}
	}
	return true
}
