package canonjson

import (
	"math/big"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindInvalid is the zero Kind. The encoder rejects it.
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindBytes:   "bytes",
	KindArray:   "array",
	KindObject:  "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a JSON-shaped document: null, bool, integer, float, string,
// binary blob, array or object. Integers and floats are distinct kinds.
//
// Values are immutable once built. Constructors copy the slices and maps
// they are given.
type Value struct {
	kind Kind
	b    bool
	i    *big.Int
	f    float64
	s    string
	bin  []byte
	arr  []Value
	obj  map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(n int64) Value { return Value{kind: KindInt, i: big.NewInt(n)} }

// Uint returns an integer Value.
func Uint(n uint64) Value { return Value{kind: KindInt, i: new(big.Int).SetUint64(n)} }

// BigInt returns an integer Value of arbitrary size. A nil n is treated as 0.
func BigInt(n *big.Int) Value {
	if n == nil {
		return Value{kind: KindInt, i: new(big.Int)}
	}
	return Value{kind: KindInt, i: new(big.Int).Set(n)}
}

// Float returns a float Value. NaN and infinities are accepted here and
// rejected by the encoder.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes returns a binary Value; it canonicalizes to a padded base64 string.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, bin: append([]byte{}, b...)}
}

// Array returns an ordered sequence Value.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value{}, items...)}
}

// Object returns an object Value built from m.
func Object(m map[string]Value) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds one of the model's variants.
func (v Value) IsValid() bool { return v.kind > KindInvalid && v.kind <= KindObject }

func (v Value) BoolValue() (bool, bool) { return v.b, v.kind == KindBool }

// Int64 returns the integer held by v when it fits in an int64.
func (v Value) Int64() (int64, bool) {
	if v.kind != KindInt || v.i == nil || !v.i.IsInt64() {
		return 0, false
	}
	return v.i.Int64(), true
}

// BigInt returns a copy of the integer held by v.
func (v Value) BigInt() (*big.Int, bool) {
	if v.kind != KindInt || v.i == nil {
		return nil, false
	}
	return new(big.Int).Set(v.i), true
}

func (v Value) Float64() (float64, bool) { return v.f, v.kind == KindFloat }

// Str returns the string held by v.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Blob returns a copy of the binary data held by v.
func (v Value) Blob() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return append([]byte{}, v.bin...), true
}

// Len returns the number of array items or object members, or 0.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Index returns the i-th array item.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}, false
	}
	return v.arr[i], true
}

// Items returns a copy of the array items.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value{}, v.arr...)
}

// Get returns the object member named key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Has reports whether v is an object with a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns the object's member names in canonical order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
	return keys
}

// Without returns a copy of the object v with key removed. Non-objects are
// returned unchanged.
func (v Value) Without(key string) Value {
	if v.kind != KindObject {
		return v
	}
	obj := make(map[string]Value, len(v.obj))
	for k, m := range v.obj {
		if k != key {
			obj[k] = m
		}
	}
	return Value{kind: KindObject, obj: obj}
}

// With returns a copy of the object v with key set to m. A non-object v is
// treated as an empty object.
func (v Value) With(key string, m Value) Value {
	obj := make(map[string]Value, len(v.obj)+1)
	if v.kind == KindObject {
		for k, x := range v.obj {
			obj[k] = x
		}
	}
	obj[key] = m
	return Value{kind: KindObject, obj: obj}
}

// Equal reports whether a and b are structurally equal. Object member order
// never matters; an integer never equals a float.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInvalid, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i.Cmp(b.i) == 0
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindBytes:
		return string(a.bin) == string(b.bin)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for k, av := range a.obj {
			bv, ok := b.obj[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
