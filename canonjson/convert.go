package canonjson

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// FromGo converts a native Go value into a Value.
//
// Supported inputs are nil, bool, every signed and unsigned integer width,
// float32, float64, string, []byte, json.Number, *big.Int, Value, []Value,
// []any, []string, map[string]any, map[string]string and map[string]Value,
// nested arbitrarily. Anything else fails with a KindEncoding error naming
// the offending path, so type mistakes surface where the document is built
// instead of being stringified into a hash.
func FromGo(x any) (Value, error) {
	return fromGo(x, "$")
}

// MustFromGo is FromGo for documents known to be well-formed, such as
// literals in tests and tools. It panics on error.
func MustFromGo(x any) Value {
	v, err := FromGo(x)
	if err != nil {
		panic(err)
	}
	return v
}

func fromGo(x any, path string) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		if !t.IsValid() {
			return Value{}, unsupported(path, "invalid Value")
		}
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case []byte:
		return Bytes(t), nil
	case *big.Int:
		if t == nil {
			return Value{}, unsupported(path, "nil *big.Int")
		}
		return BigInt(t), nil
	case json.Number:
		v, err := parseNumber(t)
		if err != nil {
			return Value{}, sdkerr.Wrap(sdkerr.KindEncoding, sdkerr.RuleUnsupportedGo, "invalid json.Number at "+path, err)
		}
		return v, nil
	case []Value:
		return convertSlice(len(t), path, func(i int) any { return t[i] })
	case []any:
		return convertSlice(len(t), path, func(i int) any { return t[i] })
	case []string:
		return convertSlice(len(t), path, func(i int) any { return t[i] })
	case map[string]Value:
		obj := make(map[string]Value, len(t))
		for k, m := range t {
			v, err := fromGo(m, path+"."+k)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case map[string]any:
		obj := make(map[string]Value, len(t))
		for k, m := range t {
			v, err := fromGo(m, path+"."+k)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case map[string]string:
		obj := make(map[string]Value, len(t))
		for k, m := range t {
			obj[k] = String(m)
		}
		return Value{kind: KindObject, obj: obj}, nil
	default:
		return Value{}, unsupported(path, fmt.Sprintf("unsupported Go type %T", x))
	}
}

func convertSlice(n int, path string, at func(int) any) (Value, error) {
	items := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := fromGo(at(i), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Value{kind: KindArray, arr: items}, nil
}

func unsupported(path, msg string) error {
	return sdkerr.Newf(sdkerr.KindEncoding, sdkerr.RuleUnsupportedGo, "%s: %s", path, msg)
}

// MarshalJSON emits the canonical encoding of v.
func (v Value) MarshalJSON() ([]byte, error) {
	return CanonicalBytes(v)
}

// UnmarshalJSON parses data with Parse, keeping integer/float identity.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
