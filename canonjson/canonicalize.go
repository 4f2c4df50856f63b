// Package canonjson renders JSON-shaped value trees as canonical JSON text.
//
// Canonical text has no insignificant whitespace, object members sorted by the
// UTF-16 code units of their names, integers without a decimal point, floats
// that always carry one (or an exponent), and binary data as padded base64.
// Two structurally equal Values always produce identical bytes, which is what
// lets independent SDKs agree on transaction hashes.
package canonjson

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// Canonicalize is the canonicalization choke point. Every hash in this module
// is computed over its output.
func Canonicalize(v Value) (string, error) {
	b, err := CanonicalBytes(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CanonicalBytes returns the UTF-8 bytes of Canonicalize(v).
func CanonicalBytes(v Value) ([]byte, error) {
	return appendValue(make([]byte, 0, 128), v)
}

// IsCanonical reports whether s is already in canonical form: it must parse,
// and re-encoding the parsed value must reproduce s exactly.
func IsCanonical(s string) bool {
	v, err := Parse([]byte(s))
	if err != nil {
		return false
	}
	c, err := CanonicalBytes(v)
	if err != nil {
		return false
	}
	return string(c) == s
}

// CheckCanonical is IsCanonical with a structured error explaining the
// rejection.
func CheckCanonical(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	c, err := CanonicalBytes(v)
	if err != nil {
		return err
	}
	if !bytes.Equal(c, data) {
		return sdkerr.New(sdkerr.KindParse, sdkerr.RuleNotCanonical, "document is not in canonical form")
	}
	return nil
}

func appendValue(dst []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...), nil
	case KindBool:
		if v.b {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case KindInt:
		if v.i == nil {
			return nil, sdkerr.New(sdkerr.KindEncoding, sdkerr.RuleInvalidValue, "integer value without digits")
		}
		return v.i.Append(dst, 10), nil
	case KindFloat:
		return appendFloat(dst, v.f)
	case KindString:
		return appendString(dst, v.s)
	case KindBytes:
		dst = append(dst, '"')
		dst = base64.StdEncoding.AppendEncode(dst, v.bin)
		return append(dst, '"'), nil
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendValue(dst, item); err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case KindObject:
		dst = append(dst, '{')
		for i, k := range v.Keys() {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = appendString(dst, k); err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			if dst, err = appendValue(dst, v.obj[k]); err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	default:
		return nil, sdkerr.Newf(sdkerr.KindEncoding, sdkerr.RuleInvalidValue, "cannot encode value of kind %s", v.kind)
	}
}

// appendFloat uses the ES6 number format so output matches JavaScript SDKs,
// except that integral floats keep a ".0" suffix to stay floats on re-parse.
func appendFloat(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, sdkerr.Newf(sdkerr.KindEncoding, sdkerr.RuleNonFiniteFloat, "cannot encode non-finite float %v", f)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
		return dst, nil
	}
	if !bytes.ContainsRune(dst[start:], '.') {
		dst = append(dst, ".0"...)
	}
	return dst, nil
}

const hexDigits = "0123456789abcdef"

func appendString(dst []byte, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, sdkerr.New(sdkerr.KindEncoding, sdkerr.RuleInvalidUTF8, "string is not valid UTF-8")
	}
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		dst = append(dst, s[start:i]...)
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
		start = i + 1
	}
	dst = append(dst, s[start:]...)
	return append(dst, '"'), nil
}

// keyLess orders object member names by UTF-16 code units, the order
// JavaScript's default sort produces. It differs from byte order only when a
// name contains characters above U+FFFF.
func keyLess(a, b string) bool {
	if isASCII(a) && isASCII(b) {
		return a < b
	}
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			return ua[i] < ub[i]
		}
	}
	return len(ua) < len(ub)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
