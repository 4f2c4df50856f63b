package canonjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

// Parse decodes one JSON document into a Value.
//
// Number literals containing '.', 'e' or 'E' become floats; all others become
// integers of arbitrary size. Duplicate object keys and trailing data are
// rejected. Base64 strings stay strings: the encoder cannot tell them apart
// from text, and both canonicalize identically.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, sdkerr.New(sdkerr.KindParse, sdkerr.RuleEmptyDocument, "empty JSON document")
	}
	if !utf8.Valid(data) {
		return Value{}, sdkerr.New(sdkerr.KindParse, sdkerr.RuleSyntax, "JSON document must be valid UTF-8")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseValue(dec)
	if err != nil {
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, sdkerr.New(sdkerr.KindParse, sdkerr.RuleTrailingData, "unexpected data after JSON document")
	}
	return v, nil
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

func parseValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, syntaxError(err)
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return parseNumber(t)
	case json.Delim:
		switch t {
		case '[':
			return parseArray(dec)
		case '{':
			return parseObject(dec)
		}
	}
	return Value{}, sdkerr.Newf(sdkerr.KindParse, sdkerr.RuleSyntax, "unexpected token %v", tok)
}

func parseArray(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		item, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, syntaxError(err)
	}
	return Value{kind: KindArray, arr: items}, nil
}

func parseObject(dec *json.Decoder) (Value, error) {
	obj := make(map[string]Value)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, syntaxError(err)
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, sdkerr.Newf(sdkerr.KindParse, sdkerr.RuleSyntax, "object key must be a string, got %v", tok)
		}
		if _, dup := obj[key]; dup {
			return Value{}, sdkerr.Newf(sdkerr.KindParse, sdkerr.RuleDuplicateKey, "duplicate object key %q", key)
		}
		member, err := parseValue(dec)
		if err != nil {
			return Value{}, err
		}
		obj[key] = member
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, syntaxError(err)
	}
	return Value{kind: KindObject, obj: obj}, nil
}

func parseNumber(n json.Number) (Value, error) {
	s := n.String()
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, sdkerr.Wrap(sdkerr.KindParse, sdkerr.RuleBadNumber, "invalid float literal "+strconv.Quote(s), err)
		}
		return Float(f), nil
	}
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Value{}, sdkerr.New(sdkerr.KindParse, sdkerr.RuleBadNumber, "invalid integer literal "+strconv.Quote(s))
	}
	return Value{kind: KindInt, i: i}, nil
}

func syntaxError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return sdkerr.Wrap(sdkerr.KindParse, sdkerr.RuleSyntax, "malformed JSON", err)
}
