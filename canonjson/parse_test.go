package canonjson

import (
	"encoding/json"
	"testing"

	"github.com/opendlt/accumulate-go-sdk/sdkerr"
)

func TestParse_PreservesNumberKinds(t *testing.T) {
	v, err := ParseString(`{"i":42,"f":42.0,"e":1e3,"big":123456789012345678901234567890,"neg":-5}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := map[string]Kind{"i": KindInt, "f": KindFloat, "e": KindFloat, "big": KindInt, "neg": KindInt}
	for k, kind := range want {
		m, ok := v.Get(k)
		if !ok {
			t.Fatalf("missing member %q", k)
		}
		if m.Kind() != kind {
			t.Fatalf("member %q: got kind %s want %s", k, m.Kind(), kind)
		}
	}
	if n, ok := mustGet(t, v, "neg").Int64(); !ok || n != -5 {
		t.Fatalf("Int64: got %d, %v", n, ok)
	}
	if got := mustCanonical(t, v); got != `{"big":123456789012345678901234567890,"e":1000.0,"f":42.0,"i":42,"neg":-5}` {
		t.Fatalf("unexpected canonical form %s", got)
	}
}

func mustGet(t *testing.T, v Value, key string) Value {
	t.Helper()
	m, ok := v.Get(key)
	if !ok {
		t.Fatalf("missing member %q", key)
	}
	return m
}

func TestParse_Rejects(t *testing.T) {
	cases := []struct {
		name string
		in   string
		rule string
	}{
		{"empty", "", sdkerr.RuleEmptyDocument},
		{"whitespace only", "  \n", sdkerr.RuleEmptyDocument},
		{"duplicate key", `{"a":1,"a":2}`, sdkerr.RuleDuplicateKey},
		{"trailing data", `{"a":1} {}`, sdkerr.RuleTrailingData},
		{"truncated", `{"a":[1,2`, sdkerr.RuleSyntax},
		{"bare word", `nope`, sdkerr.RuleSyntax},
		{"invalid UTF-8", "\"\xff\"", sdkerr.RuleSyntax},
		{"float overflow", `1e400`, sdkerr.RuleBadNumber},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.in)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !sdkerr.IsKind(err, sdkerr.KindParse) {
				t.Fatalf("expected KindParse, got %v", err)
			}
			if got := sdkerr.RuleID(err); got != tc.rule {
				t.Fatalf("expected RuleID %s, got %s (%v)", tc.rule, got, err)
			}
		})
	}
}

func TestFromGo_RejectsUnsupportedTypes(t *testing.T) {
	type point struct{ X, Y int }
	cases := map[string]any{
		"struct":        point{1, 2},
		"nested struct": map[string]any{"body": map[string]any{"p": point{}}},
		"channel":       []any{make(chan int)},
		"invalid value": Value{},
		"typed map":     map[string]int{"a": 1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromGo(in)
			if !sdkerr.IsKind(err, sdkerr.KindEncoding) {
				t.Fatalf("expected KindEncoding, got %v", err)
			}
			if sdkerr.RuleID(err) != sdkerr.RuleUnsupportedGo {
				t.Fatalf("expected RuleID %s, got %s", sdkerr.RuleUnsupportedGo, sdkerr.RuleID(err))
			}
		})
	}
}

func TestFromGo_ConvertsNativeValues(t *testing.T) {
	v, err := FromGo(map[string]any{
		"n":     json.Number("7"),
		"f":     json.Number("7.5"),
		"u8":    uint8(255),
		"blob":  []byte{0xde, 0xad},
		"names": []string{"b", "a"},
		"tags":  map[string]string{"k": "v"},
	})
	if err != nil {
		t.Fatalf("FromGo: %v", err)
	}
	want := `{"blob":"3q0=","f":7.5,"n":7,"names":["b","a"],"tags":{"k":"v"},"u8":255}`
	if got := mustCanonical(t, v); got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	type envelope struct {
		Name string `json:"name"`
		Doc  Value  `json:"doc"`
	}
	var env envelope
	if err := json.Unmarshal([]byte(`{"name":"x","doc":{"b":1.5,"a":[1,2]}}`), &env); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := mustCanonical(t, env.Doc); got != `{"a":[1,2],"b":1.5}` {
		t.Fatalf("unexpected canonical form %s", got)
	}
	out, err := json.Marshal(env.Doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"a":[1,2],"b":1.5}` {
		t.Fatalf("Marshal: got %s", out)
	}
}

func TestValue_WithoutAndWith(t *testing.T) {
	body := MustFromGo(map[string]any{"type": "WriteData", "entry": map[string]any{"data": "AA=="}})
	stripped := body.Without("entry")
	if stripped.Has("entry") {
		t.Fatalf("Without left the member in place")
	}
	if !body.Has("entry") {
		t.Fatalf("Without mutated its receiver")
	}
	if got := mustCanonical(t, stripped.With("x", Int(1))); got != `{"type":"WriteData","x":1}` {
		t.Fatalf("With: got %s", got)
	}
	if !Equal(body, MustFromGo(map[string]any{"entry": map[string]any{"data": "AA=="}, "type": "WriteData"})) {
		t.Fatalf("Equal must ignore member order")
	}
	if Equal(Int(1), Float(1)) {
		t.Fatalf("integer must never equal float")
	}
}
