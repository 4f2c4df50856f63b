package compliance

import "testing"

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{"": Permissive, "permissive": Permissive, "strict": Strict}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %s, want %s", in, got, want)
		}
		if in != "" && got.String() != in {
			t.Fatalf("String() = %q, want %q", got.String(), in)
		}
	}
	if _, err := ParseMode("lenient"); err == nil {
		t.Fatalf("expected unknown mode to fail")
	}
}
