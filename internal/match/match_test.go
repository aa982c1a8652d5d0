package match

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestName(t *testing.T) {
	tests := []struct {
		name   string
		entry  string
		target string
		want   bool
	}{
		{name: "identical", entry: "a.txt", target: "a.txt", want: true},
		{name: "upper entry", entry: "A.TXT", target: "a.txt", want: true},
		{name: "mixed case", entry: "foo.TXT", target: "Foo.txt", want: true},
		{name: "different extension", entry: "Foo.text", target: "Foo.txt", want: false},
		{name: "prefix only", entry: "a.txt.bak", target: "a.txt", want: false},
		{name: "substring", entry: "a.tx", target: "a.txt", want: false},
		{name: "empty both", entry: "", target: "", want: true},
		{name: "empty target", entry: "a", target: "", want: false},
		{name: "non ascii identical", entry: "résumé.pdf", target: "RéSUMé.PDF", want: true},
		{name: "non ascii not folded", entry: "É.txt", target: "é.txt", want: false},
		{name: "glob is literal", entry: "abc.txt", target: "*.txt", want: false},
		{name: "glob literal matches itself", entry: "*.TXT", target: "*.txt", want: true},
		{name: "punctuation not folded", entry: "a[b", target: "a{b", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Name(tt.entry, tt.target); got != tt.want {
				t.Errorf("Name(%q, %q) = %v, want %v", tt.entry, tt.target, got, tt.want)
			}
		})
	}
}

// Case never affects the result for ASCII names, and the predicate is symmetric.
func TestNameCaseInsensitiveProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z0-9._-]{1,24}`).Draw(rt, "name")

		if !Name(name, strings.ToUpper(name)) {
			rt.Fatalf("%q should match its upper-case form", name)
		}
		if !Name(strings.ToLower(name), name) {
			rt.Fatalf("%q should match its lower-case form", name)
		}

		other := rapid.StringMatching(`[A-Za-z0-9._-]{1,24}`).Draw(rt, "other")
		if Name(name, other) != Name(other, name) {
			rt.Fatalf("Name is not symmetric for %q and %q", name, other)
		}
		if Name(name, other) != strings.EqualFold(name, other) {
			rt.Fatalf("ASCII-only names should agree with EqualFold: %q vs %q", name, other)
		}
	})
}
