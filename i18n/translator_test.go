package i18n

import "testing"

func TestDefaultMessages(t *testing.T) {
	cases := map[string]string{
		"required":    "missing required field",
		"unknown_key": "unknown property",
		"no_variant":  "matched no variant",
	}
	for code, want := range cases {
		if got := T(code, nil); got != want {
			t.Fatalf("T(%q) = %q, want %q", code, got, want)
		}
	}
	// unknown codes fall back to the code itself
	if got := T("weird_code", nil); got != "weird_code" {
		t.Fatalf("unexpected fallback: %q", got)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "!" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upperTranslator{})
	defer SetTranslator(nil)
	if got := T("required", nil); got != "!required" {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T("required", nil); got != "missing required field" {
		t.Fatalf("nil should restore the default: %q", got)
	}
}
