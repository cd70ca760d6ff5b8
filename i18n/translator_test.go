package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("tag_mismatch", nil); msg != "tag mismatch" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("tag_mismatch", nil); msg == "tag mismatch" || msg == "" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X-" + code }

func TestTranslator_CustomAndUnknownCode(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("unknown codes should pass through, got %q", msg)
	}
	SetTranslator(upper{})
	if msg := T("arity", nil); msg != "X-arity" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("arity", nil); msg != "wrong number of elements" {
		t.Fatalf("nil translator should restore default, got %q", msg)
	}
}
