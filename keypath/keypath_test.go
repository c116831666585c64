package keypath

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseFeatureKey(t *testing.T) {
	k, err := Parse("auth.errors.invalid-email")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k.Domain != "auth" || k.Category != "errors" || k.Name != "invalid-email" {
		t.Fatalf("parsed = %+v", k)
	}
	if !reflect.DeepEqual(k.Path, []string{"auth", "errors", "invalid-email"}) {
		t.Fatalf("path = %v", k.Path)
	}
}

func TestParseDeepKeyJoinsRemainder(t *testing.T) {
	k, err := Parse("auth.labels.login.submit-button")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k.Name != "login.submit-button" {
		t.Fatalf("name = %q, want login.submit-button", k.Name)
	}
	if len(k.Path) != 4 {
		t.Fatalf("path = %v", k.Path)
	}
}

func TestParseCoreErrors(t *testing.T) {
	k, err := Parse("errors.not-found")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k.Domain != "errors" || k.Category != "errors" || k.Name != "not-found" {
		t.Fatalf("parsed = %+v", k)
	}

	// Deep core keys keep the remainder joined.
	k, err = Parse("errors.x.y")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k.Category != "errors" || k.Name != "x.y" {
		t.Fatalf("parsed = %+v", k)
	}
}

func TestParseRejectsMalformedKeys(t *testing.T) {
	for _, bad := range []string{"", "single", "two.parts", "auth..x", ".auth.errors.x", "errors"} {
		_, err := Parse(bad)
		if err == nil {
			t.Fatalf("Parse(%q) should fail", bad)
		}
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("Parse(%q) error type = %T", bad, err)
		}
	}
}

func TestConstantName(t *testing.T) {
	cases := []struct {
		domain, category, want string
	}{
		{"errors", "errors", "CORE_ERRORS"},
		{"errors", "whatever", "CORE_ERRORS"},
		{"auth", "errors", "AUTH_ERRORS"},
		{"auth", "labels", "AUTH_LABELS"},
		{"projects", "success", "PROJECTS_SUCCESS"},
		{"auth", "hints", "AUTH_HINTS"}, // unknown category upper-cased as-is
	}
	for _, c := range cases {
		if got := ConstantName(c.domain, c.category); got != c.want {
			t.Errorf("ConstantName(%s, %s) = %s, want %s", c.domain, c.category, got, c.want)
		}
	}
}

func TestRelativeKey(t *testing.T) {
	if got := RelativeKey("auth.errors.new-error", "auth"); got != "errors.new-error" {
		t.Fatalf("got %q", got)
	}
	if got := RelativeKey("errors.not-found", "errors"); got != "not-found" {
		t.Fatalf("got %q", got)
	}
	// No prefix: unchanged.
	if got := RelativeKey("errors.not-found", "auth"); got != "errors.not-found" {
		t.Fatalf("got %q", got)
	}
}

func TestKebabToCamel(t *testing.T) {
	cases := map[string]string{
		"simple":               "simple",
		"new-error":            "newError",
		"verify-2fa-code-sent": "verify2faCodeSent",
		"a-b-c":                "aBC",
	}
	for in, want := range cases {
		if got := KebabToCamel(in); got != want {
			t.Errorf("KebabToCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPropertyName(t *testing.T) {
	if got := PropertyName("session.too-short"); got != "sessionTooShort" {
		t.Fatalf("got %q", got)
	}
	if got := PropertyName("new-error"); got != "newError" {
		t.Fatalf("got %q", got)
	}
}
