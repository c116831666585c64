package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/r4sheed/nextjs-intrasite-sub000/config"
)

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"[HU] Sign in", true},
		{"[PT-BR] Entrar", true},
		{"Sign in", false},
		{"[hu] Sign in", false},
		{"[] Sign in", false},
		{"[HU]Sign in", false},
		{"[404] not an error code", true},
	}

	for _, tc := range tests {
		if got := isPlaceholder(tc.value); got != tc.want {
			t.Fatalf("isPlaceholder(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestOrderedLangs(t *testing.T) {
	proj := &project{
		settings: &config.Settings{SourceLang: "en"},
		langs:    []string{"hu", "en", "de"},
	}
	got := proj.orderedLangs()
	want := []string{"en", "de", "hu"}
	if len(got) != len(want) {
		t.Fatalf("orderedLangs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("orderedLangs() = %v, want %v", got, want)
		}
	}
}

func TestAddDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "src/locales/en/auth.json"), "{}\n")
	writeTestFile(t, filepath.Join(dir, "src/locales/hu/auth.json"), "{}\n")
	writeTestFile(t, filepath.Join(dir, "src/features/auth/lib/messages.ts"), "")

	rootDir = dir
	defer func() { rootDir = "." }()

	if err := runAdd("auth.errors.invalid-credentials", "Invalid credentials"); err != nil {
		t.Fatalf("runAdd() error: %v", err)
	}

	en := readTestFile(t, filepath.Join(dir, "src/locales/en/auth.json"))
	if !strings.Contains(en, `"invalid-credentials": "Invalid credentials"`) {
		t.Fatalf("en auth.json missing added key:\n%s", en)
	}
	hu := readTestFile(t, filepath.Join(dir, "src/locales/hu/auth.json"))
	if !strings.Contains(hu, `"invalid-credentials": "[HU] Invalid credentials"`) {
		t.Fatalf("hu auth.json missing placeholder:\n%s", hu)
	}
	consts := readTestFile(t, filepath.Join(dir, "src/features/auth/lib/messages.ts"))
	if !strings.Contains(consts, "export const AUTH_ERRORS = {") {
		t.Fatalf("constants file missing block:\n%s", consts)
	}
	if !strings.Contains(consts, "invalidCredentials: 'errors.invalid-credentials',") {
		t.Fatalf("constants file missing entry:\n%s", consts)
	}

	if err := runDelete("auth.errors.invalid-credentials"); err != nil {
		t.Fatalf("runDelete() error: %v", err)
	}
	en = readTestFile(t, filepath.Join(dir, "src/locales/en/auth.json"))
	if strings.Contains(en, "invalid-credentials") {
		t.Fatalf("en auth.json still has deleted key:\n%s", en)
	}
	consts = readTestFile(t, filepath.Join(dir, "src/features/auth/lib/messages.ts"))
	if strings.Contains(consts, "invalidCredentials") {
		t.Fatalf("constants file still has deleted entry:\n%s", consts)
	}
}

func TestUpdatePrimaryOnly(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "src/locales/en/common.json"),
		"{\n  \"common\": {\n    \"actions\": {\n      \"cancel-button\": \"Cancel\"\n    }\n  }\n}\n")
	writeTestFile(t, filepath.Join(dir, "src/locales/hu/common.json"),
		"{\n  \"common\": {\n    \"actions\": {\n      \"cancel-button\": \"Mégse\"\n    }\n  }\n}\n")

	rootDir = dir
	defer func() { rootDir = "." }()

	if err := runUpdate("common.actions.missing-key", "Abort", ""); err == nil {
		t.Fatalf("runUpdate() with unknown key should fail")
	}
	if err := runUpdate("common.actions.cancel-button", "Abort", ""); err != nil {
		t.Fatalf("runUpdate() error: %v", err)
	}

	en := readTestFile(t, filepath.Join(dir, "src/locales/en/common.json"))
	if !strings.Contains(en, `"cancel-button": "Abort"`) {
		t.Fatalf("en common.json not updated:\n%s", en)
	}
	hu := readTestFile(t, filepath.Join(dir, "src/locales/hu/common.json"))
	if !strings.Contains(hu, "Mégse") {
		t.Fatalf("hu common.json should be untouched:\n%s", hu)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
