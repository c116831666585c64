package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasSuffix(s.LocalesRoot, filepath.Join("src", "locales")) {
		t.Fatalf("LocalesRoot = %s", s.LocalesRoot)
	}
	if !filepath.IsAbs(s.LocalesRoot) {
		t.Fatalf("LocalesRoot not absolute: %s", s.LocalesRoot)
	}
	if s.SourceLang != "en" {
		t.Fatalf("SourceLang = %s", s.SourceLang)
	}
	if len(s.Languages) != 0 {
		t.Fatalf("Languages = %v, want discovery", s.Languages)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `locales_root: locales
core_constants: app/messages.ts
source_lang: de
languages: [de, en, hu]
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	s, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasSuffix(s.LocalesRoot, "locales") || strings.Contains(s.LocalesRoot, "src") {
		t.Fatalf("LocalesRoot = %s", s.LocalesRoot)
	}
	if !strings.HasSuffix(s.CoreConstants, filepath.Join("app", "messages.ts")) {
		t.Fatalf("CoreConstants = %s", s.CoreConstants)
	}
	if s.SourceLang != "de" {
		t.Fatalf("SourceLang = %s", s.SourceLang)
	}
	if len(s.Languages) != 3 {
		t.Fatalf("Languages = %v", s.Languages)
	}
	// Unset fields still get defaults.
	if !strings.HasSuffix(s.FeaturesRoot, filepath.Join("src", "features")) {
		t.Fatalf("FeaturesRoot = %s", s.FeaturesRoot)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("languages: {bad"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("Load should fail on malformed YAML")
	}
}
