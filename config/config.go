// Package config implements .l10nsync.yaml configuration file support.
//
// When a .l10nsync.yaml file exists in the project root it overrides the
// default layout. All settings are optional; the defaults mirror the
// observed Next.js project layout:
//
//	locales_root: src/locales
//	features_root: src/features
//	core_constants: src/lib/messages.ts
//	source_lang: en
//	languages: [en, hu, de]
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the project root.
const FileName = ".l10nsync.yaml"

// Defaults.
const (
	DefaultLocalesRoot   = "src/locales"
	DefaultFeaturesRoot  = "src/features"
	DefaultCoreConstants = "src/lib/messages.ts"
	DefaultSourceLang    = "en"
)

// Settings holds the resolved project configuration. Paths are absolute
// after Load.
type Settings struct {
	// LocalesRoot is the directory holding <lang>/<domain>.json trees and
	// the combined <lang>.json files.
	LocalesRoot string `yaml:"locales_root,omitempty"`
	// FeaturesRoot is the directory whose subdirectories are feature domains.
	FeaturesRoot string `yaml:"features_root,omitempty"`
	// CoreConstants is the constants file mirroring the flat errors domain.
	CoreConstants string `yaml:"core_constants,omitempty"`
	// SourceLang is the primary (source-of-truth) language.
	SourceLang string `yaml:"source_lang,omitempty"`
	// Languages overrides language discovery from the locales directory.
	Languages []string `yaml:"languages,omitempty"`
}

// Load reads .l10nsync.yaml from rootDir, applying defaults for anything
// unset. A missing file just means all-defaults.
func Load(rootDir string) (*Settings, error) {
	s := &Settings{}

	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if s.LocalesRoot == "" {
		s.LocalesRoot = DefaultLocalesRoot
	}
	if s.FeaturesRoot == "" {
		s.FeaturesRoot = DefaultFeaturesRoot
	}
	if s.CoreConstants == "" {
		s.CoreConstants = DefaultCoreConstants
	}
	if s.SourceLang == "" {
		s.SourceLang = DefaultSourceLang
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}
	s.LocalesRoot = filepath.Join(absRoot, s.LocalesRoot)
	s.FeaturesRoot = filepath.Join(absRoot, s.FeaturesRoot)
	s.CoreConstants = filepath.Join(absRoot, s.CoreConstants)

	return s, nil
}
