// Package domain implements the domain registry: it resolves a domain name
// (auth, errors, common, ...) to its locale-file pattern and its constants
// file.
//
// The registry is seeded with static domains and augmented with one domain
// per subdirectory of the features root. It is rebuilt on every invocation;
// nothing is cached between runs.
package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/r4sheed/nextjs-intrasite-sub000/config"
	"github.com/r4sheed/nextjs-intrasite-sub000/keypath"
)

// LangPlaceholder is the token replaced by the language code in a locale
// file pattern.
const LangPlaceholder = "{lang}"

// Config describes where one domain's artifacts live.
type Config struct {
	// Locales is the per-language file pattern, with a {lang} placeholder.
	Locales string
	// Constants is the mirrored constants file; empty means the domain has
	// no constants mirror.
	Constants string
	// Feature marks domains discovered from the features root.
	Feature bool
}

// LocalePath resolves the locale file for one language.
func (c Config) LocalePath(lang string) string {
	return strings.ReplaceAll(c.Locales, LangPlaceholder, lang)
}

// Registry maps domain names to their configuration.
type Registry struct {
	LocalesRoot string
	Domains     map[string]Config
}

// Configs builds the domain map from static entries plus the given feature
// names. It is pure: directory listing is the caller's job, which keeps
// domain resolution testable without a filesystem.
func Configs(localesRoot, featuresRoot, coreConstants string, features []string) map[string]Config {
	pattern := filepath.Join(localesRoot, LangPlaceholder)

	domains := map[string]Config{
		"common": {
			Locales: filepath.Join(pattern, "common.json"),
		},
		keypath.CoreDomain: {
			Locales:   filepath.Join(pattern, "errors.json"),
			Constants: coreConstants,
		},
		"navigation": {
			Locales: filepath.Join(pattern, "navigation.json"),
		},
	}

	for _, name := range features {
		domains[name] = Config{
			Locales:   filepath.Join(pattern, name+".json"),
			Constants: filepath.Join(featuresRoot, name, "lib", "messages.ts"),
			Feature:   true,
		}
	}
	return domains
}

// Discover builds the registry for a project: static domains plus every
// feature subdirectory.
func Discover(s *config.Settings) (*Registry, error) {
	features, err := Features(s.FeaturesRoot)
	if err != nil {
		return nil, err
	}
	return &Registry{
		LocalesRoot: s.LocalesRoot,
		Domains:     Configs(s.LocalesRoot, s.FeaturesRoot, s.CoreConstants, features),
	}, nil
}

// Features lists the non-hidden subdirectories of the features root,
// sorted. A missing features root yields no feature domains.
func Features(featuresRoot string) ([]string, error) {
	entries, err := os.ReadDir(featuresRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing features %s: %w", featuresRoot, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Names returns all registered domain names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Domains))
	for name := range r.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LocalePath resolves the locale file for a domain and language.
func (r *Registry) LocalePath(domainName, lang string) (string, error) {
	cfg, ok := r.Domains[domainName]
	if !ok {
		return "", fmt.Errorf("unknown domain %q", domainName)
	}
	return cfg.LocalePath(lang), nil
}

// CombinedPath returns the merged per-language file for a language.
func (r *Registry) CombinedPath(lang string) string {
	return filepath.Join(r.LocalesRoot, lang+".json")
}

// Languages lists the language subdirectories of the locales root, sorted.
func Languages(localesRoot string) ([]string, error) {
	entries, err := os.ReadDir(localesRoot)
	if err != nil {
		return nil, fmt.Errorf("listing languages %s: %w", localesRoot, err)
	}

	var langs []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		langs = append(langs, e.Name())
	}
	sort.Strings(langs)
	return langs, nil
}

// DomainsFor lists the per-domain locale files present for one language,
// with the .json extension stripped, sorted.
func DomainsFor(localesRoot, lang string) ([]string, error) {
	dir := filepath.Join(localesRoot, lang)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing domains %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
