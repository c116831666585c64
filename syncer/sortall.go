package syncer

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/r4sheed/nextjs-intrasite-sub000/constfile"
	"github.com/r4sheed/nextjs-intrasite-sub000/domain"
	"github.com/r4sheed/nextjs-intrasite-sub000/localefile"
)

// SortAll rewrites every per-domain locale file, every combined file, and
// every constants file in canonical order, returning the paths it wrote.
// Files that cannot be read or parsed are reported through warn and
// skipped, so one broken file does not block the rest of the catalog. The
// output is deterministic: a second run reproduces it byte for byte.
func SortAll(reg *domain.Registry, langs []string, warn func(format string, args ...any)) []string {
	if warn == nil {
		warn = func(string, ...any) {}
	}
	var written []string

	for _, lang := range langs {
		names, err := domain.DomainsFor(reg.LocalesRoot, lang)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				warn("%v", err)
			}
			continue
		}
		for _, name := range names {
			path := filepath.Join(reg.LocalesRoot, lang, name+".json")
			if sortLocaleFile(path, warn) {
				written = append(written, path)
			}
		}

		// Combined file, if one has been generated before.
		combined := reg.CombinedPath(lang)
		if sortLocaleFile(combined, warn) {
			written = append(written, combined)
		}
	}

	// Constants mirrors, deduplicated: several domains may share a file.
	seen := make(map[string]bool)
	for _, name := range reg.Names() {
		path := reg.Domains[name].Constants
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true

		cf, err := constfile.Load(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				warn("%v", err)
			}
			continue
		}
		if _, err := cf.ResortBlocks(); err != nil {
			warn("%v, skipping", err)
			continue
		}
		if err := cf.Write(); err != nil {
			warn("%v", err)
			continue
		}
		written = append(written, path)
	}

	return written
}

// sortLocaleFile loads, sorts, and rewrites one locale file, reporting
// whether it was written.
func sortLocaleFile(path string, warn func(format string, args ...any)) bool {
	f, err := localefile.Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			warn("%v, skipping", err)
		}
		return false
	}
	f.Root.Sort(nil)
	if err := f.Write(); err != nil {
		warn("%v", err)
		return false
	}
	return true
}
