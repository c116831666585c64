// Package combine folds all per-domain locale fragments for one language
// into the combined <locales-root>/<lang>.json file.
//
// The merge is a shallow top-level assignment in sorted filename order:
// later files win on duplicate top-level keys. The result is recursively
// key-sorted before writing, so the combined file is as diff-stable as the
// fragments.
package combine

import (
	"fmt"
	"path/filepath"

	"github.com/r4sheed/nextjs-intrasite-sub000/domain"
	"github.com/r4sheed/nextjs-intrasite-sub000/localefile"
)

// Language merges every per-domain fragment for lang and writes the
// combined file, returning its path.
func Language(reg *domain.Registry, lang string) (string, error) {
	domains, err := domain.DomainsFor(reg.LocalesRoot, lang)
	if err != nil {
		return "", err
	}

	combined := localefile.NewObject()
	for _, name := range domains {
		path := filepath.Join(reg.LocalesRoot, lang, name+".json")
		frag, err := localefile.Load(path)
		if err != nil {
			return "", err
		}
		assign(combined, frag.Root)
	}
	combined.Sort(nil)

	out := &localefile.File{Path: reg.CombinedPath(lang), Root: combined}
	if err := out.Write(); err != nil {
		return "", fmt.Errorf("writing %s: %w", out.Path, err)
	}
	return out.Path, nil
}

// All merges the combined file for every given language.
func All(reg *domain.Registry, langs []string) ([]string, error) {
	var paths []string
	for _, lang := range langs {
		path, err := Language(reg, lang)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// assign copies src's top-level fields into dst, replacing duplicates
// (last write wins).
func assign(dst, src *localefile.Value) {
	for _, f := range src.Fields {
		replaced := false
		for i := range dst.Fields {
			if dst.Fields[i].Name == f.Name {
				dst.Fields[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			dst.Fields = append(dst.Fields, localefile.Field{Name: f.Name, Value: f.Value})
		}
	}
}
