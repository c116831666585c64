// Package syncer implements the top-level reconciliation algorithm.
//
// For every domain it diffs the primary language's locale tree against each
// secondary language (filling missing keys with a marked placeholder and
// pruning orphans), then against the domain's generated constants file
// (overwriting drifted values, reporting entries the constants lack). The
// run accumulates a structured action log and supports a no-write dry-run
// mode that performs every read and diff but suppresses every write.
package syncer

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/r4sheed/nextjs-intrasite-sub000/combine"
	"github.com/r4sheed/nextjs-intrasite-sub000/constfile"
	"github.com/r4sheed/nextjs-intrasite-sub000/domain"
	"github.com/r4sheed/nextjs-intrasite-sub000/keypath"
	"github.com/r4sheed/nextjs-intrasite-sub000/localefile"
)

// Options configures one sync run.
type Options struct {
	Registry *domain.Registry
	// SourceLang is the primary, source-of-truth language.
	SourceLang string
	// Languages to reconcile, including the source. Empty means every
	// language found under the locales root.
	Languages []string
	// DryRun suppresses all writes; reads and diffs still happen, so the
	// reported actions match a real run exactly.
	DryRun bool
	// Domains restricts the run to the named domains. Empty means all.
	Domains []string

	Log  func(format string, args ...any)
	Warn func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.Log != nil {
		o.Log(format, args...)
	}
}

func (o *Options) warn(format string, args ...any) {
	if o.Warn != nil {
		o.Warn(format, args...)
	}
}

// Placeholder builds the marked stand-in value for a key missing from a
// secondary locale: the primary text tagged with the target language.
func Placeholder(lang, primaryValue string) string {
	return "[" + strings.ToUpper(lang) + "] " + primaryValue
}

// Sync reconciles every domain and returns the accumulated action log.
// Per-domain failures are recorded and skipped; only setup errors (no
// registry, unlistable locales root) abort the run.
func Sync(opts Options) (*Result, error) {
	reg := opts.Registry
	langs := opts.Languages
	if len(langs) == 0 {
		var err error
		langs, err = domain.Languages(reg.LocalesRoot)
		if err != nil {
			return nil, err
		}
	}

	var secondaries []string
	for _, lang := range langs {
		if lang != opts.SourceLang {
			secondaries = append(secondaries, lang)
		}
	}

	names := opts.Domains
	if len(names) == 0 {
		names = reg.Names()
	}

	res := &Result{}
	for _, name := range names {
		cfg, ok := reg.Domains[name]
		if !ok {
			res.Failures = append(res.Failures, Failure{Domain: name, Err: fmt.Errorf("unknown domain %q", name)})
			continue
		}
		if err := syncDomain(&opts, res, name, cfg, secondaries); err != nil {
			opts.warn("domain %s: %v", name, err)
			res.Failures = append(res.Failures, Failure{Domain: name, Err: err})
		}
	}

	// A full resort plus a fresh combined file per language close the run.
	// Domains that already failed above must not abort these passes.
	if !opts.DryRun {
		SortAll(reg, langs, opts.Warn)
		for _, lang := range langs {
			if _, err := combine.Language(reg, lang); err != nil {
				opts.warn("merging %s: %v", lang, err)
			}
		}
	}
	return res, nil
}

// syncDomain runs the locale-to-locale and locale-to-constants passes for
// one domain.
func syncDomain(opts *Options, res *Result, name string, cfg domain.Config, secondaries []string) error {
	primaryPath := cfg.LocalePath(opts.SourceLang)
	primary, err := localefile.Load(primaryPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			opts.warn("domain %s: no %s locale file, skipping", name, opts.SourceLang)
			return nil
		}
		return err
	}

	pairs := primary.Root.Flatten()
	primarySet := make(map[string]string, len(pairs))
	for _, p := range pairs {
		primarySet[p.Key] = p.Value
	}

	for _, lang := range secondaries {
		if err := syncLocale(opts, res, name, cfg, lang, pairs, primarySet); err != nil {
			return err
		}
	}

	return syncConstants(opts, res, name, cfg, pairs)
}

// syncLocale reconciles one secondary language against the primary pairs.
func syncLocale(opts *Options, res *Result, name string, cfg domain.Config, lang string, pairs []localefile.Pair, primarySet map[string]string) error {
	path := cfg.LocalePath(lang)
	f, err := localefile.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			opts.warn("domain %s: no %s locale file, skipping", name, lang)
			return nil
		}
		return err
	}

	secondary := f.Root.Flatten()
	secondarySet := make(map[string]bool, len(secondary))
	for _, p := range secondary {
		secondarySet[p.Key] = true
	}

	changed := false
	for _, p := range pairs {
		if secondarySet[p.Key] {
			continue
		}
		value := Placeholder(lang, p.Value)
		if err := f.Set(strings.Split(p.Key, "."), value); err != nil {
			return err
		}
		res.add(Action{Type: ActionAdd, File: path, Key: p.Key, Value: value})
		changed = true
	}

	for _, p := range secondary {
		if _, ok := primarySet[p.Key]; ok {
			continue
		}
		f.Remove(strings.Split(p.Key, "."))
		res.add(Action{Type: ActionRemove, File: path, Key: p.Key})
		changed = true
	}

	if changed && !opts.DryRun {
		f.Root.Sort(nil)
		if err := f.Write(); err != nil {
			return err
		}
	}
	return nil
}

// syncConstants reconciles the domain's constants file against the primary
// locale pairs. Values drift back into line; entries the block lacks are
// reported but never created; new constant wiring is an explicit add, not
// a sync side effect. Only wholly unseen categories get a fresh block.
func syncConstants(opts *Options, res *Result, name string, cfg domain.Config, pairs []localefile.Pair) error {
	if cfg.Constants == "" {
		return nil
	}

	cf, err := constfile.Load(cfg.Constants)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			opts.warn("domain %s: constants file %s missing, skipping", name, cfg.Constants)
			return nil
		}
		return err
	}

	changed := false
	if name == keypath.CoreDomain {
		desired := make(map[string]string, len(pairs))
		for _, p := range pairs {
			rel := keypath.RelativeKey(p.Key, keypath.CoreDomain)
			desired[keypath.PropertyName(rel)] = rel
		}
		blockChanged, err := mergeBlock(opts, res, cf, keypath.ConstantName(name, "errors"), desired, name, "errors", false)
		if err != nil {
			return err
		}
		changed = blockChanged
	} else {
		grouped, categories := groupByCategory(name, pairs)
		for _, category := range categories {
			blockName := keypath.ConstantName(name, category)
			blockChanged, err := mergeBlock(opts, res, cf, blockName, grouped[category], name, category, true)
			if err != nil {
				return err
			}
			changed = changed || blockChanged
		}
	}

	if changed && !opts.DryRun {
		return cf.Write()
	}
	return nil
}

// groupByCategory buckets primary pairs of one feature domain by their
// category segment, mapping each to its desired constant entries. Keys
// without a category level do not belong in constants and are skipped.
func groupByCategory(name string, pairs []localefile.Pair) (map[string]map[string]string, []string) {
	grouped := make(map[string]map[string]string)
	var categories []string
	for _, p := range pairs {
		segs := strings.SplitN(p.Key, ".", 3)
		if len(segs) < 3 || segs[0] != name {
			continue
		}
		category := segs[1]
		if grouped[category] == nil {
			grouped[category] = make(map[string]string)
			categories = append(categories, category)
		}
		grouped[category][keypath.PropertyName(segs[2])] = keypath.RelativeKey(p.Key, name)
	}
	return grouped, categories
}

// mergeBlock merges desired values into one block. A block absent from the
// file is appended when allowCreate is set (unseen category); a block that
// cannot be parsed is skipped with a warning, never rewritten blind.
func mergeBlock(opts *Options, res *Result, cf *constfile.File, blockName string, desired map[string]string, domainName, category string, allowCreate bool) (bool, error) {
	updated, missing, err := cf.MergeValues(blockName, desired)
	if err != nil {
		var nf *constfile.BlockNotFoundError
		if errors.As(err, &nf) {
			if !allowCreate {
				opts.warn("%s: block %s not found, skipping (create it with an explicit add)", cf.Path, blockName)
				return false, nil
			}
			b := &constfile.Block{Name: blockName}
			for key, value := range desired {
				b.Entries = append(b.Entries, constfile.Entry{Key: key, Value: value})
			}
			cf.AppendBlock(b, domainName, category)
			for _, e := range sortedEntries(desired) {
				res.add(Action{Type: ActionAdd, File: cf.Path, Key: e.Key, Value: e.Value, Detail: "new block " + blockName})
			}
			return true, nil
		}
		var pe *constfile.ParseError
		if errors.As(err, &pe) {
			opts.warn("%v, skipping", pe)
			return false, nil
		}
		return false, err
	}

	for _, key := range updated {
		res.add(Action{Type: ActionUpdate, File: cf.Path, Key: key, Value: desired[key], Detail: "block " + blockName})
	}
	for _, key := range missing {
		res.add(Action{Type: ActionMissing, File: cf.Path, Key: key, Detail: "block " + blockName})
	}
	return len(updated) > 0, nil
}

func sortedEntries(desired map[string]string) []constfile.Entry {
	entries := make([]constfile.Entry, 0, len(desired))
	for key, value := range desired {
		entries = append(entries, constfile.Entry{Key: key, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}
