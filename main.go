// l10nsync keeps per-language JSON locale trees, generated constant
// blocks, and their canonical ordering consistent.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/r4sheed/nextjs-intrasite-sub000/combine"
	"github.com/r4sheed/nextjs-intrasite-sub000/config"
	"github.com/r4sheed/nextjs-intrasite-sub000/constfile"
	"github.com/r4sheed/nextjs-intrasite-sub000/domain"
	"github.com/r4sheed/nextjs-intrasite-sub000/keypath"
	"github.com/r4sheed/nextjs-intrasite-sub000/localefile"
	"github.com/r4sheed/nextjs-intrasite-sub000/syncer"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "l10nsync",
		Short: "Localization catalog synchronizer for JSON locales and generated constants",
		Long: `l10nsync is a localization catalog synchronizer.

Keeps three representations of the translation catalog consistent:
per-language JSON locale trees, generated TypeScript constant blocks,
and the canonical key ordering applied to both.

Commands:
  add        Add a translation key to every language plus its constant entry
  update     Update a translation's text
  delete     Remove a key from every language and from its constant block
  sync       Reconcile secondary languages and constants against the primary
  sort-all   Rewrite every catalog file in canonical order
  merge      Regenerate the combined per-language files
  status     Show per-language translation completeness
  watch      Re-run a dry-run sync whenever locale files change

Project layout is auto-detected (src/locales, src/features) and can be
overridden with a .l10nsync.yaml file in the project root.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")

	root.AddCommand(
		newAddCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newSyncCmd(),
		newSortAllCmd(),
		newMergeCmd(),
		newStatusCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// project setup shared by all commands
// ---------------------------------------------------------------------------

type project struct {
	settings *config.Settings
	registry *domain.Registry
	langs    []string
}

func openProject() (*project, error) {
	settings, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}
	registry, err := domain.Discover(settings)
	if err != nil {
		return nil, err
	}

	langs := settings.Languages
	if len(langs) == 0 {
		langs, err = domain.Languages(settings.LocalesRoot)
		if err != nil {
			return nil, fmt.Errorf("no languages configured and %w", err)
		}
	}

	return &project{settings: settings, registry: registry, langs: langs}, nil
}

// orderedLangs returns the project languages with the source language
// first; CRUD operations touch the source-of-truth file before any
// translation.
func (p *project) orderedLangs() []string {
	ordered := []string{p.settings.SourceLang}
	rest := make([]string, 0, len(p.langs))
	for _, lang := range p.langs {
		if lang != p.settings.SourceLang {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("l10nsync version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// add / update / delete
// ---------------------------------------------------------------------------

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <key> <text...>",
		Short: "Add a translation key to every language plus its constant entry",
		Long: `Add a new translation key.

The text is written to the primary language; every secondary language
receives a marked placeholder (e.g. "[HU] <text>") to be replaced by a
real translation later. If the key's domain has a constants mirror, the
matching camelCase entry is inserted as well.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args[0], strings.Join(args[1:], " "))
		},
	}
}

func runAdd(rawKey, text string) error {
	proj, err := openProject()
	if err != nil {
		return err
	}
	key, err := keypath.Parse(rawKey)
	if err != nil {
		return err
	}
	cfg, ok := proj.registry.Domains[key.Domain]
	if !ok {
		return fmt.Errorf("unknown domain %q (known: %s)", key.Domain, strings.Join(proj.registry.Names(), ", "))
	}

	for _, lang := range proj.orderedLangs() {
		path := cfg.LocalePath(lang)
		f, err := localefile.Load(path)
		if err != nil {
			if !isNotExist(err) {
				return err
			}
			f = localefile.New(path)
		}

		value := text
		if lang != proj.settings.SourceLang {
			value = syncer.Placeholder(lang, text)
		}
		if err := f.Add(key.Path, value); err != nil {
			return err
		}
		if err := f.Write(); err != nil {
			return err
		}
		logSuccess("Added %s to %s", key.Full, path)
	}

	if cfg.Constants != "" {
		if err := addConstant(cfg, key); err != nil {
			return err
		}
	}

	logSuccess("Done: %s", key.Full)
	return nil
}

func addConstant(cfg domain.Config, key *keypath.Key) error {
	cf, err := constfile.Load(cfg.Constants)
	if err != nil {
		if isNotExist(err) {
			logWarning("Constants file %s missing, skipping constant entry", cfg.Constants)
			return nil
		}
		return err
	}

	blockName := keypath.ConstantName(key.Domain, key.Category)
	prop := keypath.PropertyName(key.Name)
	value := keypath.RelativeKey(key.Full, key.Domain)

	if err := cf.AddEntry(blockName, prop, value, key.Domain, key.Category); err != nil {
		return err
	}
	if err := cf.Write(); err != nil {
		return err
	}
	logSuccess("Added %s.%s to %s", blockName, prop, cfg.Constants)
	return nil
}

func newUpdateCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "update <key> <text...>",
		Short: "Update a translation's text",
		Long: `Update the text of an existing translation key.

By default the primary language is updated; secondary languages keep
their translations (run 'sync' to reconcile). Use --lang to update a
specific language instead.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(args[0], strings.Join(args[1:], " "), lang)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Language to update (default: primary)")
	return cmd
}

func runUpdate(rawKey, text, lang string) error {
	proj, err := openProject()
	if err != nil {
		return err
	}
	key, err := keypath.Parse(rawKey)
	if err != nil {
		return err
	}
	cfg, ok := proj.registry.Domains[key.Domain]
	if !ok {
		return fmt.Errorf("unknown domain %q", key.Domain)
	}

	if lang == "" {
		lang = proj.settings.SourceLang
	}
	path := cfg.LocalePath(lang)
	f, err := localefile.Load(path)
	if err != nil {
		return err
	}
	if err := f.Update(key.Path, text); err != nil {
		return err
	}
	if err := f.Write(); err != nil {
		return err
	}

	logSuccess("Updated %s in %s", key.Full, path)
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove a key from every language and from its constant block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	}
}

func runDelete(rawKey string) error {
	proj, err := openProject()
	if err != nil {
		return err
	}
	key, err := keypath.Parse(rawKey)
	if err != nil {
		return err
	}
	cfg, ok := proj.registry.Domains[key.Domain]
	if !ok {
		return fmt.Errorf("unknown domain %q", key.Domain)
	}

	for _, lang := range proj.orderedLangs() {
		path := cfg.LocalePath(lang)
		f, err := localefile.Load(path)
		if err != nil {
			if isNotExist(err) {
				logWarning("No %s locale file at %s, skipping", lang, path)
				continue
			}
			return err
		}
		if err := f.Delete(key.Path); err != nil {
			return err
		}
		if err := f.Write(); err != nil {
			return err
		}
		logSuccess("Removed %s from %s", key.Full, path)
	}

	if cfg.Constants != "" {
		cf, err := constfile.Load(cfg.Constants)
		if err != nil {
			if isNotExist(err) {
				logWarning("Constants file %s missing, nothing to remove", cfg.Constants)
				return nil
			}
			return err
		}
		blockName := keypath.ConstantName(key.Domain, key.Category)
		if err := cf.DeleteEntry(blockName, keypath.PropertyName(key.Name)); err != nil {
			return err
		}
		if err := cf.Write(); err != nil {
			return err
		}
		logSuccess("Removed %s.%s from %s", blockName, keypath.PropertyName(key.Name), cfg.Constants)
	}

	return nil
}

// ---------------------------------------------------------------------------
// sync
// ---------------------------------------------------------------------------

func newSyncCmd() *cobra.Command {
	var (
		dryRun bool
		langs  string
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile secondary languages and constants against the primary",
		Long: `Reconcile the catalog against the primary language.

For every domain, keys missing from a secondary language are filled with
a marked placeholder and orphan keys are pruned; constant entries whose
values drifted are rewritten, and entries missing from a block are
reported (never silently created). Afterwards every file is re-sorted
and the combined per-language files are regenerated.

With --dry-run, every read and diff still happens but nothing is
written; the reported actions match a real run exactly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(dryRun, langs)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report actions without writing any file")
	cmd.Flags().StringVar(&langs, "lang", "", "Languages to reconcile (comma-separated, default: all)")
	return cmd
}

func runSync(dryRun bool, langsCSV string) error {
	proj, err := openProject()
	if err != nil {
		return err
	}

	langs := proj.langs
	if langsCSV != "" {
		langs = strings.Split(langsCSV, ",")
		// The source language always participates as the reference.
		if !containsString(langs, proj.settings.SourceLang) {
			langs = append([]string{proj.settings.SourceLang}, langs...)
		}
	}

	if dryRun {
		logInfo("Dry run: no files will be written")
	}
	logInfo("Primary language: %s", proj.settings.SourceLang)
	logInfo("Languages: %s", strings.Join(langs, ", "))
	logInfo("Domains: %s", strings.Join(proj.registry.Names(), ", "))

	res, err := syncer.Sync(syncer.Options{
		Registry:   proj.registry,
		SourceLang: proj.settings.SourceLang,
		Languages:  langs,
		DryRun:     dryRun,
		Log:        logInfo,
		Warn:       logWarning,
	})
	if err != nil {
		return err
	}

	res.Report(logInfo)

	if len(res.Failures) > 0 {
		return fmt.Errorf("%d domain(s) failed, see warnings above", len(res.Failures))
	}
	if res.Changed() && !dryRun {
		logSuccess("Catalog reconciled")
	}
	return nil
}

// ---------------------------------------------------------------------------
// sort-all / merge
// ---------------------------------------------------------------------------

func newSortAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort-all",
		Short: "Rewrite every catalog file in canonical order",
		Long: `Rewrite every locale file, combined file, and constants file in
canonical key order. Idempotent: a second run changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := openProject()
			if err != nil {
				return err
			}
			written := syncer.SortAll(proj.registry, proj.langs, logWarning)
			for _, path := range written {
				logInfo("Sorted %s", path)
			}
			logSuccess("Sorted %d file(s)", len(written))
			return nil
		},
	}
}

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Regenerate the combined per-language files",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := openProject()
			if err != nil {
				return err
			}
			paths, err := combine.All(proj.registry, proj.langs)
			for _, path := range paths {
				logSuccess("Merged %s", path)
			}
			return err
		},
	}
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-language translation completeness",
		Long: `Show key counts per language and domain, counting placeholder
values ("[XX] ..." tags) as untranslated. Does not modify any files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	proj, err := openProject()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%sProject%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "  Locales:    %s\n", proj.settings.LocalesRoot)
	fmt.Fprintf(os.Stderr, "  Features:   %s\n", proj.settings.FeaturesRoot)
	fmt.Fprintf(os.Stderr, "  Primary:    %s\n", proj.settings.SourceLang)
	fmt.Fprintf(os.Stderr, "  Languages:  %s\n", strings.Join(proj.langs, ", "))
	fmt.Fprintf(os.Stderr, "  Domains:    %s\n", strings.Join(proj.registry.Names(), ", "))
	fmt.Fprintln(os.Stderr)

	primaryTotal := 0
	primaryCounts := make(map[string]int)
	for _, name := range proj.registry.Names() {
		cfg := proj.registry.Domains[name]
		f, err := localefile.Load(cfg.LocalePath(proj.settings.SourceLang))
		if err != nil {
			continue
		}
		n := len(f.Root.Flatten())
		primaryCounts[name] = n
		primaryTotal += n
	}

	fmt.Fprintf(os.Stderr, "%sTranslation Statistics%s\n", colorBlue, colorReset)
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
	fmt.Fprintf(os.Stderr, "\n%-10s %-12s %-12s %-8s\n", "Lang", "Translated", "Untrans.", "Percent")
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 44))

	for _, lang := range proj.orderedLangs() {
		if lang == proj.settings.SourceLang {
			continue
		}
		translated, untranslated := 0, 0
		for _, name := range proj.registry.Names() {
			cfg := proj.registry.Domains[name]
			f, err := localefile.Load(cfg.LocalePath(lang))
			if err != nil {
				untranslated += primaryCounts[name]
				continue
			}
			for _, p := range f.Root.Flatten() {
				if isPlaceholder(p.Value) {
					untranslated++
				} else {
					translated++
				}
			}
		}
		percent := 0
		if primaryTotal > 0 {
			percent = translated * 100 / primaryTotal
		}
		fmt.Fprintf(os.Stderr, "%-10s %-12d %-12d %d%%\n", lang, translated, untranslated, percent)
	}

	fmt.Fprintln(os.Stderr, strings.Repeat("─", 44))
	fmt.Fprintf(os.Stderr, "Source keys (%s): %d\n\n", proj.settings.SourceLang, primaryTotal)
	return nil
}

// isPlaceholder reports whether a value is a sync-generated stand-in like
// "[HU] Sign in".
func isPlaceholder(value string) bool {
	if !strings.HasPrefix(value, "[") {
		return false
	}
	end := strings.Index(value, "] ")
	if end < 1 {
		return false
	}
	tag := value[1:end]
	if tag == "" {
		return false
	}
	for _, r := range tag {
		if (r < 'A' || r > 'Z') && r != '-' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// watch
// ---------------------------------------------------------------------------

func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a dry-run sync whenever locale files change",
		Long: `Watch the locales tree and print a fresh dry-run sync report after
every change. Nothing is written; run 'sync' to apply. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Quiet period before re-running after a change")
	return cmd
}

func runWatch(debounce time.Duration) error {
	proj, err := openProject()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// fsnotify is not recursive: watch the root plus each language dir.
	dirs := []string{proj.settings.LocalesRoot}
	for _, lang := range proj.langs {
		dirs = append(dirs, filepath.Join(proj.settings.LocalesRoot, lang))
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logWarning("Cannot watch %s: %v", dir, err)
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	logInfo("Watching %s (Ctrl-C to stop)", proj.settings.LocalesRoot)
	reportOnce(proj)

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".json") {
				continue
			}
			// Coalesce bursts of events into one re-run.
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			reportOnce(proj)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logWarning("Watcher: %v", err)
		case <-sigCh:
			logInfo("Stopped")
			return nil
		}
	}
}

func reportOnce(proj *project) {
	res, err := syncer.Sync(syncer.Options{
		Registry:   proj.registry,
		SourceLang: proj.settings.SourceLang,
		Languages:  proj.langs,
		DryRun:     true,
		Warn:       logWarning,
	})
	if err != nil {
		logError("%v", err)
		return
	}
	res.Report(logInfo)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func containsString(list []string, s string) bool {
	for _, it := range list {
		if it == s {
			return true
		}
	}
	return false
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
