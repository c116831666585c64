package syncer

import "fmt"

// ActionType classifies one reconciliation step.
type ActionType string

const (
	// ActionAdd: a missing key was filled into a secondary locale, or a
	// brand-new constant block was appended.
	ActionAdd ActionType = "add"
	// ActionRemove: an orphan key was pruned from a secondary locale.
	ActionRemove ActionType = "remove"
	// ActionUpdate: a drifted constant value was overwritten.
	ActionUpdate ActionType = "update"
	// ActionMissing: a key has no constant entry; reported, never fixed.
	ActionMissing ActionType = "missing"
)

// Action is one immutable audit-trail record appended during a sync pass.
type Action struct {
	Type   ActionType
	File   string
	Key    string
	Value  string
	Detail string
}

func (a Action) String() string {
	s := fmt.Sprintf("%s %s", a.Type, a.Key)
	if a.Value != "" {
		s += fmt.Sprintf(" = %q", a.Value)
	}
	if a.Detail != "" {
		s += " (" + a.Detail + ")"
	}
	return s
}

// Failure records a domain that could not be processed. Sync keeps going:
// one bad file must not block the rest of the catalog.
type Failure struct {
	Domain string
	Err    error
}

// Result is the accumulated outcome of one sync run. It is an explicit
// value rather than package state, so repeated runs cannot leak into each
// other.
type Result struct {
	Actions  []Action
	Failures []Failure
}

func (r *Result) add(a Action) {
	r.Actions = append(r.Actions, a)
}

// Changed reports whether any action besides missing-reports was recorded.
func (r *Result) Changed() bool {
	for _, a := range r.Actions {
		if a.Type != ActionMissing {
			return true
		}
	}
	return false
}

// ByFile groups actions per file, preserving both file first-appearance
// order and action order within a file.
func (r *Result) ByFile() ([]string, map[string][]Action) {
	var files []string
	grouped := make(map[string][]Action)
	for _, a := range r.Actions {
		if _, ok := grouped[a.File]; !ok {
			files = append(files, a.File)
		}
		grouped[a.File] = append(grouped[a.File], a)
	}
	return files, grouped
}

// Report prints the grouped action list through the given logger.
func (r *Result) Report(log func(format string, args ...any)) {
	if len(r.Actions) == 0 {
		log("Nothing to reconcile, catalog is in sync")
		return
	}
	files, grouped := r.ByFile()
	log("Sync report (%d actions):", len(r.Actions))
	for _, file := range files {
		log("  %s:", file)
		for _, a := range grouped[file] {
			log("    %s", a)
		}
	}
	for _, f := range r.Failures {
		log("  domain %s failed: %v", f.Domain, f.Err)
	}
}
