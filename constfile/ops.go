package constfile

import (
	"errors"
	"sort"
	"strings"
)

// AddEntry inserts or replaces one entry in the named block and rewrites
// it. When the block does not exist it is appended as a new block with a
// doc comment; spec'd callers treat that as a normal outcome for adds.
func (f *File) AddEntry(blockName, key, value, domain, category string) error {
	b, err := f.FindBlock(blockName)
	if err != nil {
		var nf *BlockNotFoundError
		if errors.As(err, &nf) {
			b = &Block{Name: blockName, Entries: []Entry{{Key: key, Value: value}}}
			f.AppendBlock(b, domain, category)
			return nil
		}
		return err
	}
	if i := b.Find(key); i >= 0 {
		b.Entries[i].Value = value
	} else {
		b.Entries = append(b.Entries, Entry{Key: key, Value: value})
	}
	return f.ReplaceBlock(b)
}

// DeleteEntry removes one entry from the named block and rewrites it.
// A missing block and a missing property are distinct errors.
func (f *File) DeleteEntry(blockName, key string) error {
	b, err := f.FindBlock(blockName)
	if err != nil {
		return err
	}
	i := b.Find(key)
	if i < 0 {
		return &EntryNotFoundError{File: f.Path, Block: blockName, Key: key}
	}
	b.Entries = append(b.Entries[:i], b.Entries[i+1:]...)
	return f.ReplaceBlock(b)
}

// MergeValues reconciles an existing block against the desired
// key -> value map computed from the locale tree:
//
//   - entries whose value drifted are overwritten (returned in updated),
//   - desired keys absent from the block are reported in missing but are
//     never inserted: new constant wiring requires an explicit add,
//   - block entries not in desired are left alone.
//
// The block is rewritten only when a value changed. Both result slices are
// sorted for deterministic reporting.
func (f *File) MergeValues(blockName string, desired map[string]string) (updated, missing []string, err error) {
	b, err := f.FindBlock(blockName)
	if err != nil {
		return nil, nil, err
	}

	for key, want := range desired {
		i := b.Find(key)
		if i < 0 {
			missing = append(missing, key)
			continue
		}
		if b.Entries[i].Value != want {
			b.Entries[i].Value = want
			updated = append(updated, key)
		}
	}
	sort.Strings(updated)
	sort.Strings(missing)

	if len(updated) > 0 {
		if err := f.ReplaceBlock(b); err != nil {
			return nil, nil, err
		}
	}
	return updated, missing, nil
}

// ResortBlocks re-renders every block found in the file in canonical
// order, returning the block names it touched. Used by the sort-all pass.
func (f *File) ResortBlocks() ([]string, error) {
	names := f.BlockNames()
	for _, name := range names {
		b, err := f.FindBlock(name)
		if err != nil {
			return nil, err
		}
		if err := f.ReplaceBlock(b); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// BlockNames lists the names of all blocks in the file, in source order.
func (f *File) BlockNames() []string {
	var names []string
	for _, line := range f.lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "export const ") || !strings.HasSuffix(trimmed, " = {") {
			continue
		}
		name := trimmed[len("export const ") : len(trimmed)-len(" = {")]
		if isConstName(name) {
			names = append(names, name)
		}
	}
	return names
}

// isConstName reports whether s is an UPPER_SNAKE identifier.
func isConstName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}
