package localefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NotFoundError reports a key or intermediate path segment that does not
// exist in a locale file.
type NotFoundError struct {
	Key  string
	File string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in %s", e.Key, e.File)
}

// DuplicateKeyError reports an add targeting an existing key.
type DuplicateKeyError struct {
	Key  string
	File string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %q already exists in %s", e.Key, e.File)
}

// File is a locale file loaded into memory.
type File struct {
	Path string
	Root *Value
}

// Load reads and parses a locale file. A missing file surfaces the
// underlying fs.ErrNotExist so callers can branch with errors.Is.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: path, Root: root}, nil
}

// New returns an empty in-memory locale file for the given path.
func New(path string) *File {
	return &File{Path: path, Root: NewObject()}
}

// Write renders the tree and writes it to disk.
func (f *File) Write() error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return os.WriteFile(f.Path, f.Root.Marshal(), 0644)
}

// Add creates the leaf at path with the given text, creating intermediate
// objects as needed. The immediate parent's keys are re-sorted afterwards.
// Fails with DuplicateKeyError if the leaf already exists.
func (f *File) Add(path []string, text string) error {
	parent, err := f.walk(path, true)
	if err != nil {
		return err
	}
	leaf := path[len(path)-1]
	if parent.field(leaf) != nil {
		return &DuplicateKeyError{Key: strings.Join(path, "."), File: f.Path}
	}
	parent.Fields = append(parent.Fields, Field{Name: leaf, Value: NewString(text)})
	sortFields(parent, path[:len(path)-1])
	return nil
}

// Update overwrites the leaf at path. Fails with NotFoundError if any
// segment is missing. No re-sort is needed: no keys were created.
func (f *File) Update(path []string, text string) error {
	parent, err := f.walk(path, false)
	if err != nil {
		return err
	}
	leaf := parent.field(path[len(path)-1])
	if leaf == nil || leaf.Value.Kind != String {
		return &NotFoundError{Key: strings.Join(path, "."), File: f.Path}
	}
	leaf.Value.Str = text
	return nil
}

// Delete removes the leaf at path. Fails with NotFoundError if absent.
func (f *File) Delete(path []string) error {
	parent, err := f.walk(path, false)
	if err != nil {
		return err
	}
	name := path[len(path)-1]
	for i := range parent.Fields {
		if parent.Fields[i].Name == name {
			parent.Fields = append(parent.Fields[:i], parent.Fields[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Key: strings.Join(path, "."), File: f.Path}
}

// Set creates or overwrites the leaf at path, creating intermediates.
// Used by the synchronizer for placeholder fills; ordering is restored by
// the sort pass that follows.
func (f *File) Set(path []string, text string) error {
	parent, err := f.walk(path, true)
	if err != nil {
		return err
	}
	leaf := path[len(path)-1]
	if fld := parent.field(leaf); fld != nil {
		fld.Value = NewString(text)
		return nil
	}
	parent.Fields = append(parent.Fields, Field{Name: leaf, Value: NewString(text)})
	return nil
}

// Remove deletes the leaf at path if present, reporting whether it did.
func (f *File) Remove(path []string) bool {
	return f.Delete(path) == nil
}

// walk descends to the parent object of path's final segment. When create
// is set, missing intermediate objects are created; otherwise a missing
// segment is a NotFoundError. An intermediate scalar violates the tree
// invariant and is always an error.
func (f *File) walk(path []string, create bool) (*Value, error) {
	cur := f.Root
	for i, seg := range path[:len(path)-1] {
		fld := cur.field(seg)
		if fld == nil {
			if !create {
				return nil, &NotFoundError{Key: strings.Join(path[:i+1], "."), File: f.Path}
			}
			child := NewObject()
			cur.Fields = append(cur.Fields, Field{Name: seg, Value: child})
			sortFields(cur, path[:i])
			cur = child
			continue
		}
		if fld.Value.Kind != Object {
			return nil, fmt.Errorf("%s: segment %q is not an object", f.Path, strings.Join(path[:i+1], "."))
		}
		cur = fld.Value
	}
	return cur, nil
}

// sortFields re-sorts one object's immediate keys for its path.
func sortFields(v *Value, path []string) {
	sortShallow(v, path)
}
