// Package constfile implements parsing and regeneration of generated
// constant blocks embedded in TypeScript source files.
//
// A block is an object literal of the fixed shape
//
//	export const AUTH_ERRORS = {
//	  newError: 'errors.new-error',
//	  emailTaken: 'errors.email-taken', // kept verbatim on rewrite
//	} as const;
//
// mapping camelCase property names to domain-relative dotted key paths.
// The rest of the file is free-form text and is never touched. Entries are
// parsed with a line scanner rather than regexes so that trailing comments
// survive a rewrite; lines the scanner does not understand are preserved
// verbatim at the end of the block.
package constfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/r4sheed/nextjs-intrasite-sub000/sortkeys"
)

// ParseError reports a block whose body cannot be destructured.
type ParseError struct {
	File  string
	Block string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: block %s: %s", e.File, e.Block, e.Msg)
}

// BlockNotFoundError reports a constant block absent from a file.
type BlockNotFoundError struct {
	File  string
	Block string
}

func (e *BlockNotFoundError) Error() string {
	return fmt.Sprintf("%s: no block named %s", e.File, e.Block)
}

// EntryNotFoundError reports a property absent from an existing block.
type EntryNotFoundError struct {
	File  string
	Block string
	Key   string
}

func (e *EntryNotFoundError) Error() string {
	return fmt.Sprintf("%s: block %s has no entry %s", e.File, e.Block, e.Key)
}

// Entry is one parsed property of a block.
type Entry struct {
	// Key is the camelCase property name.
	Key string
	// Value is the unquoted string value (a domain-relative key path).
	Value string
	// Comment is a trailing line comment, without the "//" marker.
	Comment string
}

// Block is a parsed constant block.
type Block struct {
	Name    string
	Entries []Entry
	// Extra holds body lines the scanner could not parse, re-emitted
	// verbatim after the entries.
	Extra []string
}

// Labels reports whether the block holds UI label keys and therefore uses
// the suffix-priority order.
func (b *Block) Labels() bool {
	return strings.HasSuffix(b.Name, "_LABELS")
}

// Find returns the index of the entry with the given key, or -1.
func (b *Block) Find(key string) int {
	for i := range b.Entries {
		if b.Entries[i].Key == key {
			return i
		}
	}
	return -1
}

// File is a constants source file loaded into memory.
type File struct {
	Path  string
	lines []string
	// noFinalNewline records whether the source ended without a newline.
	noFinalNewline bool
}

// Load reads a constants file. A missing file surfaces fs.ErrNotExist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)
	f := &File{Path: path}
	f.noFinalNewline = text != "" && !strings.HasSuffix(text, "\n")
	f.lines = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if text == "" {
		f.lines = nil
	}
	return f, nil
}

// Write writes the file back to disk.
func (f *File) Write() error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	text := strings.Join(f.lines, "\n")
	if len(f.lines) > 0 && !f.noFinalNewline {
		text += "\n"
	}
	return os.WriteFile(f.Path, []byte(text), 0644)
}

// Text returns the current file content.
func (f *File) Text() string {
	text := strings.Join(f.lines, "\n")
	if len(f.lines) > 0 && !f.noFinalNewline {
		text += "\n"
	}
	return text
}

// FindBlock locates and parses the named block.
func (f *File) FindBlock(name string) (*Block, error) {
	b, _, _, err := f.findBlock(name)
	return b, err
}

// findBlock returns the parsed block plus its line range [start, end].
func (f *File) findBlock(name string) (*Block, int, int, error) {
	header := "export const " + name + " = {"
	start := -1
	for i, line := range f.lines {
		if strings.TrimSpace(line) == header {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, 0, 0, &BlockNotFoundError{File: f.Path, Block: name}
	}

	end := -1
	for i := start + 1; i < len(f.lines); i++ {
		if strings.TrimSpace(f.lines[i]) == "} as const;" {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, 0, 0, &ParseError{File: f.Path, Block: name, Msg: "unterminated block: missing '} as const;'"}
	}

	b := &Block{Name: name}
	for i := start + 1; i < end; i++ {
		line := strings.TrimSpace(f.lines[i])
		switch {
		case line == "":
			// Group separators are regenerated, not round-tripped.
		case strings.HasPrefix(line, "//"), strings.HasPrefix(line, "/*"),
			strings.HasPrefix(line, "*"):
			// Standalone comments are dropped; trailing comments on
			// entries are kept below.
		default:
			entry, usedNext, ok := parseEntry(line, peek(f.lines, i+1, end))
			if !ok {
				b.Extra = append(b.Extra, f.lines[i])
				continue
			}
			b.Entries = append(b.Entries, entry)
			if usedNext {
				i++
			}
		}
	}
	return b, start, end, nil
}

func peek(lines []string, i, end int) string {
	if i >= end {
		return ""
	}
	return strings.TrimSpace(lines[i])
}

// parseEntry parses one entry in either physical shape:
//
//	key: 'value',            single line, optional trailing comment
//	key:                     two lines
//	  'value',
func parseEntry(line, next string) (entry Entry, usedNext, ok bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return Entry{}, false, false
	}
	key := strings.TrimSpace(line[:colon])
	if !isIdentifier(key) {
		return Entry{}, false, false
	}

	rest := strings.TrimSpace(line[colon+1:])
	if rest == "" {
		// Two-line shape: value on the following line.
		if next == "" {
			return Entry{}, false, false
		}
		rest = next
		usedNext = true
	}

	value, tail, ok := parseQuoted(rest)
	if !ok {
		return Entry{}, false, false
	}

	tail = strings.TrimSpace(tail)
	tail = strings.TrimPrefix(tail, ",")
	tail = strings.TrimSpace(tail)

	comment := ""
	if strings.HasPrefix(tail, "//") {
		comment = strings.TrimSpace(strings.TrimPrefix(tail, "//"))
	} else if tail != "" {
		return Entry{}, false, false
	}

	return Entry{Key: key, Value: value, Comment: comment}, usedNext, true
}

// parseQuoted reads a leading single- or double-quoted string, returning
// its unescaped content and the remainder of the line.
func parseQuoted(s string) (value, tail string, ok bool) {
	if s == "" || (s[0] != '\'' && s[0] != '"') {
		return "", "", false
	}
	quote := s[0]
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			if i+1 >= len(s) {
				return "", "", false
			}
			i++
			b.WriteByte(s[i])
		case quote:
			return b.String(), s[i+1:], true
		default:
			b.WriteByte(c)
		}
	}
	return "", "", false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

// render rebuilds the block's source lines from scratch: entries sorted
// canonically, a blank separator whenever the label rank changes, extra
// lines re-emitted verbatim at the end.
func (b *Block) render() []string {
	entries := make([]Entry, len(b.Entries))
	copy(entries, b.Entries)

	labels := b.Labels()
	sort.SliceStable(entries, func(i, j int) bool {
		if labels {
			return sortkeys.CompareLabelsLoose(entries[i].Key, entries[j].Key) < 0
		}
		return sortkeys.Compare(entries[i].Key, entries[j].Key) < 0
	})

	lines := []string{"export const " + b.Name + " = {"}
	prevRank := -1
	for i, e := range entries {
		if labels {
			rank := sortkeys.RankLoose(e.Key)
			if i > 0 && rank != prevRank {
				lines = append(lines, "")
			}
			prevRank = rank
		}
		line := "  " + e.Key + ": " + tsQuote(e.Value) + ","
		if e.Comment != "" {
			line += " // " + e.Comment
		}
		lines = append(lines, line)
	}
	lines = append(lines, b.Extra...)
	lines = append(lines, "} as const;")
	return lines
}

// tsQuote renders a single-quoted TypeScript string literal.
func tsQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// docComment renders the header comment for a newly appended block.
func docComment(domain, category string) []string {
	return []string{
		"/**",
		fmt.Sprintf(" * %s %s message keys.", domain, category),
		" */",
	}
}

// ReplaceBlock swaps the named block's source text for the block's
// regenerated form.
func (f *File) ReplaceBlock(b *Block) error {
	_, start, end, err := f.findBlock(b.Name)
	if err != nil {
		return err
	}
	out := make([]string, 0, len(f.lines))
	out = append(out, f.lines[:start]...)
	out = append(out, b.render()...)
	out = append(out, f.lines[end+1:]...)
	f.lines = out
	return nil
}

// AppendBlock adds a brand-new block at the end of the file, preceded by a
// doc comment naming its domain and category.
func (f *File) AppendBlock(b *Block, domain, category string) {
	if len(f.lines) > 0 {
		f.lines = append(f.lines, "")
	}
	f.lines = append(f.lines, docComment(domain, category)...)
	f.lines = append(f.lines, b.render()...)
	f.noFinalNewline = false
}
