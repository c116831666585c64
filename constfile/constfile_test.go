package constfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const authMessages = `import type { MessageKey } from '@/lib/i18n';

/**
 * auth errors message keys.
 */
export const AUTH_ERRORS = {
  invalidEmail: 'errors.invalid-email',
  sessionExpired:
    'errors.session-expired',
  // stale wiring, keep until cleanup
  weakPassword: 'errors.weak-password', // shown on the signup form
} as const;

export const AUTH_LABELS = {
  loginTitle: 'labels.login-title',

  emailLabel: 'labels.email-label',
  passwordLabel: 'labels.password-label',

  loginButton: 'labels.login-button',
} as const;
`

func writeFixture(t *testing.T, content string) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "messages.ts")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return f
}

func TestFindBlockParsesBothShapes(t *testing.T) {
	f := writeFixture(t, authMessages)

	b, err := f.FindBlock("AUTH_ERRORS")
	if err != nil {
		t.Fatalf("FindBlock: %v", err)
	}
	if len(b.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(b.Entries))
	}
	if b.Entries[0].Key != "invalidEmail" || b.Entries[0].Value != "errors.invalid-email" {
		t.Fatalf("entry 0 = %+v", b.Entries[0])
	}
	// Two-line shape.
	if b.Entries[1].Key != "sessionExpired" || b.Entries[1].Value != "errors.session-expired" {
		t.Fatalf("entry 1 = %+v", b.Entries[1])
	}
	// Trailing comment survives parsing.
	if b.Entries[2].Comment != "shown on the signup form" {
		t.Fatalf("entry 2 comment = %q", b.Entries[2].Comment)
	}
	if len(b.Extra) != 0 {
		t.Fatalf("extra = %v", b.Extra)
	}
}

func TestFindBlockMissing(t *testing.T) {
	f := writeFixture(t, authMessages)
	_, err := f.FindBlock("AUTH_SUCCESS")
	var nf *BlockNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want BlockNotFoundError", err)
	}
}

func TestFindBlockUnterminated(t *testing.T) {
	f := writeFixture(t, "export const BAD_ERRORS = {\n  a: 'x',\n")
	_, err := f.FindBlock("BAD_ERRORS")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
}

func TestAddEntrySortsAndKeepsComments(t *testing.T) {
	f := writeFixture(t, authMessages)
	if err := f.AddEntry("AUTH_ERRORS", "accountLocked", "errors.account-locked", "auth", "errors"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}

	b, err := f.FindBlock("AUTH_ERRORS")
	if err != nil {
		t.Fatalf("FindBlock after add: %v", err)
	}
	if len(b.Entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(b.Entries))
	}
	if b.Entries[0].Key != "accountLocked" {
		t.Fatalf("first entry = %s, want accountLocked (alphabetical)", b.Entries[0].Key)
	}
	if !strings.Contains(f.Text(), "// shown on the signup form") {
		t.Fatal("trailing comment lost on rewrite")
	}
}

func TestAddEntryCreatesBlockWithDocComment(t *testing.T) {
	f := writeFixture(t, authMessages)
	if err := f.AddEntry("AUTH_SUCCESS", "loginOk", "success.login-ok", "auth", "success"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	text := f.Text()
	if !strings.Contains(text, " * auth success message keys.") {
		t.Fatalf("doc comment missing:\n%s", text)
	}
	if !strings.Contains(text, "export const AUTH_SUCCESS = {\n  loginOk: 'success.login-ok',\n} as const;") {
		t.Fatalf("new block missing:\n%s", text)
	}
}

func TestDeleteEntryDistinguishesErrors(t *testing.T) {
	f := writeFixture(t, authMessages)

	var bnf *BlockNotFoundError
	if err := f.DeleteEntry("AUTH_SUCCESS", "whatever"); !errors.As(err, &bnf) {
		t.Fatalf("error = %v, want BlockNotFoundError", err)
	}

	var enf *EntryNotFoundError
	if err := f.DeleteEntry("AUTH_ERRORS", "nope"); !errors.As(err, &enf) {
		t.Fatalf("error = %v, want EntryNotFoundError", err)
	}

	if err := f.DeleteEntry("AUTH_ERRORS", "weakPassword"); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	b, _ := f.FindBlock("AUTH_ERRORS")
	if b.Find("weakPassword") >= 0 {
		t.Fatal("entry still present after delete")
	}
}

func TestMergeValues(t *testing.T) {
	f := writeFixture(t, authMessages)
	updated, missing, err := f.MergeValues("AUTH_ERRORS", map[string]string{
		"invalidEmail":  "errors.invalid-email-address", // drifted
		"weakPassword":  "errors.weak-password",         // unchanged
		"accountLocked": "errors.account-locked",        // absent: report only
	})
	if err != nil {
		t.Fatalf("MergeValues: %v", err)
	}
	if len(updated) != 1 || updated[0] != "invalidEmail" {
		t.Fatalf("updated = %v", updated)
	}
	if len(missing) != 1 || missing[0] != "accountLocked" {
		t.Fatalf("missing = %v", missing)
	}

	b, _ := f.FindBlock("AUTH_ERRORS")
	if i := b.Find("invalidEmail"); b.Entries[i].Value != "errors.invalid-email-address" {
		t.Fatalf("value not updated: %+v", b.Entries[i])
	}
	if b.Find("accountLocked") >= 0 {
		t.Fatal("missing entry must not be auto-inserted")
	}
}

func TestLabelBlockSeparators(t *testing.T) {
	f := writeFixture(t, authMessages)
	b, err := f.FindBlock("AUTH_LABELS")
	if err != nil {
		t.Fatalf("FindBlock: %v", err)
	}
	if err := f.ReplaceBlock(b); err != nil {
		t.Fatalf("ReplaceBlock: %v", err)
	}

	want := `export const AUTH_LABELS = {
  loginTitle: 'labels.login-title',

  emailLabel: 'labels.email-label',
  passwordLabel: 'labels.password-label',

  loginButton: 'labels.login-button',
} as const;`
	if !strings.Contains(f.Text(), want) {
		t.Fatalf("label block:\n%s\nwant to contain:\n%s", f.Text(), want)
	}
}

func TestResortIdempotent(t *testing.T) {
	f := writeFixture(t, authMessages)
	if _, err := f.ResortBlocks(); err != nil {
		t.Fatalf("ResortBlocks: %v", err)
	}
	first := f.Text()
	if _, err := f.ResortBlocks(); err != nil {
		t.Fatalf("ResortBlocks: %v", err)
	}
	if f.Text() != first {
		t.Fatal("second resort changed the output")
	}
}

func TestUnparsedLinesPreserved(t *testing.T) {
	src := `export const COMMON_LABELS = {
  pageTitle: 'labels.page-title',
  ...SHARED_LABELS,
} as const;
`
	f := writeFixture(t, src)
	b, err := f.FindBlock("COMMON_LABELS")
	if err != nil {
		t.Fatalf("FindBlock: %v", err)
	}
	if len(b.Extra) != 1 {
		t.Fatalf("extra = %v", b.Extra)
	}
	if err := f.ReplaceBlock(b); err != nil {
		t.Fatalf("ReplaceBlock: %v", err)
	}
	if !strings.Contains(f.Text(), "...SHARED_LABELS,") {
		t.Fatalf("spread line lost:\n%s", f.Text())
	}
}

func TestBlockNames(t *testing.T) {
	f := writeFixture(t, authMessages)
	names := f.BlockNames()
	if len(names) != 2 || names[0] != "AUTH_ERRORS" || names[1] != "AUTH_LABELS" {
		t.Fatalf("names = %v", names)
	}
}
