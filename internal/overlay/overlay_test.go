package overlay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/ebb/internal/key"
)

var (
	enter = key.Named(key.CodeEnter)
	bs    = key.Named(key.CodeBackspace)
	tab   = key.Named(key.CodeTab)
	esc   = key.Named(key.CodeEsc)
)

func typeText(o *Overlay, s string) {
	for _, r := range s {
		o.HandleKey(key.Rune(r))
	}
}

func TestPrompt_ConfirmHi(t *testing.T) {
	o := New(Prompt, nil)
	for _, k := range []key.Key{key.Rune('h'), key.Rune('i')} {
		if ev := o.HandleKey(k); ev.Finished {
			t.Fatalf("finished early on %s", k)
		}
	}
	ev := o.HandleKey(enter)
	if !ev.Finished || !ev.OK || ev.Text != "hi" {
		t.Fatalf("got %+v, want finished OK \"hi\"", ev)
	}
}

func TestPrompt_CancelKeys(t *testing.T) {
	for _, cancel := range []key.Key{esc, key.Ctrl('c'), key.Ctrl('g')} {
		o := New(SavePrompt, nil)
		typeText(&o, "notes.txt")
		ev := o.HandleKey(cancel)
		if !ev.Finished || ev.OK || ev.Text != "" {
			t.Fatalf("%s: got %+v, want finished without result", cancel, ev)
		}
	}
	// Cancel works on an empty prompt too.
	o := New(Prompt, nil)
	if ev := o.HandleKey(esc); !ev.Finished || ev.OK {
		t.Fatalf("got %+v", ev)
	}
}

func TestPrompt_BackspaceAndBlankConfirm(t *testing.T) {
	o := New(Prompt, nil)
	typeText(&o, "wé")
	o.HandleKey(bs)
	if got, want := o.Text(), "w"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	o.HandleKey(bs)
	o.HandleKey(bs) // on empty text: stays open
	if ev := o.HandleKey(enter); ev.Finished {
		t.Fatalf("blank confirm finished: %+v", ev)
	}
	typeText(&o, "   ")
	if ev := o.HandleKey(enter); ev.Finished {
		t.Fatalf("whitespace-only confirm finished: %+v", ev)
	}
	if !o.Active() {
		t.Fatalf("prompt closed")
	}
}

func TestPrompt_ConfirmKeepsSurroundingSpaces(t *testing.T) {
	o := New(SavePrompt, nil)
	typeText(&o, " notes .txt ")
	ev := o.HandleKey(enter)
	if got, want := ev.Text, " notes .txt "; !ev.Finished || !ev.OK || got != want {
		t.Fatalf("got %+v, want finished OK %q", ev, want)
	}
}

func TestPrompt_IgnoresControlKeys(t *testing.T) {
	o := New(Prompt, nil)
	typeText(&o, "ab")
	o.HandleKey(key.Ctrl('x'))
	o.HandleKey(key.Named(key.CodeLeft))
	if got, want := o.Line(), ":ab"; got != want {
		t.Fatalf("Line() = %q, want %q", got, want)
	}
	o.HandleKey(key.Ctrl('u'))
	if o.Text() != "" {
		t.Fatalf("ctrl-u should clear, got %q", o.Text())
	}
}

func TestNone_IsInert(t *testing.T) {
	var o Overlay
	if o.Active() {
		t.Fatalf("zero overlay should be inactive")
	}
	if ev := o.HandleKey(key.Rune('x')); ev != (Event{}) {
		t.Fatalf("got %+v", ev)
	}
	if o.Text() != "" {
		t.Fatalf("None accumulated text")
	}
}

func TestTabCompletion(t *testing.T) {
	complete := func(prefix string) []string {
		all := []string{"main.go", "main_test.go", "makefile"}
		var out []string
		for _, s := range all {
			if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
				out = append(out, s)
			}
		}
		return out
	}
	o := New(SelectFile, complete)
	typeText(&o, "mai")
	o.HandleKey(tab)
	if got, want := o.Text(), "main"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	typeText(&o, "_")
	o.HandleKey(tab)
	if got, want := o.Text(), "main_test.go"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	// The command line does not complete paths.
	p := New(Prompt, complete)
	typeText(&p, "mai")
	p.HandleKey(tab)
	if p.Text() != "mai" {
		t.Fatalf("prompt completed to %q", p.Text())
	}

	// A nil completer ignores tab.
	n := New(SavePrompt, nil)
	typeText(&n, "x")
	n.HandleKey(tab)
	if n.Text() != "x" {
		t.Fatalf("nil completer changed text to %q", n.Text())
	}
}

func TestPathCompleter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "alps.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "album"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := PathCompleter(dir)("alp")
	if len(got) != 2 || got[0] != "alpha.txt" || got[1] != "alps.md" {
		t.Fatalf("completions = %q", got)
	}
	got = PathCompleter(dir)("alb")
	if want := "album" + string(filepath.Separator); len(got) != 1 || got[0] != want {
		t.Fatalf("completions = %q, want [%q]", got, want)
	}
	if got := PathCompleter(dir)("zzz"); len(got) != 0 {
		t.Fatalf("completions = %q, want none", got)
	}
}

func TestPathCompleter_Directories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", filepath.Join("sub", "main.go")} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	sep := string(filepath.Separator)
	complete := PathCompleter(dir)

	got := complete("sub" + sep)
	if want := "sub" + sep + "main.go"; len(got) != 1 || got[0] != want {
		t.Fatalf("complete(sub/) = %q, want [%q]", got, want)
	}
	got = complete("sub" + sep + "m")
	if want := "sub" + sep + "main.go"; len(got) != 1 || got[0] != want {
		t.Fatalf("complete(sub/m) = %q, want [%q]", got, want)
	}
	got = complete("")
	if len(got) != 2 || got[0] != "notes.txt" || got[1] != "sub"+sep {
		t.Fatalf("complete(\"\") = %q, want [notes.txt sub%s]", got, sep)
	}

	// An absolute prefix ignores dir.
	got = PathCompleter("")(dir + sep + "no")
	if want := dir + sep + "notes.txt"; len(got) != 1 || got[0] != want {
		t.Fatalf("absolute completion = %q, want [%q]", got, want)
	}

	// Tab walks into the directory and then onto its only file.
	o := New(SelectFile, complete)
	typeText(&o, "su")
	o.HandleKey(tab)
	if got, want := o.Text(), "sub"+sep; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
	o.HandleKey(tab)
	if got, want := o.Text(), "sub"+sep+"main.go"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}
}
