package textobject

import (
	"testing"

	"github.com/bethropolis/ebb/internal/buffer"
)

const cursor buffer.Mark = "cursor:0"

func resolveAt(t *testing.T, text string, pos int, obj Object) buffer.Range {
	t.Helper()
	b := buffer.New(text, buffer.Options{})
	b.SetMark(cursor, pos)
	var r buffer.Range
	b.Read(func(src buffer.Reader) { r = Resolve(src, cursor, obj) })
	return r
}

func TestResolve_Table(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		obj  Object
		want buffer.Range
	}{
		{"char forward", "hello", 1, Object{Char, Fwd(2, "")}, buffer.Range{Start: 1, End: 3}},
		{"char forward clamps", "hello", 4, Object{Char, Fwd(9, "")}, buffer.Range{Start: 4, End: 5}},
		{"char backward clamps", "hello", 2, Object{Char, Back(9, "")}, buffer.Range{Start: 0, End: 2}},
		{"zero count is empty", "hello", 2, Object{Word, Fwd(0, "")}, buffer.Range{Start: 2, End: 2}},
		{"word forward eats blanks", "hello world foo", 0, Object{Word, Fwd(1, "")}, buffer.Range{Start: 0, End: 6}},
		{"word forward two", "hello world foo", 0, Object{Word, Fwd(2, "")}, buffer.Range{Start: 0, End: 12}},
		{"word forward from blanks", "a   b", 1, Object{Word, Fwd(1, "")}, buffer.Range{Start: 1, End: 4}},
		{"word forward mid word", "hello world", 2, Object{Word, Fwd(1, "")}, buffer.Range{Start: 2, End: 6}},
		{"word forward punctuation", "foo, bar", 0, Object{Word, Fwd(2, "")}, buffer.Range{Start: 0, End: 5}},
		{"word forward stops at newline", "ab\ncd", 0, Object{Word, Fwd(1, "")}, buffer.Range{Start: 0, End: 2}},
		{"word forward crosses newline", "ab\ncd", 2, Object{Word, Fwd(1, "")}, buffer.Range{Start: 2, End: 3}},
		{"word backward", "hello world foo", 12, Object{Word, Back(1, "")}, buffer.Range{Start: 6, End: 12}},
		{"word backward mid word", "hello world", 8, Object{Word, Back(1, "")}, buffer.Range{Start: 6, End: 8}},
		{"word backward two", "hello world foo", 15, Object{Word, Back(2, "")}, buffer.Range{Start: 6, End: 15}},
		{"word backward over newline", "ab\ncd", 3, Object{Word, Back(1, "")}, buffer.Range{Start: 2, End: 3}},
		{"word backward to indent", "ab\n  cd", 5, Object{Word, Back(1, "")}, buffer.Range{Start: 3, End: 5}},
		{"word unicode", "héllo wörld", 0, Object{Word, Fwd(1, "")}, buffer.Range{Start: 0, End: 6}},
		{"line forward", "ab\ncd\nef", 1, Object{Line, Fwd(1, "")}, buffer.Range{Start: 1, End: 3}},
		{"line forward past end", "ab\ncd", 4, Object{Line, Fwd(3, "")}, buffer.Range{Start: 4, End: 5}},
		{"line backward", "ab\ncd\nef", 4, Object{Line, Back(1, "")}, buffer.Range{Start: 3, End: 4}},
		{"line backward two", "ab\ncd\nef", 4, Object{Line, Back(2, "")}, buffer.Range{Start: 0, End: 4}},
		{"line end", "ab\ncd", 0, Object{LineEnd, Fwd(5, "")}, buffer.Range{Start: 0, End: 2}},
		{"line start", "ab\ncd", 4, Object{LineStart, Back(5, "")}, buffer.Range{Start: 3, End: 4}},
		{"absolute char", "abc", 0, Object{Char, At(1)}, buffer.Range{Start: 1, End: 2}},
		{"absolute word", "hello world", 0, Object{Word, At(8)}, buffer.Range{Start: 6, End: 11}},
		{"absolute blanks", "a   b", 0, Object{Word, At(2)}, buffer.Range{Start: 1, End: 4}},
		{"absolute line", "ab\ncd\nef", 0, Object{Line, At(4)}, buffer.Range{Start: 3, End: 6}},
		{"absolute last line", "ab\ncd", 0, Object{Line, At(4)}, buffer.Range{Start: 2, End: 5}},
		{"absolute only line", "abc", 0, Object{Line, At(1)}, buffer.Range{Start: 0, End: 3}},
		{"absolute clamps", "abc", 0, Object{Char, At(50)}, buffer.Range{Start: 3, End: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveAt(t, tt.text, tt.pos, tt.obj)
			if got != tt.want {
				t.Fatalf("Resolve(%q @%d, %s) = %+v, want %+v", tt.text, tt.pos, tt.obj, got, tt.want)
			}
		})
	}
}

func TestResolve_ExplicitMark(t *testing.T) {
	b := buffer.New("hello", buffer.Options{})
	b.SetMark(cursor, 0)
	b.SetMark("other", 4)
	var r buffer.Range
	b.Read(func(src buffer.Reader) { r = Resolve(src, cursor, Object{Char, Back(1, "other")}) })
	if want := (buffer.Range{Start: 3, End: 4}); r != want {
		t.Fatalf("got %+v, want %+v", r, want)
	}
}

// Backward(n) and Forward(n) around one mark meet at the mark and together
// cover the neighbourhood without overlap.
func TestResolve_BackwardForwardAdjacent(t *testing.T) {
	text := "one two\n  three, four\n\nfive"
	runes := []rune(text)
	for _, kind := range []Kind{Char, Word, Line} {
		for pos := 0; pos <= len(runes); pos++ {
			for n := 0; n <= 4; n++ {
				back := resolveAt(t, text, pos, Object{kind, Back(n, "")})
				fwd := resolveAt(t, text, pos, Object{kind, Fwd(n, "")})
				if back.End != pos || fwd.Start != pos {
					t.Fatalf("%s n=%d pos=%d: back=%+v fwd=%+v do not meet at pos", kind, n, pos, back, fwd)
				}
				if back.Start > back.End || fwd.Start > fwd.End {
					t.Fatalf("%s n=%d pos=%d: inverted range back=%+v fwd=%+v", kind, n, pos, back, fwd)
				}
				if kind == Char {
					if got, want := back.Len(), minInt(n, pos); got != want {
						t.Fatalf("char back len %d, want %d", got, want)
					}
					if got, want := fwd.Len(), minInt(n, len(runes)-pos); got != want {
						t.Fatalf("char fwd len %d, want %d", got, want)
					}
				}
				if n == 0 && (!back.Empty() || !fwd.Empty()) {
					t.Fatalf("%s n=0 pos=%d: expected empty ranges", kind, pos)
				}
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestDestination(t *testing.T) {
	r := buffer.Range{Start: 2, End: 7}
	cases := []struct {
		obj  Object
		want int
	}{
		{Object{Word, Fwd(1, "")}, 7},
		{Object{Word, Back(1, "")}, 2},
		{Object{LineStart, Fwd(1, "")}, 2},
		{Object{LineEnd, Back(1, "")}, 7},
		{Object{Line, At(3)}, 2},
	}
	for _, c := range cases {
		if got := Destination(c.obj, r); got != c.want {
			t.Errorf("Destination(%s) = %d, want %d", c.obj, got, c.want)
		}
	}
}
