package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestStyle_Fallbacks(t *testing.T) {
	th := Default()
	got, want := th.Style("StatusBar.unknown"), th.Style(StyleStatusBar)
	if got != want {
		t.Fatalf("dotted fallback: got %v, want %v", got, want)
	}
	got, want = th.Style("nothing"), th.Style(StyleDefault)
	if got != want {
		t.Fatalf("default fallback: got %v, want %v", got, want)
	}
	var nilTheme *Theme
	if nilTheme.Style(StyleDefault) != tcell.StyleDefault {
		t.Fatalf("nil theme should give tcell default")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	if err != nil || c != tcell.NewHexColor(0xff0000) {
		t.Fatalf("hex: got %v, %v", c, err)
	}
	c, err = ParseColor("Red")
	if err != nil || c != tcell.ColorRed {
		t.Fatalf("name: got %v, %v", c, err)
	}
	if _, err := ParseColor("#fff"); err == nil {
		t.Fatalf("short hex should fail")
	}
	if _, err := ParseColor("octarine"); err == nil {
		t.Fatalf("unknown name should fail")
	}
}

func TestBuild_Overrides(t *testing.T) {
	th := Build(Config{
		Name: "mine",
		Styles: map[string]StyleDef{
			StyleGutter:   {Fg: strp("red"), Bold: boolp(true)},
			StylePrompt:   {Fg: strp("not-a-color")},
			"Custom.name": {Underline: boolp(true)},
		},
	})
	if th.Name != "mine" {
		t.Fatalf("name = %q", th.Name)
	}
	fg, _, attrs := th.Style(StyleGutter).Decompose()
	if fg != tcell.ColorRed || attrs&tcell.AttrBold == 0 {
		t.Fatalf("gutter override not applied: fg=%v attrs=%v", fg, attrs)
	}
	if th.Style(StylePrompt) != Default().Style(StylePrompt) {
		t.Fatalf("invalid style should leave the built-in one")
	}
	if _, ok := th.Styles["Custom.name"]; !ok {
		t.Fatalf("new style not added")
	}
}

func TestBuild_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "light.toml")
	data := "[styles.Default]\nfg = \"#000000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	th := Build(Config{File: path})
	if th.Name != "light" {
		t.Fatalf("name from file name: got %q", th.Name)
	}
	fg, _, _ := th.Style(StyleDefault).Decompose()
	if fg != tcell.NewHexColor(0) {
		t.Fatalf("default fg = %v", fg)
	}

	// A missing file is logged and ignored.
	th = Build(Config{File: filepath.Join(t.TempDir(), "missing.toml")})
	if th.Name != Default().Name {
		t.Fatalf("missing file changed the theme: %q", th.Name)
	}
}
