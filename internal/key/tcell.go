package key

import "github.com/gdamore/tcell/v2"

// tcellCodes maps tcell special keys onto named codes. Backspace, tab,
// enter and escape share values with ctrl-h, ctrl-i, ctrl-m and ctrl-[ so
// they are looked up before the generic ctrl-letter range.
var tcellCodes = map[tcell.Key]Code{
	tcell.KeyEnter:      CodeEnter,
	tcell.KeyTab:        CodeTab,
	tcell.KeyBackspace:  CodeBackspace,
	tcell.KeyBackspace2: CodeBackspace,
	tcell.KeyDelete:     CodeDelete,
	tcell.KeyEscape:     CodeEsc,
	tcell.KeyUp:         CodeUp,
	tcell.KeyDown:       CodeDown,
	tcell.KeyLeft:       CodeLeft,
	tcell.KeyRight:      CodeRight,
	tcell.KeyHome:       CodeHome,
	tcell.KeyEnd:        CodeEnd,
	tcell.KeyPgUp:       CodePgUp,
	tcell.KeyPgDn:       CodePgDn,
	tcell.KeyInsert:     CodeInsert,
	tcell.KeyF1:         CodeF1,
	tcell.KeyF2:         CodeF2,
	tcell.KeyF3:         CodeF3,
	tcell.KeyF4:         CodeF4,
	tcell.KeyF5:         CodeF5,
	tcell.KeyF6:         CodeF6,
	tcell.KeyF7:         CodeF7,
	tcell.KeyF8:         CodeF8,
	tcell.KeyF9:         CodeF9,
	tcell.KeyF10:        CodeF10,
	tcell.KeyF11:        CodeF11,
	tcell.KeyF12:        CodeF12,
}

// FromTcell converts a tcell key event. The second result is false for keys
// the editor has no name for.
func FromTcell(ev *tcell.EventKey) (Key, bool) {
	var mod Mod
	m := ev.Modifiers()
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}

	k := ev.Key()
	if k == tcell.KeyRune {
		// Shift is already folded into the rune.
		return Key{Code: CodeRune, Rune: ev.Rune(), Mod: mod &^ ModShift}, true
	}
	if c, ok := tcellCodes[k]; ok {
		return Key{Code: c, Mod: mod}, true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return Key{Code: CodeRune, Rune: r, Mod: (mod | ModCtrl) &^ ModShift}, true
	}
	if k == tcell.KeyCtrlSpace {
		return Key{Code: CodeRune, Rune: ' ', Mod: mod | ModCtrl}, true
	}
	return Key{}, false
}
