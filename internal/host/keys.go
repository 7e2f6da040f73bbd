package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vtconsole/internal/keyboard"
)

type keyStroke struct {
	usage uint8
	shift bool
}

// runeKeys maps printable ASCII to US layout key strokes.
var runeKeys = buildRuneKeys()

func buildRuneKeys() map[rune]keyStroke {
	m := make(map[rune]keyStroke, 96)
	for i := 0; i < 26; i++ {
		m[rune('a'+i)] = keyStroke{keyboard.KeyA + uint8(i), false}
		m[rune('A'+i)] = keyStroke{keyboard.KeyA + uint8(i), true}
	}
	for i, r := range "1234567890" {
		m[r] = keyStroke{keyboard.Key1 + uint8(i), false}
	}
	for i, r := range "!@#$%^&*()" {
		m[r] = keyStroke{keyboard.Key1 + uint8(i), true}
	}

	plain := []struct {
		usage   uint8
		base    rune
		shifted rune
	}{
		{keyboard.KeySpace, ' ', 0},
		{keyboard.KeyMinus, '-', '_'},
		{keyboard.KeyEqual, '=', '+'},
		{keyboard.KeyBracketL, '[', '{'},
		{keyboard.KeyBracketR, ']', '}'},
		{keyboard.KeyBackslash, '\\', '|'},
		{keyboard.KeySemicolon, ';', ':'},
		{keyboard.KeyApostrophe, '\'', '"'},
		{keyboard.KeyGrave, '`', '~'},
		{keyboard.KeyComma, ',', '<'},
		{keyboard.KeyPeriod, '.', '>'},
		{keyboard.KeySlash, '/', '?'},
	}
	for _, p := range plain {
		m[p.base] = keyStroke{p.usage, false}
		if p.shifted != 0 {
			m[p.shifted] = keyStroke{p.usage, true}
		}
	}
	return m
}

// specialKeys maps tcell's named keys to key usages.
var specialKeys = map[tcell.Key]uint8{
	tcell.KeyEnter:      keyboard.KeyEnter,
	tcell.KeyEscape:     keyboard.KeyEscape,
	tcell.KeyBackspace:  keyboard.KeyBackspace,
	tcell.KeyBackspace2: keyboard.KeyBackspace,
	tcell.KeyTab:        keyboard.KeyTab,
	tcell.KeyRight:      keyboard.KeyRight,
	tcell.KeyLeft:       keyboard.KeyLeft,
	tcell.KeyDown:       keyboard.KeyDown,
	tcell.KeyUp:         keyboard.KeyUp,
	tcell.KeyF1:         keyboard.KeyF1,
}

// Reports translates a host key event into a press report and a release
// report. It returns nil for keys with no boot keyboard equivalent.
func Reports(ev *tcell.EventKey) []keyboard.Report {
	var mod keyboard.Modifier
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mod = mod.With(keyboard.ModLeftAlt)
	}

	var usage uint8
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		ks, ok := runeKeys[ev.Rune()]
		if !ok {
			return nil
		}
		usage = ks.usage
		if ks.shift {
			mod = mod.With(keyboard.ModLeftShift)
		}
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && !isNamedControl(k):
		usage = keyboard.KeyA + uint8(k-tcell.KeyCtrlA)
		mod = mod.With(keyboard.ModLeftCtrl)
	default:
		u, ok := specialKeys[k]
		if !ok {
			return nil
		}
		usage = u
		if ev.Modifiers()&tcell.ModShift != 0 {
			mod = mod.With(keyboard.ModLeftShift)
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mod = mod.With(keyboard.ModLeftCtrl)
		}
	}

	return []keyboard.Report{
		keyboard.NewReport(mod, usage),
		keyboard.NewReport(0),
	}
}

// isNamedControl reports whether k aliases a key with its own usage: tcell
// reports Tab, Enter and Backspace as Ctrl+I, Ctrl+M and Ctrl+H.
func isNamedControl(k tcell.Key) bool {
	_, ok := specialKeys[k]
	return ok
}
