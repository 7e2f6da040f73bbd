package keyboard

// RuleFlags qualify a keymap rule.
type RuleFlags uint8

const (
	// FlagAlphabetic makes the code case-fold with Shift xor CapsLock.
	FlagAlphabetic RuleFlags = 1 << iota
	// FlagShift requires Shift to be held.
	FlagShift
	// FlagNumLock requires NumLock to be on.
	FlagNumLock
	// FlagCtrl requires Ctrl to be held.
	FlagCtrl
	// FlagTable takes the code from the rule's table instead of Base.
	FlagTable
)

// NoCode in a rule table marks a key with no output.
const NoCode byte = 0xff

// Rule maps the scancodes First..Last to output codes. Without FlagTable the
// code is key - First + Base; with it the code is Table[key - First].
type Rule struct {
	First uint8
	Last  uint8
	Base  byte
	Table string
	Flags RuleFlags
}

func (r Rule) contains(key uint8) bool {
	return key >= r.First && key <= r.Last
}

// Keymap is an ordered rule list. The first matching rule wins.
type Keymap []Rule

// KeyState is the modifier and lock state a lookup runs against.
type KeyState struct {
	Shift    bool
	Ctrl     bool
	Alt      bool
	NumLock  bool
	CapsLock bool
}

// Lookup returns the output code for key under st, or false when no rule
// produces one.
func (m Keymap) Lookup(key uint8, st KeyState) (byte, bool) {
	for _, r := range m {
		if !r.contains(key) {
			continue
		}
		if r.Flags&FlagShift != 0 && !st.Shift {
			continue
		}
		if r.Flags&FlagNumLock != 0 && !st.NumLock {
			continue
		}
		if r.Flags&FlagCtrl != 0 && !st.Ctrl {
			continue
		}

		var code byte
		if r.Flags&FlagTable != 0 {
			idx := int(key - r.First)
			if idx >= len(r.Table) {
				return 0, false
			}
			code = r.Table[idx]
			if code == NoCode {
				return 0, false
			}
		} else {
			code = key - r.First + r.Base
		}

		if r.Flags&FlagAlphabetic != 0 && st.Shift != st.CapsLock {
			code ^= 'a' ^ 'A'
		}
		if st.Ctrl {
			code &= 0x1f
		}
		if st.Alt {
			code ^= 0x80
		}
		return code, true
	}
	return 0, false
}

// Cursor keys produce ADM-3A style control codes.
const (
	codeRight = 0x0c
	codeLeft  = 0x08
	codeDown  = 0x0a
	codeUp    = 0x0b
)

var (
	usShiftedDigits = "!@#$%^&*()"
	usSymbols       = "\r\x1b\b\t -=[]\\#;'`,./"
	usShiftSymbols  = "\n\x1b\x7f\t _+{}|~:\"~<>?"
	usArrows        = string([]byte{codeRight, codeLeft, codeDown, codeUp})
	usKeypadNum     = "/*-+\n1234567890."
	usKeypad        = string([]byte{
		'/', '*', '-', '+', '\n',
		NoCode, codeDown, NoCode, codeLeft, NoCode, codeRight, NoCode, codeUp, NoCode,
		NoCode, '.',
	})
)

// USKeymap returns the US layout.
func USKeymap() Keymap {
	return Keymap{
		{First: KeyA, Last: KeyZ, Base: 'a', Flags: FlagAlphabetic},
		{First: Key1, Last: Key9, Table: usShiftedDigits, Flags: FlagShift | FlagTable},
		{First: Key1, Last: Key9, Base: '1'},
		{First: Key0, Last: Key0, Base: ')', Flags: FlagShift},
		{First: Key0, Last: Key0, Base: '0'},
		{First: KeyEnter, Last: KeyEnter, Base: '\n', Flags: FlagCtrl},
		{First: KeyEnter, Last: KeySlash, Table: usShiftSymbols, Flags: FlagShift | FlagTable},
		{First: KeyEnter, Last: KeySlash, Table: usSymbols, Flags: FlagTable},
		{First: KeyF1, Last: KeyF1, Base: 0x1e},
		{First: KeyRight, Last: KeyUp, Table: usArrows, Flags: FlagTable},
		{First: KeyKPDivide, Last: KeyKPDecimal, Table: usKeypadNum, Flags: FlagNumLock | FlagTable},
		{First: KeyKPDivide, Last: KeyKPDecimal, Table: usKeypad, Flags: FlagTable},
	}
}

// Layout selects the keymap and lock-key behavior.
type Layout struct {
	Name   string
	Keymap Keymap
	// CapsNeedsShift makes CapsLock toggle only with Shift held.
	CapsNeedsShift bool
}

// LayoutByName returns a supported layout: "us", or "jp", which uses the US
// keymap with Shift+CapsLock toggling.
func LayoutByName(name string) (Layout, error) {
	switch name {
	case "", "us":
		return Layout{Name: "us", Keymap: USKeymap()}, nil
	case "jp":
		return Layout{Name: "jp", Keymap: USKeymap(), CapsNeedsShift: true}, nil
	default:
		return Layout{}, ErrUnknownLayout
	}
}
