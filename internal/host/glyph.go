package host

import "golang.org/x/text/encoding/charmap"

// cp437Controls are the glyphs the IBM character ROM shows for 0x00-0x1f.
var cp437Controls = []rune(" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼")

// glyphRunes maps every glyph byte to the rune drawn for it.
var glyphRunes = buildGlyphRunes()

func buildGlyphRunes() [256]rune {
	var t [256]rune
	for i := range t {
		t[i] = charmap.CodePage437.DecodeByte(byte(i))
	}
	copy(t[:0x20], cp437Controls)
	t[0x7f] = '⌂'
	return t
}

// Glyph returns the rune for glyph byte b.
func Glyph(b byte) rune {
	return glyphRunes[b]
}
