package terminal

// Charset is the character set designated into a G slot.
type Charset uint8

const (
	// CharsetUS is plain US ASCII.
	CharsetUS Charset = iota
	// CharsetUK replaces '#' with the pound sign.
	CharsetUK
	// CharsetGraphics is the DEC special graphics (line drawing) set.
	CharsetGraphics
)

// String returns the charset name.
func (c Charset) String() string {
	switch c {
	case CharsetUS:
		return "US"
	case CharsetUK:
		return "UK"
	case CharsetGraphics:
		return "graphics"
	default:
		return "unknown"
	}
}

// charsetFor maps the final byte of a designation sequence to a charset.
func charsetFor(c byte) Charset {
	switch c {
	case 'A':
		return CharsetUK
	case '0', '2':
		return CharsetGraphics
	default:
		return CharsetUS
	}
}

// Code Page 437 glyphs used when substitution is enabled.
const cp437Pound = 0x9c

// decGraphics maps DEC special graphics 0x5f..0x7e to Code Page 437.
var decGraphics = [32]byte{
	0x20, // _ blank
	0x04, // ` diamond
	0xb1, // a checkerboard
	0xf9, // b HT
	0xf9, // c FF
	0xf9, // d CR
	0xf9, // e LF
	0xf8, // f degree
	0xf1, // g plus/minus
	0xf9, // h NL
	0xf9, // i VT
	0xd9, // j lower right corner
	0xbf, // k upper right corner
	0xda, // l upper left corner
	0xc0, // m lower left corner
	0xc5, // n crossing lines
	0xc4, // o scan line 1
	0xc4, // p scan line 3
	0xc4, // q horizontal line
	0xc4, // r scan line 7
	0x5f, // s scan line 9
	0xc3, // t left tee
	0xb4, // u right tee
	0xc1, // v bottom tee
	0xc2, // w top tee
	0xb3, // x vertical line
	0xf3, // y less or equal
	0xf2, // z greater or equal
	0xe3, // { pi
	0xd8, // | not equal
	0x9c, // } pound
	0xfa, // ~ centered dot
}

// substitute returns the glyph to store for c printed through cs.
func substitute(cs Charset, c byte) byte {
	switch cs {
	case CharsetUK:
		if c == '#' {
			return cp437Pound
		}
	case CharsetGraphics:
		if c >= 0x5f && c <= 0x7e {
			return decGraphics[c-0x5f]
		}
	}
	return c
}
