package terminal

import (
	"strings"
	"testing"

	"github.com/dshills/vtconsole/internal/display"
)

func TestParserPlainText(t *testing.T) {
	s := newTestSession(t, 10, 3)
	feed(s, "Hello")

	assertRows(t, s, "Hello     ")
	assertCursor(t, s, 0, 5)
}

func TestParserNewline(t *testing.T) {
	s := newTestSession(t, 10, 3)
	feed(s, "AB\nC\r\nD")

	assertRows(t, s, "AB        ", "  C       ", "D         ")
}

func TestParserBackspace(t *testing.T) {
	s := newTestSession(t, 10, 3)
	feed(s, "AB\bC")
	assertRows(t, s, "AC        ")

	feed(s, "\x7f")
	assertRows(t, s, "A         ")
	assertCursor(t, s, 0, 1)
}

func TestParserBackspaceWrapsToPreviousRow(t *testing.T) {
	s := newTestSession(t, 4, 3)
	feed(s, "abcd\r\n\b")

	assertRows(t, s, "abc ", "    ")
	assertCursor(t, s, 0, 3)
}

func TestParserBackspaceAtHome(t *testing.T) {
	s := newTestSession(t, 4, 2)
	feed(s, "x\r\b")

	assertRows(t, s, "    ")
	assertCursor(t, s, 0, 0)
}

func TestParserEscapedEscapePrints(t *testing.T) {
	s := newTestSession(t, 4, 1)
	feed(s, "\x1b\x1bA")

	if got := rowText(s, 0); got != "\x1bA  " {
		t.Errorf("row = %q, want %q", got, "\x1bA  ")
	}
}

func TestParserTooManyParams(t *testing.T) {
	s := newTestSession(t, 40, 5)

	sixteen := "\x1b[2;3" + strings.Repeat(";1", 14) + "H"
	feed(s, sixteen)
	assertCursor(t, s, 1, 2)

	feed(s, "\x1b[H\x1b[2;3"+strings.Repeat(";1", 14)+";9H")
	assertCursor(t, s, 0, 2)
	if got := rowText(s, 0); !strings.HasPrefix(got, "9H") {
		t.Errorf("row 0 = %q, want the aborted tail printed as text", got)
	}
}

func TestParserParamSaturates(t *testing.T) {
	s := newTestSession(t, 10, 5)
	feed(s, "\x1b[99999999999999999999;3H")
	assertCursor(t, s, 4, 2)
}

func TestParserControlsInsideSequence(t *testing.T) {
	s := newTestSession(t, 10, 5)
	feed(s, "abc\x1b[2\r;5H")

	assertCursor(t, s, 1, 4)

	// The line feed runs mid-sequence and 'B' still completes it.
	feed(s, "\x1b[\nB")
	assertCursor(t, s, 3, 4)
	assertRows(t, s, "abc       ", "          ", "          ", "          ")
}

func TestParserVTIgnoresNextByte(t *testing.T) {
	s := newTestSession(t, 10, 2)
	feed(s, "\x1b[\x0bXY")

	assertRows(t, s, "Y         ")
}

func TestParserUnknownSequencesAreIgnored(t *testing.T) {
	s := newTestSession(t, 10, 2)
	feed(s, "\x1b[5y\x1b~\x1b#9ok")

	assertRows(t, s, "ok        ")
}

func TestParserDesignateCharset(t *testing.T) {
	tests := []struct {
		in string
		g0 Charset
		g1 Charset
	}{
		{"\x1b(A", CharsetUK, CharsetGraphics},
		{"\x1b(0", CharsetGraphics, CharsetGraphics},
		{"\x1b)B", CharsetUS, CharsetUS},
		{"\x1b)1", CharsetUS, CharsetUS},
		{"\x1b)2", CharsetUS, CharsetGraphics},
		{"\x1b(Q", CharsetUS, CharsetGraphics},
		{"\x1b+A", CharsetUS, CharsetGraphics},
		{"\x1b*A", CharsetUS, CharsetGraphics},
		{"\x1b+0\x1b*A", CharsetUS, CharsetGraphics},
		{"\x1b*0x", CharsetUS, CharsetGraphics},
	}

	for _, tt := range tests {
		s := newTestSession(t, 4, 1)
		feed(s, tt.in)
		st := s.State()
		if st.G0 != tt.g0 || st.G1 != tt.g1 {
			t.Errorf("%q: G0, G1 = %v, %v, want %v, %v", tt.in, st.G0, st.G1, tt.g0, tt.g1)
		}
	}
}

func TestParserShiftOutIn(t *testing.T) {
	s := newTestSession(t, 4, 1)

	feed(s, "\x0e")
	if got := s.State().ActiveSlot; got != 1 {
		t.Errorf("ActiveSlot after SO = %d, want 1", got)
	}
	feed(s, "\x0f")
	if got := s.State().ActiveSlot; got != 0 {
		t.Errorf("ActiveSlot after SI = %d, want 0", got)
	}
}

func TestCharsetSubstitution(t *testing.T) {
	tests := []struct {
		name       string
		substitute bool
		in         string
		want       byte
	}{
		{"graphics line", true, "\x1b(0q", 0xc4},
		{"graphics corner via G1", true, "\x1b)0\x0el", 0xda},
		{"graphics outside range", true, "\x1b(0A", 'A'},
		{"uk pound", true, "\x1b(A#", 0x9c},
		{"disabled", false, "\x1b(0q", 'q'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 4, 1, WithCharsetSubstitution(tt.substitute))
			feed(s, tt.in)
			if got := cellAt(s, 0, 0).Glyph; got != tt.want {
				t.Errorf("glyph = %#02x, want %#02x", got, tt.want)
			}
		})
	}
}

func TestStripBit7(t *testing.T) {
	s := newTestSession(t, 4, 1, WithStripBit7(true))
	feed(s, "\xc1")

	if got := cellAt(s, 0, 0).Glyph; got != 'A' {
		t.Errorf("glyph = %q, want 'A'", got)
	}
}

func TestHashAlignmentFill(t *testing.T) {
	s := newTestSession(t, 3, 4)
	feed(s, "\x1b#8")
	assertRows(t, s, "EEE", "EEE", "EEE", "EEE")

	s = newTestSession(t, 3, 4)
	feed(s, "\x1b[2;3r\x1b[?6h\x1b#8")
	assertRows(t, s, "   ", "EEE", "EEE", "   ")
}

func TestHashLineAttributes(t *testing.T) {
	s := newTestSession(t, 4, 3)
	feed(s, "\x1b#6\n\x1b#3\n\x1b#4")

	want := []string{"double-width", "double-top", "double-bottom"}
	for y, w := range want {
		var got string
		s.View(func(g *display.Grid) { got = g.LineAttr(y).String() })
		if got != w {
			t.Errorf("LineAttr(%d) = %s, want %s", y, got, w)
		}
	}

	feed(s, "\x1b#5")
	var got string
	s.View(func(g *display.Grid) { got = g.LineAttr(2).String() })
	if got != "single" {
		t.Errorf("LineAttr(2) after ESC # 5 = %s, want single", got)
	}
}
