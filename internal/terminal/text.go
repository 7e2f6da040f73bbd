package terminal

import "github.com/dshills/vtconsole/internal/display"

// Control characters handled in text processing.
const (
	ctrlENQ = 0x05
	ctrlBEL = 0x07
	ctrlBS  = 0x08
	ctrlHT  = 0x09
	ctrlLF  = 0x0a
	ctrlVT  = 0x0b
	ctrlFF  = 0x0c
	ctrlCR  = 0x0d
	ctrlSO  = 0x0e
	ctrlSI  = 0x0f
	ctrlESC = 0x1b
	ctrlDEL = 0x7f
)

// processText handles a byte outside of any escape sequence.
func (s *Session) processText(c byte) {
	switch c {
	case ctrlENQ:
		if s.answerback != "" {
			s.sendReply([]byte(s.answerback))
		}

	case ctrlBEL:
		if s.bell != nil {
			s.bell()
		}

	case ctrlBS, ctrlDEL:
		s.backspace()

	case ctrlHT:
		s.tabForward(1)

	case ctrlLF, ctrlVT, ctrlFF:
		s.moveWrap(s.cur.row+1, s.cur.col)
		s.cur.eol = false

	case ctrlCR:
		s.moveWrap(s.cur.row, 0)
		s.cur.eol = false

	case ctrlSO:
		s.active = 1

	case ctrlSI:
		s.active = 0

	default:
		if c >= 0x20 {
			s.printChar(c)
		}
	}
}

// backspace moves left one column, wrapping onto the previous row unless the
// cursor is on the top row, and erases the cell it lands on.
func (s *Session) backspace() {
	top, _ := s.regionLimits()
	if s.cur.row > top {
		s.moveWrap(s.cur.row, s.cur.col-1)
	} else {
		s.moveLimited(s.cur.row, s.cur.col-1)
	}
	s.cur.eol = false

	s.hideCursor()
	s.grid.SetGlyph(s.cur.col, s.cur.row, display.Blank)
	s.showCursor()
}

// printChar stores c at the cursor and advances it, honoring insert mode and
// the deferred wrap of auto-wrap mode.
func (s *Session) printChar(c byte) {
	if s.stripBit7 {
		c &= 0x7f
	}
	if s.substitute {
		c = substitute(s.g[s.active], c)
	}

	if s.cur.eol {
		s.moveWrap(s.cur.row+1, 0)
		s.cur.eol = false
	}

	s.hideCursor()
	if s.insertMode {
		s.grid.InsertCells(s.cur.col, s.cur.row, 1)
	}
	s.grid.SetGlyph(s.cur.col, s.cur.row, c)

	if s.autoWrap && s.cur.col == s.grid.Width()-1 {
		s.showCursor()
		s.cur.eol = true
		return
	}
	s.initCursor(s.cur.row, s.cur.col+1)
}

// tabForward moves right to the n-th next tab stop, or the last column.
func (s *Session) tabForward(n int) {
	col := s.cur.col
	last := s.grid.Width() - 1
	for ; n > 0 && col < last; n-- {
		col++
		for col < last && !s.tabs[col] {
			col++
		}
	}
	s.moveLimited(s.cur.row, col)
}

// tabBackward moves left to the n-th previous tab stop, or column 0.
func (s *Session) tabBackward(n int) {
	col := s.cur.col
	for ; n > 0 && col > 0; n-- {
		col--
		for col > 0 && !s.tabs[col] {
			col--
		}
	}
	s.moveLimited(s.cur.row, col)
}
