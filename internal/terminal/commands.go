package terminal

import (
	"fmt"

	"github.com/dshills/vtconsole/internal/display"
)

// csiKey identifies a CSI command by lead character (0, '?' or '#') and
// final byte.
type csiKey struct {
	lead  byte
	final byte
}

type csiHandler func(s *Session, params []int)

var csiLeads = [...]byte{0, '?', '#'}

// csiTable is the CSI dispatch table. Mode commands depend on the lead
// character; every other command behaves the same under any lead.
var csiTable map[csiKey]csiHandler

func init() {
	csiTable = buildCSITable()
}

func buildCSITable() map[csiKey]csiHandler {
	t := map[csiKey]csiHandler{
		{'?', 'h'}: func(s *Session, p []int) { s.setPrivateModes(p, true) },
		{'?', 'l'}: func(s *Session, p []int) { s.setPrivateModes(p, false) },
		{0, 'h'}:   func(s *Session, p []int) { s.setModes(p, true) },
		{0, 'l'}:   func(s *Session, p []int) { s.setModes(p, false) },
	}

	anyLead := map[byte]csiHandler{
		'J': (*Session).csiEraseDisplay,
		'K': (*Session).csiEraseLine,
		'A': (*Session).csiCursorUp,
		'B': (*Session).csiCursorDown,
		'C': (*Session).csiCursorForward,
		'a': (*Session).csiCursorForward,
		'D': (*Session).csiCursorBack,
		'j': (*Session).csiCursorBack,
		'E': (*Session).csiNextLine,
		'e': (*Session).csiNextLine,
		'F': (*Session).csiPrevLine,
		'k': (*Session).csiPrevLine,
		'd': (*Session).csiLineAbsolute,
		'G': (*Session).csiColumnAbsolute,
		'`': (*Session).csiColumnAbsolute,
		'H': (*Session).csiCursorPosition,
		'f': (*Session).csiCursorPosition,
		'I': (*Session).csiTabForward,
		'Z': (*Session).csiTabBackward,
		'L': (*Session).csiInsertLines,
		'M': (*Session).csiDeleteLines,
		'@': (*Session).csiInsertCells,
		'P': (*Session).csiDeleteCells,
		'S': (*Session).csiScrollUp,
		'T': (*Session).csiScrollDown,
		'g': (*Session).csiTabClear,
		'm': (*Session).csiSelectRendition,
		'r': (*Session).csiSetRegion,
		's': func(s *Session, _ []int) { s.saveCursor() },
		'u': func(s *Session, _ []int) { s.restoreCursor() },
		'c': (*Session).csiDeviceAttributes,
		'n': (*Session).csiDeviceStatus,
	}
	for final, h := range anyLead {
		for _, lead := range csiLeads {
			t[csiKey{lead, final}] = h
		}
	}
	return t
}

func (s *Session) dispatchCSI(lead, final byte, params []int) {
	h, ok := csiTable[csiKey{lead, final}]
	if !ok {
		s.log.Debug("unhandled CSI lead=%q final=%q params=%v", lead, final, params)
		return
	}
	h(s, params)
}

// param returns parameter i, or 0 when absent.
func param(params []int, i int) int {
	if i < len(params) {
		return params[i]
	}
	return 0
}

// count returns parameter i treating 0 and absent as 1.
func count(params []int, i int) int {
	return max(param(params, i), 1)
}

func (s *Session) setPrivateModes(params []int, on bool) {
	for _, mode := range params {
		switch mode {
		case 2:
			if !on {
				s.reset()
				s.vt52Mode = true
			}
		case 3:
			s.clearScreen()
		case 4:
			// Smooth scroll has no effect on a character grid.
		case 5:
			s.grid.SetInverted(on)
		case 6:
			s.originMode = on
			s.moveLimited(s.top, 0)
		case 7:
			s.autoWrap = on
		case 12:
			s.localEcho = !on
		case 25:
			s.setVisible(on)
		default:
			s.log.Debug("unhandled private mode %d", mode)
		}
	}
}

func (s *Session) setModes(params []int, on bool) {
	for _, mode := range params {
		if mode == 4 {
			s.insertMode = on
		}
	}
}

// eraseDisplay clears to the end (0), from the start (1) or all (2) of the
// screen. The cursor cell is included in 0 and 1.
func (s *Session) eraseDisplay(mode int) {
	w, h := s.grid.Width(), s.grid.Height()
	row, col := s.cur.row, s.cur.col

	s.hideCursor()
	switch mode {
	case 0:
		s.grid.FillRect(col, row, w-col, 1, display.Blank)
		s.grid.FillRect(0, row+1, w, h-row-1, display.Blank)
	case 1:
		s.grid.FillRect(0, 0, w, row, display.Blank)
		s.grid.FillRect(0, row, col+1, 1, display.Blank)
	case 2:
		s.grid.Clear()
	}
	s.showCursor()
}

// eraseLine clears to the end (0), from the start (1) or all (2) of the
// cursor row.
func (s *Session) eraseLine(mode int) {
	w := s.grid.Width()
	row, col := s.cur.row, s.cur.col

	s.hideCursor()
	switch mode {
	case 0:
		s.grid.FillRect(col, row, w-col, 1, display.Blank)
	case 1:
		s.grid.FillRect(0, row, col+1, 1, display.Blank)
	case 2:
		s.grid.FillRect(0, row, w, 1, display.Blank)
	}
	s.showCursor()
}

func (s *Session) csiEraseDisplay(p []int) { s.eraseDisplay(param(p, 0)) }

func (s *Session) csiEraseLine(p []int) { s.eraseLine(param(p, 0)) }

func (s *Session) csiCursorUp(p []int) {
	s.moveLimited(s.cur.row-count(p, 0), s.cur.col)
}

func (s *Session) csiCursorDown(p []int) {
	s.moveLimited(s.cur.row+count(p, 0), s.cur.col)
}

func (s *Session) csiCursorForward(p []int) {
	s.moveLimited(s.cur.row, s.cur.col+count(p, 0))
}

func (s *Session) csiCursorBack(p []int) {
	s.moveLimited(s.cur.row, s.cur.col-count(p, 0))
}

func (s *Session) csiNextLine(p []int) {
	s.moveLimited(s.cur.row+count(p, 0), 0)
}

func (s *Session) csiPrevLine(p []int) {
	s.moveLimited(s.cur.row-count(p, 0), 0)
}

func (s *Session) csiLineAbsolute(p []int) {
	s.moveLimited(count(p, 0), s.cur.col)
}

func (s *Session) csiColumnAbsolute(p []int) {
	s.moveLimited(s.cur.row, count(p, 0)-1)
}

func (s *Session) csiCursorPosition(p []int) {
	top, bottom := s.regionLimits()
	col := 0
	if len(p) >= 2 {
		col = count(p, 1) - 1
	}
	s.moveWithinRegion(top+count(p, 0)-1, col, top, bottom)
}

func (s *Session) csiTabForward(p []int) { s.tabForward(count(p, 0)) }

func (s *Session) csiTabBackward(p []int) { s.tabBackward(count(p, 0)) }

// shiftLines scrolls from the cursor row to the bottom limit by n.
func (s *Session) shiftLines(n int) {
	_, bottom := s.regionLimits()
	s.hideCursor()
	s.grid.ScrollRegion(s.cur.row, bottom, n)
	s.showCursor()
}

func (s *Session) csiInsertLines(p []int) { s.shiftLines(-count(p, 0)) }

func (s *Session) csiDeleteLines(p []int) { s.shiftLines(count(p, 0)) }

func (s *Session) csiInsertCells(p []int) {
	s.hideCursor()
	s.grid.InsertCells(s.cur.col, s.cur.row, count(p, 0))
	s.showCursor()
}

func (s *Session) csiDeleteCells(p []int) {
	s.hideCursor()
	s.grid.DeleteCells(s.cur.col, s.cur.row, count(p, 0))
	s.showCursor()
}

func (s *Session) scrollLimits(n int) {
	top, bottom := s.regionLimits()
	s.hideCursor()
	s.grid.ScrollRegion(top, bottom, n)
	s.showCursor()
}

func (s *Session) csiScrollUp(p []int) { s.scrollLimits(count(p, 0)) }

func (s *Session) csiScrollDown(p []int) { s.scrollLimits(-count(p, 0)) }

func (s *Session) csiTabClear(p []int) {
	switch param(p, 0) {
	case 0:
		s.tabs[s.cur.col] = false
	case 3:
		clear(s.tabs)
	}
}

func (s *Session) csiSelectRendition(p []int) {
	s.attrs.applySGR(p)
}

func (s *Session) csiSetRegion(p []int) {
	h := s.grid.Height()
	switch {
	case len(p) == 2 && p[1] > p[0]:
		s.bottom = min(p[1], h) - 1
		s.top = min(max(p[0], 1)-1, s.bottom)
	case param(p, 0) == 0:
		s.top, s.bottom = 0, h-1
	}
	s.moveWithinRegion(s.top, 0, s.top, s.bottom)
}

func (s *Session) csiDeviceAttributes(_ []int) {
	s.sendReply([]byte("\x1b[?6c"))
}

func (s *Session) csiDeviceStatus(p []int) {
	switch param(p, 0) {
	case 5:
		s.sendReply([]byte("\x1b[0n"))
	case 6:
		top, _ := s.regionLimits()
		s.sendReply(fmt.Appendf(nil, "\x1b[%d;%dR", s.cur.row-top+1, s.cur.col+1))
	}
}
