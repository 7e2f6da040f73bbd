package terminal

// cursor is the visible cursor.
type cursor struct {
	row, col int

	// shown is the visibility mode; drawn is whether the highlight is
	// currently applied to the cell at (row, col).
	shown bool
	drawn bool

	// eol is set after printing into the last column with auto-wrap on.
	eol bool
}

// savedCursor is the state captured by ESC 7 and CSI s.
type savedCursor struct {
	row, col   int
	eol        bool
	originMode bool
	g          [2]Charset
	active     int
	attrs      Attributes
}

func (s *Session) hideCursor() {
	if s.cur.drawn {
		s.grid.SetHighlight(s.cur.col, s.cur.row, false)
		s.cur.drawn = false
	}
}

func (s *Session) showCursor() {
	if s.cur.shown {
		s.grid.SetHighlight(s.cur.col, s.cur.row, true)
		s.cur.drawn = true
	}
}

// setVisible changes the cursor visibility mode and redraws it.
func (s *Session) setVisible(on bool) {
	s.hideCursor()
	s.cur.shown = on
	s.showCursor()
}

// place moves the cursor to an already clamped position.
func (s *Session) place(row, col int) {
	s.hideCursor()
	s.cur.row, s.cur.col = row, col
	s.cur.eol = false
	s.showCursor()
}

// moveWithinRegion moves to (row, col) clipped to rows top..bottom and the
// screen width. It never scrolls.
func (s *Session) moveWithinRegion(row, col, top, bottom int) {
	if row == s.cur.row && col == s.cur.col {
		return
	}
	s.place(clamp(row, top, bottom), clamp(col, 0, s.grid.Width()-1))
}

// moveLimited is moveWithinRegion bounded by the scroll region, and does
// nothing while the cursor is outside that region.
func (s *Session) moveLimited(row, col int) {
	if s.cur.row < s.top || s.cur.row > s.bottom {
		return
	}
	s.moveWithinRegion(row, col, s.top, s.bottom)
}

// initCursor places the cursor unconditionally, bounded by the screen.
func (s *Session) initCursor(row, col int) {
	s.place(clamp(row, 0, s.grid.Height()-1), clamp(col, 0, s.grid.Width()-1))
}

// moveWrap moves to (row, col), wrapping columns onto neighbouring rows and
// scrolling the scroll region when the target row leaves it. A cursor that
// starts outside the region is clamped to the screen and never scrolls.
func (s *Session) moveWrap(row, col int) {
	if row == s.cur.row && col == s.cur.col {
		return
	}
	width := s.grid.Width()

	if col < 0 {
		n := (-col + width - 1) / width
		col += n * width
		row -= n
	}
	if s.cur.row < s.top || s.cur.row > s.bottom {
		row += col / width
		col %= width
		s.place(clamp(row, 0, s.grid.Height()-1), col)
		return
	}
	if row < s.top {
		s.scroll(row - s.top)
		row = s.top
	}
	if col >= width {
		row += col / width
		col %= width
	}
	if row > s.bottom {
		s.scroll(row - s.bottom)
		row = s.bottom
	}

	s.place(row, col)
}

// scroll shifts the scroll region by n rows, up for positive n.
func (s *Session) scroll(n int) {
	s.hideCursor()
	s.grid.ScrollRegion(s.top, s.bottom, n)
	s.showCursor()
}

// regionLimits returns the rows cursor addressing is bounded by: the scroll
// region in origin mode, the whole screen otherwise.
func (s *Session) regionLimits() (top, bottom int) {
	if s.originMode {
		return s.top, s.bottom
	}
	return 0, s.grid.Height() - 1
}

func (s *Session) saveCursor() {
	s.saved = savedCursor{
		row:        s.cur.row,
		col:        s.cur.col,
		eol:        s.cur.eol,
		originMode: s.originMode,
		g:          s.g,
		active:     s.active,
		attrs:      s.attrs,
	}
}

func (s *Session) restoreCursor() {
	s.moveLimited(s.saved.row, s.saved.col)
	s.originMode = s.saved.originMode
	s.cur.eol = s.saved.eol
	s.g = s.saved.g
	s.active = s.saved.active
	s.attrs = s.saved.attrs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
