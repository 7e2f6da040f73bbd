package terminal

type vt52State int

const (
	vt52Ground vt52State = iota
	vt52Escape
	vt52Param
)

// vt52Parser holds the VT52 dialect state. A parameterized command collects
// want bytes into args before it runs.
type vt52Parser struct {
	state vt52State
	cmd   byte
	args  [2]byte
	have  int
	want  int
}

func (p *vt52Parser) reset() {
	*p = vt52Parser{}
}

// handleVT52 advances the VT52 state machine by one byte.
func (s *Session) handleVT52(c byte) {
	p := &s.v52

	switch p.state {
	case vt52Ground:
		if c == ctrlESC {
			p.state = vt52Escape
			return
		}
		s.processText(c)

	case vt52Escape:
		p.state = vt52Ground
		switch c {
		case 'Y':
			p.cmd, p.have, p.want = c, 0, 2
			p.state = vt52Param
		case 'b', 'c':
			p.cmd, p.have, p.want = c, 0, 1
			p.state = vt52Param
		default:
			s.vt52Command(c)
		}

	case vt52Param:
		p.args[p.have] = c
		p.have++
		if p.have == p.want {
			p.state = vt52Ground
			s.vt52ParamCommand(p.cmd, p.args[:p.have])
		}
	}
}

func (s *Session) vt52Command(c byte) {
	switch c {
	case 'A':
		s.moveLimited(s.cur.row-1, s.cur.col)
	case 'B':
		s.moveLimited(s.cur.row+1, s.cur.col)
	case 'C':
		s.moveLimited(s.cur.row, s.cur.col+1)
	case 'D':
		s.moveLimited(s.cur.row, s.cur.col-1)
	case 'E':
		s.hideCursor()
		s.grid.Clear()
		s.showCursor()
		s.moveLimited(0, 0)
	case 'H':
		s.moveLimited(0, 0)
	case 'I':
		s.moveWrap(s.cur.row-1, s.cur.col)
	case 'J':
		s.eraseDisplay(0)
	case 'K':
		s.eraseLine(0)
	case 'L':
		s.vt52ShiftLines(-1)
	case 'M':
		s.vt52ShiftLines(1)
	case 'Z':
		s.sendReply([]byte("\x1b/K"))
	case 'd':
		s.eraseDisplay(1)
	case 'e':
		s.setVisible(true)
	case 'f':
		s.setVisible(false)
	case 'j':
		s.vt52Row, s.vt52Col = s.cur.row, s.cur.col
	case 'k':
		s.moveLimited(s.vt52Row, s.vt52Col)
	case 'l':
		s.eraseLine(2)
		s.initCursor(s.cur.row, 0)
	case 'o':
		s.eraseLine(1)
	case 'p':
		s.attrs.Flags |= AttrReverse
	case 'q':
		s.attrs.Flags &^= AttrReverse
	case 'v':
		s.autoWrap = true
	case 'w':
		s.autoWrap = false
	case '<':
		s.reset()
	default:
		s.log.Debug("unhandled VT52 ESC %q", c)
	}
}

func (s *Session) vt52ParamCommand(cmd byte, args []byte) {
	switch cmd {
	case 'Y':
		row, col := args[0], args[1]
		if row >= 32 && col >= 32 {
			s.moveLimited(int(row)-32, int(col)-32)
		}
	case 'b':
		s.attrs.FG = int(args[0] & 0x0f)
	case 'c':
		s.attrs.BG = int(args[0] & 0x0f)
	}
}

// vt52ShiftLines scrolls from the cursor row to the screen bottom.
func (s *Session) vt52ShiftLines(n int) {
	s.hideCursor()
	s.grid.ScrollRegion(s.cur.row, s.grid.Height()-1, n)
	s.showCursor()
}
