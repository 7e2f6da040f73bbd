package terminal

import "github.com/dshills/vtconsole/internal/display"

// maxParams is the number of CSI parameters accepted before a sequence is
// abandoned.
const maxParams = 16

// maxParamValue saturates numeric parameters.
const maxParamValue = 65535

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSIEntry
	stateCSIParam
	stateHash
	stateDesignate
	stateIgnoreNext
)

// String returns the state name.
func (p parserState) String() string {
	switch p {
	case stateGround:
		return "ground"
	case stateEscape:
		return "escape"
	case stateCSIEntry:
		return "csi-entry"
	case stateCSIParam:
		return "csi-param"
	case stateHash:
		return "hash"
	case stateDesignate:
		return "designate"
	case stateIgnoreNext:
		return "ignore-next"
	default:
		return "unknown"
	}
}

// vt102Parser is the VT102 sequence accumulator.
type vt102Parser struct {
	state  parserState
	lead   byte
	slot   int // G slot being designated, -1 for G2/G3
	params [maxParams]int
	nparam int
}

func (p *vt102Parser) reset() {
	*p = vt102Parser{}
}

func (p *vt102Parser) startCSI() {
	p.state = stateCSIEntry
	p.lead = 0
	p.params = [maxParams]int{}
	p.nparam = 1
}

// handleVT102 advances the VT102 state machine by one byte.
func (s *Session) handleVT102(c byte) {
	p := &s.vt

	if p.state != stateGround {
		switch c {
		case ctrlBS, ctrlLF, ctrlCR:
			s.processText(c)
			return
		case ctrlVT:
			p.state = stateIgnoreNext
			return
		}
	}

	switch p.state {
	case stateGround:
		if c == ctrlESC {
			p.state = stateEscape
			return
		}
		s.processText(c)

	case stateEscape:
		s.handleEscape(c)

	case stateCSIEntry:
		if c == '?' || c == '#' {
			p.lead = c
			p.state = stateCSIParam
			return
		}
		p.state = stateCSIParam
		s.handleCSIParam(c)

	case stateCSIParam:
		s.handleCSIParam(c)

	case stateHash:
		p.state = stateGround
		s.handleHash(c)

	case stateDesignate:
		p.state = stateGround
		if p.slot >= 0 {
			s.g[p.slot] = charsetFor(c)
		}

	case stateIgnoreNext:
		p.state = stateGround
	}
}

func (s *Session) handleEscape(c byte) {
	p := &s.vt
	p.state = stateGround

	switch c {
	case '[':
		p.startCSI()
	case '#':
		p.state = stateHash
	case '(':
		p.slot = 0
		p.state = stateDesignate
	case ')':
		p.slot = 1
		p.state = stateDesignate
	case '*', '+':
		p.slot = -1
		p.state = stateDesignate
	case ctrlESC:
		s.printChar(c)
	case 'c':
		s.reset()
	case '7':
		s.saveCursor()
	case '8':
		s.restoreCursor()
	case 'D':
		s.moveWrap(s.cur.row+1, s.cur.col)
	case 'E':
		s.moveWrap(s.cur.row+1, 0)
	case 'I':
		s.moveWrap(s.cur.row-1, 0)
	case 'M':
		s.moveWrap(s.cur.row-1, s.cur.col)
	case 'H':
		s.tabs[s.cur.col] = true
	case 'J':
		s.eraseDisplay(0)
	case 'K':
		s.eraseLine(0)
	default:
		s.log.Debug("unhandled ESC %q", c)
	}
}

func (s *Session) handleCSIParam(c byte) {
	p := &s.vt

	switch {
	case c >= '0' && c <= '9':
		v := &p.params[p.nparam-1]
		*v = min(*v*10+int(c-'0'), maxParamValue)
	case c == ';':
		if p.nparam == maxParams {
			p.state = stateGround
			return
		}
		p.nparam++
	default:
		p.state = stateGround
		params := p.params
		s.dispatchCSI(p.lead, c, params[:p.nparam])
	}
}

// handleHash runs ESC # commands.
func (s *Session) handleHash(c byte) {
	switch c {
	case '3':
		s.grid.SetLineAttr(s.cur.row, display.LineDoubleTop)
	case '4':
		s.grid.SetLineAttr(s.cur.row, display.LineDoubleBottom)
	case '5':
		s.grid.SetLineAttr(s.cur.row, display.LineSingle)
	case '6':
		s.grid.SetLineAttr(s.cur.row, display.LineDoubleWidth)
	case '8':
		top, bottom := s.regionLimits()
		s.hideCursor()
		s.grid.FillRect(0, top, s.grid.Width(), bottom-top+1, 'E')
		s.showCursor()
	}
}
