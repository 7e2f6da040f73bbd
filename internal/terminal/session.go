package terminal

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vtconsole/internal/display"
	"github.com/dshills/vtconsole/internal/logging"
)

// Session is one terminal: a framebuffer, a cursor and the interpreter state
// that drives them.
type Session struct {
	mu sync.Mutex

	id   string
	log  *logging.Logger
	grid *display.Grid

	cur   cursor
	saved savedCursor

	// Position saved by VT52 ESC j.
	vt52Row, vt52Col int

	// Scroll region, inclusive rows.
	top    int
	bottom int

	originMode bool
	autoWrap   bool
	insertMode bool
	vt52Mode   bool
	localEcho  bool

	g      [2]Charset
	active int
	attrs  Attributes

	tabs []bool

	vt  vt102Parser
	v52 vt52Parser

	// Collaborators and settings.
	reply       io.Writer
	bell        func()
	answerback  string
	substitute  bool
	stripBit7   bool
	tabInterval int

	// echoing is set while reply bytes are fed back through the interpreter.
	echoing bool
}

// NewSession creates a session with a blank width x height screen, already
// reset.
func NewSession(width, height int, opts ...Option) (*Session, error) {
	grid, err := display.NewGrid(width, height)
	if err != nil {
		return nil, ErrInvalidSize
	}

	s := &Session{
		id:          uuid.New().String(),
		log:         logging.Nop(),
		grid:        grid,
		tabs:        make([]bool, width),
		tabInterval: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("session", s.id[:8])

	s.reset()
	s.clearScreen()
	s.log.Debug("session created %dx%d", width, height)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// HandleOutputByte feeds one byte to the active dialect's interpreter.
func (s *Session) HandleOutputByte(c byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handleByte(c)
}

// Write feeds p through the interpreter. It never fails.
func (s *Session) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range p {
		s.handleByte(c)
	}
	return len(p), nil
}

func (s *Session) handleByte(c byte) {
	if s.vt52Mode {
		s.handleVT52(c)
		return
	}
	s.handleVT102(c)
}

// Reset performs a full terminal reset, the same as ESC c.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// ClearScreen blanks the screen, homes the cursor and drops the scroll region.
func (s *Session) ClearScreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearScreen()
}

// reset restores power-on modes. Screen content and cursor position are kept.
func (s *Session) reset() {
	s.saved = savedCursor{
		g: [2]Charset{CharsetUS, CharsetGraphics},
	}
	s.saved.attrs = defaultAttributes()
	s.vt52Row, s.vt52Col = 0, 0

	s.top, s.bottom = 0, s.grid.Height()-1
	s.originMode = false
	s.autoWrap = true
	s.insertMode = false
	s.vt52Mode = false
	s.cur.eol = false

	s.g = [2]Charset{CharsetUS, CharsetGraphics}
	s.active = 0
	s.attrs = defaultAttributes()

	for i := range s.tabs {
		s.tabs[i] = s.tabInterval > 0 && i > 0 && i%s.tabInterval == 0
	}

	s.vt.reset()
	s.v52.reset()
	s.setVisible(true)
}

func (s *Session) clearScreen() {
	s.hideCursor()
	s.grid.Clear()
	s.top, s.bottom = 0, s.grid.Height()-1
	s.originMode = false
	s.initCursor(0, 0)
}

// sendReply writes b to the reply sink and, with local echo on, back through
// the interpreter. Replies produced while echoing are dropped.
func (s *Session) sendReply(b []byte) {
	if s.echoing {
		return
	}
	if s.reply != nil {
		if _, err := s.reply.Write(b); err != nil {
			s.log.Warn("reply dropped: %v", err)
		}
	}
	if s.localEcho {
		s.echoing = true
		for _, c := range b {
			s.handleByte(c)
		}
		s.echoing = false
	}
}

// State is a snapshot of the session's modes and cursor.
type State struct {
	Row, Col      int
	CursorVisible bool
	EOLLatch      bool
	ScrollTop     int
	ScrollBottom  int
	OriginMode    bool
	AutoWrap      bool
	InsertMode    bool
	VT52Mode      bool
	LocalEcho     bool
	G0, G1        Charset
	ActiveSlot    int
	Attributes    Attributes
}

// State returns a snapshot of the current modes and cursor.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Row:           s.cur.row,
		Col:           s.cur.col,
		CursorVisible: s.cur.shown,
		EOLLatch:      s.cur.eol,
		ScrollTop:     s.top,
		ScrollBottom:  s.bottom,
		OriginMode:    s.originMode,
		AutoWrap:      s.autoWrap,
		InsertMode:    s.insertMode,
		VT52Mode:      s.vt52Mode,
		LocalEcho:     s.localEcho,
		G0:            s.g[0],
		G1:            s.g[1],
		ActiveSlot:    s.active,
		Attributes:    s.attrs,
	}
}

// View calls fn with the framebuffer while holding the session lock. fn must
// not retain the grid or call back into the session.
func (s *Session) View(fn func(g *display.Grid)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.grid)
}

// Generation returns the framebuffer change counter.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Generation()
}

// Publish copies the framebuffer into a packed surface.
func (s *Session) Publish(dst display.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid.Publish(dst)
}

// Size returns the screen width and height.
func (s *Session) Size() (width, height int) {
	return s.grid.Width(), s.grid.Height()
}
