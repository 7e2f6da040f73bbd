package host

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vtconsole/internal/display"
	"github.com/dshills/vtconsole/internal/keyboard"
	"github.com/dshills/vtconsole/internal/logging"
	"github.com/dshills/vtconsole/internal/terminal"
)

// DefaultFrameInterval paces redraws.
const DefaultFrameInterval = 16 * time.Millisecond

// Device is the synthetic keyboard the host presents.
var Device = keyboard.Device{Addr: 1, Instance: 0}

// KeySink receives the synthetic keyboard's events. keyboard.Runner
// implements it.
type KeySink interface {
	Mount(ctx context.Context, dev keyboard.Device, proto keyboard.Protocol) error
	Report(ctx context.Context, dev keyboard.Device, data []byte) error
}

// Option configures a Screen.
type Option func(*Screen)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Screen) {
		s.log = logging.OrNop(l)
	}
}

// WithScreen uses an existing tcell screen, such as a simulation screen.
func WithScreen(ts tcell.Screen) Option {
	return func(s *Screen) {
		s.screen = ts
	}
}

// WithFrameInterval sets the redraw period of Run.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Screen) {
		if d > 0 {
			s.frame = d
		}
	}
}

// WithQuitKey sets the key that makes Run return. The default is Ctrl+].
func WithQuitKey(k tcell.Key) Option {
	return func(s *Screen) {
		s.quit = k
	}
}

// Screen draws a terminal session on a tcell screen.
type Screen struct {
	mu      sync.Mutex
	screen  tcell.Screen
	session *terminal.Session
	log     *logging.Logger
	frame   time.Duration
	quit    tcell.Key

	normal  tcell.Style
	reverse tcell.Style

	// Per-frame state used by Store.
	inverted bool
	attrs    []display.LineAttr

	lastGen   uint64
	drawn     bool
	hadDouble bool
}

// NewScreen creates a screen for session. The tcell screen is created here
// but not initialized until Init.
func NewScreen(session *terminal.Session, opts ...Option) (*Screen, error) {
	s := &Screen{
		session: session,
		log:     logging.Nop(),
		frame:   DefaultFrameInterval,
		quit:    tcell.KeyCtrlRightSq,
		normal:  tcell.StyleDefault,
		reverse: tcell.StyleDefault.Reverse(true),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("host")

	if s.screen == nil {
		ts, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		s.screen = ts
	}
	_, h := session.Size()
	s.attrs = make([]display.LineAttr, h)
	return s, nil
}

// Init takes over the host terminal.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.HideCursor()
	s.screen.Clear()
	return nil
}

// Fini restores the host terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Fini()
}

// Width implements display.Surface.
func (s *Screen) Width() int {
	w, _ := s.session.Size()
	return w
}

// Height implements display.Surface.
func (s *Screen) Height() int {
	_, h := s.session.Size()
	return h
}

// Store implements display.Surface. It must only be called from Render.
func (s *Screen) Store(x, y int, v uint16) {
	c := display.Unpack(v)
	style := s.normal
	if c.Highlighted != s.inverted {
		style = s.reverse
	}

	r := Glyph(c.Glyph)
	if s.attrs[y] == display.LineSingle {
		s.screen.SetContent(x, y, r, nil, style)
		return
	}
	s.screen.SetContent(2*x, y, r, nil, style)
	s.screen.SetContent(2*x+1, y, ' ', nil, style)
}

// Render draws the session if it changed since the last frame. force
// redraws regardless.
func (s *Screen) Render(force bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.session.Generation()
	if s.drawn && !force && gen == s.lastGen {
		return false
	}

	double := false
	s.session.View(func(g *display.Grid) {
		s.inverted = g.Inverted()
		for y := range s.attrs {
			s.attrs[y] = g.LineAttr(y)
			if s.attrs[y] != display.LineSingle {
				double = true
			}
		}
	})
	if double || s.hadDouble || force {
		s.screen.Clear()
	}
	s.hadDouble = double

	s.session.Publish(s)
	s.screen.Show()
	s.lastGen = gen
	s.drawn = true
	return true
}

// Run mounts the synthetic keyboard on sink, then forwards key events and
// redraws until ctx is done or the quit key is pressed.
func (s *Screen) Run(ctx context.Context, sink KeySink) error {
	if err := sink.Mount(ctx, Device, keyboard.ProtocolKeyboard); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	s.Render(true)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Render(false)
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if done, err := s.handleEvent(ctx, ev, sink); done || err != nil {
				return err
			}
		}
	}
}

func (s *Screen) handleEvent(ctx context.Context, ev tcell.Event, sink KeySink) (bool, error) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == s.quit {
			s.log.Info("quit key pressed")
			return true, nil
		}
		for _, r := range Reports(e) {
			if err := sink.Report(ctx, Device, r.Bytes()); err != nil {
				return true, err
			}
		}
	case *tcell.EventResize:
		s.mu.Lock()
		s.screen.Sync()
		s.mu.Unlock()
		s.Render(true)
	}
	return false, nil
}
