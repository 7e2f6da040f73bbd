package console

import (
	"context"
	"sync"
	"time"

	"github.com/dshills/vtconsole/internal/keyboard"
	"github.com/dshills/vtconsole/internal/logging"
	"github.com/dshills/vtconsole/internal/terminal"
)

// DefaultPollInterval is how often Get re-checks its sources while idle.
const DefaultPollInterval = time.Millisecond

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Console) {
		c.log = logging.OrNop(l)
	}
}

// WithSource adds an extra input source, polled after the keyboard.
func WithSource(src Source) Option {
	return func(c *Console) {
		if src != nil {
			c.sources = append(c.sources, src)
		}
	}
}

// WithPollInterval sets the idle poll period of Get.
func WithPollInterval(d time.Duration) Option {
	return func(c *Console) {
		if d > 0 {
			c.poll = d
		}
	}
}

// Console is the emulated machine's view of the terminal.
type Console struct {
	log     *logging.Logger
	keys    *keyboard.Pipeline
	sources []Source
	poll    time.Duration

	session *terminal.Session

	mu      sync.Mutex
	replies []byte
	closed  bool
}

// New creates a console reading keys from keys. The session is created by
// newSession so that its replies can be routed back into the console input;
// pass the options to terminal.NewSession.
func New(keys *keyboard.Pipeline, newSession func(opts ...terminal.Option) (*terminal.Session, error), opts ...Option) (*Console, error) {
	c := &Console{
		log:  logging.Nop(),
		keys: keys,
		poll: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("console")

	s, err := newSession(terminal.WithReplySink(replyWriter{c}))
	if err != nil {
		return nil, err
	}
	c.session = s
	return c, nil
}

// Session returns the terminal session.
func (c *Console) Session() *terminal.Session {
	return c.session
}

// Put sends one output byte to the terminal.
func (c *Console) Put(b byte) {
	c.session.HandleOutputByte(b)
}

// Write sends p to the terminal. It never fails.
func (c *Console) Write(p []byte) (int, error) {
	return c.session.Write(p)
}

// Available reports whether a Get would return without waiting.
func (c *Console) Available() bool {
	c.mu.Lock()
	n := len(c.replies)
	c.mu.Unlock()
	if n > 0 {
		return true
	}
	if c.keys != nil && c.keys.Len() > 0 {
		return true
	}
	// Extra sources cannot be peeked without consuming, so a byte taken here
	// is queued ahead of the next keyboard code.
	for _, src := range c.sources {
		if b, ok := src.TryRead(); ok {
			c.queue([]byte{b})
			return true
		}
	}
	return false
}

// TryGet returns the next input byte without waiting.
func (c *Console) TryGet() (byte, bool) {
	c.mu.Lock()
	if len(c.replies) > 0 {
		b := c.replies[0]
		c.replies = c.replies[1:]
		c.mu.Unlock()
		return b, true
	}
	c.mu.Unlock()

	if c.keys != nil {
		if b, ok := c.keys.TryPop(); ok {
			c.echo(b)
			return b, true
		}
	}
	for _, src := range c.sources {
		if b, ok := src.TryRead(); ok {
			return b, true
		}
	}
	return 0, false
}

// Get waits for the next input byte.
func (c *Console) Get(ctx context.Context) (byte, error) {
	if b, ok := c.TryGet(); ok {
		return b, nil
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-ticker.C:
		}
		if c.isClosed() {
			return 0, ErrClosed
		}
		if b, ok := c.TryGet(); ok {
			return b, nil
		}
	}
}

// Close makes pending and future Get calls fail.
func (c *Console) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *Console) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Console) echo(b byte) {
	if c.session.State().LocalEcho {
		c.session.HandleOutputByte(b)
	}
}

func (c *Console) queue(p []byte) {
	c.mu.Lock()
	c.replies = append(c.replies, p...)
	c.mu.Unlock()
}

// replyWriter receives session replies. It runs with the session locked, so
// it only queues.
type replyWriter struct {
	c *Console
}

func (w replyWriter) Write(p []byte) (int, error) {
	w.c.queue(p)
	return len(p), nil
}
