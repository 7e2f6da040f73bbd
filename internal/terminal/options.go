package terminal

import (
	"io"

	"github.com/dshills/vtconsole/internal/logging"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.log = logging.OrNop(l)
	}
}

// WithReplySink sets where answers to status requests, identify requests and
// ENQ are written. Without a sink those requests are ignored.
func WithReplySink(w io.Writer) Option {
	return func(s *Session) {
		s.reply = w
	}
}

// WithBell sets the callback run for BEL. It is called with the session
// locked and must not block.
func WithBell(fn func()) Option {
	return func(s *Session) {
		s.bell = fn
	}
}

// WithAnswerback sets the string sent in reply to ENQ.
func WithAnswerback(answer string) Option {
	return func(s *Session) {
		s.answerback = answer
	}
}

// WithCharsetSubstitution enables glyph substitution for the UK and line
// graphics charsets.
func WithCharsetSubstitution(enabled bool) Option {
	return func(s *Session) {
		s.substitute = enabled
	}
}

// WithStripBit7 clears the high bit of every printed byte.
func WithStripBit7(enabled bool) Option {
	return func(s *Session) {
		s.stripBit7 = enabled
	}
}

// WithTabInterval sets the spacing of the tab stops installed by a reset.
// Zero installs none.
func WithTabInterval(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.tabInterval = n
		}
	}
}
