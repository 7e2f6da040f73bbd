package console

import (
	"context"
	"io"

	"github.com/dshills/vtconsole/internal/logging"
)

// Source is a non-blocking input source.
type Source interface {
	// TryRead returns the next byte if one is ready.
	TryRead() (byte, bool)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (byte, bool)

// TryRead implements Source.
func (f SourceFunc) TryRead() (byte, bool) {
	return f()
}

// ReaderSource turns a blocking reader into a Source by reading it from its
// own goroutine.
type ReaderSource struct {
	ch   chan byte
	done chan struct{}
	err  error
}

// NewReaderSource starts reading r until it fails or ctx is done.
func NewReaderSource(ctx context.Context, r io.Reader, log *logging.Logger) *ReaderSource {
	rs := &ReaderSource{
		ch:   make(chan byte, 256),
		done: make(chan struct{}),
	}
	go rs.pump(ctx, r, logging.OrNop(log))
	return rs
}

func (rs *ReaderSource) pump(ctx context.Context, r io.Reader, log *logging.Logger) {
	defer close(rs.done)

	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case rs.ch <- b:
			case <-ctx.Done():
				rs.err = ctx.Err()
				return
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Warn("input source stopped: %v", err)
			}
			rs.err = err
			return
		}
	}
}

// TryRead implements Source.
func (rs *ReaderSource) TryRead() (byte, bool) {
	select {
	case b := <-rs.ch:
		return b, true
	default:
		return 0, false
	}
}

// Done is closed when the reader has stopped.
func (rs *ReaderSource) Done() <-chan struct{} {
	return rs.done
}

// Err returns why the reader stopped. It is only valid after Done is closed.
func (rs *ReaderSource) Err() error {
	<-rs.done
	return rs.err
}
