package keyboard

import (
	"context"
	"sync"
	"time"
)

// DefaultTickInterval is the repeat scheduler period.
const DefaultTickInterval = time.Millisecond

type eventKind uint8

const (
	eventMount eventKind = iota
	eventUnmount
	eventReport
)

type event struct {
	kind  eventKind
	dev   Device
	proto Protocol
	data  []byte
}

// Runner is the producer goroutine for a Pipeline. It serializes HID events
// delivered from any goroutine with the periodic repeat tick.
type Runner struct {
	p        *Pipeline
	interval time.Duration
	clock    func() time.Time

	events chan event

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewRunner creates a runner for p ticking every interval.
func NewRunner(p *Pipeline, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		p:        p,
		interval: interval,
		clock:    time.Now,
		events:   make(chan event, 32),
	}
}

// Start launches the loop. It stops when ctx is done or Stop is called.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrRunnerStarted
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(ctx, r.stop, r.done)
	return nil
}

// Stop ends the loop and waits for it to exit.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stop)
	done := r.done
	r.mu.Unlock()

	<-done
}

// Done is closed once the loop has exited.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

// Mount queues a mount event.
func (r *Runner) Mount(ctx context.Context, dev Device, proto Protocol) error {
	return r.send(ctx, event{kind: eventMount, dev: dev, proto: proto})
}

// Unmount queues an unmount event.
func (r *Runner) Unmount(ctx context.Context, dev Device) error {
	return r.send(ctx, event{kind: eventUnmount, dev: dev})
}

// Report queues a raw report from dev. The data is copied.
func (r *Runner) Report(ctx context.Context, dev Device, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	return r.send(ctx, event{kind: eventReport, dev: dev, data: buf})
}

func (r *Runner) send(ctx context.Context, ev event) error {
	select {
	case r.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Runner) loop(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	start := r.clock()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case ev := <-r.events:
			r.dispatch(ev)
		case <-ticker.C:
			r.p.Tick(Millis(r.clock().Sub(start).Milliseconds()))
		}
	}
}

func (r *Runner) dispatch(ev event) {
	switch ev.kind {
	case eventMount:
		r.p.Mount(ev.dev, ev.proto)
	case eventUnmount:
		r.p.Unmount(ev.dev)
	case eventReport:
		// Discarded reports are already logged by the pipeline.
		_ = r.p.HandleReport(ev.dev, ev.data)
	}
}
