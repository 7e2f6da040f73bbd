package keyboard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vtconsole/internal/logging"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) {
		p.log = logging.OrNop(l)
	}
}

// WithLayout selects the keyboard layout.
func WithLayout(layout Layout) Option {
	return func(p *Pipeline) {
		p.layout = layout
	}
}

// WithRepeatTiming sets the initial repeat delay and the steady interval.
func WithRepeatTiming(delay, interval time.Duration) Option {
	return func(p *Pipeline) {
		p.delay = delay
		p.interval = interval
	}
}

// WithTransport sets the HID host the pipeline requests reports from and
// sends LED updates to.
func WithTransport(t Transport) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.transport = t
		}
	}
}

// Pipeline decodes reports from a single keyboard into a staging buffer.
//
// Mount, Unmount, HandleReport, DecodeReport, Tick and SetRepeatTiming form
// the producer side and are serialized by an internal mutex. TryPop and Len
// are the consumer side and never take it.
type Pipeline struct {
	mu sync.Mutex

	id        string
	log       *logging.Logger
	layout    Layout
	transport Transport

	delay    time.Duration
	interval time.Duration

	decoder *Decoder
	repeat  *Repeater
	buf     Buffer

	active  Device
	mounted bool
	now     Millis
}

// NewPipeline creates a pipeline with the US layout and default repeat timing.
func NewPipeline(opts ...Option) *Pipeline {
	us, _ := LayoutByName("us")
	p := &Pipeline{
		id:        uuid.NewString(),
		log:       logging.Nop(),
		layout:    us,
		transport: nopTransport{},
		delay:     DefaultRepeatDelay,
		interval:  DefaultRepeatInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithComponent("keyboard").WithField("pipeline", p.id[:8])
	p.decoder = NewDecoder(p.layout)
	p.repeat = NewRepeater(p.delay, p.interval)
	return p
}

// Layout returns the active layout.
func (p *Pipeline) Layout() Layout {
	return p.layout
}

// Mount records a newly attached HID interface. It returns true when dev
// becomes the active keyboard and a first report has been requested. Devices
// that are not keyboards, or arrive while another keyboard is active, are
// ignored.
func (p *Pipeline) Mount(dev Device, proto Protocol) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if proto != ProtocolKeyboard {
		p.log.Debug("ignoring %s device %s", proto, dev)
		return false
	}
	if p.mounted {
		p.log.Info("ignoring keyboard %s, %s already active", dev, p.active)
		return false
	}

	p.active = dev
	p.mounted = true
	p.decoder.Reset()
	p.repeat.Cancel()
	p.log.Info("keyboard %s mounted", dev)

	if err := p.transport.RequestReport(dev); err != nil {
		p.log.Warn("request report from %s: %v", dev, err)
	}
	return true
}

// Unmount releases dev if it is the active keyboard.
func (p *Pipeline) Unmount(dev Device) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.mounted || dev != p.active {
		return
	}
	p.mounted = false
	p.active = Device{}
	p.decoder.Reset()
	p.repeat.Cancel()
	p.log.Info("keyboard %s unmounted", dev)
}

// Active returns the active keyboard, if any.
func (p *Pipeline) Active() (Device, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active, p.mounted
}

// HandleReport consumes a raw report from dev. Reports from devices other than
// the active keyboard are dropped. The next report is requested whether or
// not this one decoded cleanly.
func (p *Pipeline) HandleReport(dev Device, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.mounted || dev != p.active {
		return nil
	}

	err := p.handle(data)
	if err != nil {
		err = &ReportError{Device: dev, Err: err}
		p.log.Debug("report discarded: %v", err)
	}

	if p.decoder.LEDsDirty() {
		if lerr := p.transport.SetLEDs(dev, p.decoder.LEDs()); lerr != nil {
			p.log.Warn("set LEDs on %s: %v", dev, lerr)
		}
	}
	if rerr := p.transport.RequestReport(dev); rerr != nil {
		p.log.Warn("request report from %s: %v", dev, rerr)
	}
	return err
}

func (p *Pipeline) handle(data []byte) error {
	r, err := ParseReport(data)
	if err != nil {
		return err
	}
	return p.decode(r)
}

// DecodeReport feeds one parsed report through the decoder. Codes for newly
// pressed keys are staged; the last of them becomes the repeating code.
func (p *Pipeline) DecodeReport(r Report) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.decode(r)
}

func (p *Pipeline) decode(r Report) error {
	if r.Rollover() {
		return ErrRollover
	}

	p.repeat.Cancel()
	codes, err := p.decoder.Decode(r)
	if err != nil {
		return err
	}
	for _, c := range codes {
		p.push(c)
		p.repeat.Arm(c, p.now)
	}
	return nil
}

// Tick advances the clock to now and stages a repeat when one is due.
func (p *Pipeline) Tick(now Millis) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.now = now
	if c, ok := p.repeat.Tick(now); ok {
		p.push(c)
	}
}

func (p *Pipeline) push(c byte) {
	if !p.buf.Push(c) {
		p.log.Debug("staging buffer full, dropped code %#02x", c)
	}
}

// SetRepeatTiming changes the repeat delays for subsequent key presses.
func (p *Pipeline) SetRepeatTiming(delay, interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.repeat.SetTiming(delay, interval)
}

// LEDs returns the current lock LED mask.
func (p *Pipeline) LEDs() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.decoder.LEDs()
}

// TryPop returns the oldest staged code without blocking.
func (p *Pipeline) TryPop() (byte, bool) {
	return p.buf.TryPop()
}

// Len returns the number of staged codes.
func (p *Pipeline) Len() int {
	return p.buf.Len()
}

// Dropped returns the number of codes lost to a full staging buffer.
func (p *Pipeline) Dropped() uint64 {
	return p.buf.Dropped()
}

// IsRollover reports whether err came from a rollover report.
func IsRollover(err error) bool {
	return errors.Is(err, ErrRollover)
}
