package keyboard

import "time"

// Default repeat timing.
const (
	DefaultRepeatDelay    = 500 * time.Millisecond
	DefaultRepeatInterval = 50 * time.Millisecond
)

// Millis is a wrapping millisecond clock reading.
type Millis uint32

// Reached reports whether now is at or past deadline. It stays correct across
// clock wraparound as long as the two are less than 2^31 ms apart.
func Reached(now, deadline Millis) bool {
	return int32(now-deadline) >= 0
}

// Repeater holds at most one repeating code and its next deadline.
type Repeater struct {
	delay    Millis
	interval Millis

	pending  bool
	code     byte
	deadline Millis
}

// NewRepeater creates a repeater with the given initial delay and steady
// interval.
func NewRepeater(delay, interval time.Duration) *Repeater {
	r := &Repeater{}
	r.SetTiming(delay, interval)
	return r
}

// SetTiming changes the repeat delays. Non-positive values select defaults.
func (r *Repeater) SetTiming(delay, interval time.Duration) {
	if delay <= 0 {
		delay = DefaultRepeatDelay
	}
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	r.delay = Millis(delay.Milliseconds())
	r.interval = Millis(interval.Milliseconds())
}

// Arm makes code the repeating code, first due after the initial delay.
func (r *Repeater) Arm(code byte, now Millis) {
	r.pending = true
	r.code = code
	r.deadline = now + r.delay
}

// Cancel drops any pending repeat.
func (r *Repeater) Cancel() {
	r.pending = false
}

// Pending returns the repeating code, if any.
func (r *Repeater) Pending() (byte, bool) {
	return r.code, r.pending
}

// Tick returns the code to re-emit when the deadline has been reached and
// schedules the next one an interval after now.
func (r *Repeater) Tick(now Millis) (byte, bool) {
	if !r.pending || !Reached(now, r.deadline) {
		return 0, false
	}
	r.deadline = now + r.interval
	return r.code, true
}
