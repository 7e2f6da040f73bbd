package keyboard

import (
	"testing"
	"time"
)

func TestReached(t *testing.T) {
	tests := []struct {
		now, deadline Millis
		want          bool
	}{
		{0, 0, true},
		{499, 500, false},
		{500, 500, true},
		{501, 500, true},
		{0xffffff00, 0x000000f4, false},
		{0x000000f4, 0xffffff00, true},
		{0x000000f4, 0x000000f4, true},
	}
	for _, tt := range tests {
		if got := Reached(tt.now, tt.deadline); got != tt.want {
			t.Errorf("Reached(%#x, %#x) = %v, want %v", tt.now, tt.deadline, got, tt.want)
		}
	}
}

func TestRepeater(t *testing.T) {
	r := NewRepeater(500*time.Millisecond, 50*time.Millisecond)

	if _, ok := r.Tick(1000); ok {
		t.Fatal("Tick with nothing armed emitted a code")
	}

	r.Arm('x', 1000)
	steps := []struct {
		now  Millis
		want bool
	}{
		{1001, false},
		{1499, false},
		{1500, true},
		{1500, false},
		{1549, false},
		{1550, true},
		{1620, true},
		{1669, false},
		{1670, true},
	}
	for _, st := range steps {
		code, ok := r.Tick(st.now)
		if ok != st.want {
			t.Errorf("Tick(%d) ok = %v, want %v", st.now, ok, st.want)
		}
		if ok && code != 'x' {
			t.Errorf("Tick(%d) = %q, want 'x'", st.now, code)
		}
	}

	r.Cancel()
	if _, ok := r.Tick(5000); ok {
		t.Error("Tick after Cancel emitted a code")
	}
	if _, ok := r.Pending(); ok {
		t.Error("Pending() after Cancel = true")
	}
}

func TestRepeaterAcrossWraparound(t *testing.T) {
	r := NewRepeater(500*time.Millisecond, 50*time.Millisecond)
	start := Millis(0xffffff00)
	r.Arm('w', start)

	if _, ok := r.Tick(start + 499); ok {
		t.Fatal("repeat fired before the initial delay across wraparound")
	}
	if _, ok := r.Tick(start + 500); !ok {
		t.Fatal("repeat did not fire at the initial delay across wraparound")
	}
}

func TestRepeaterDefaults(t *testing.T) {
	r := NewRepeater(0, -1)
	r.Arm('d', 0)
	if _, ok := r.Tick(Millis(DefaultRepeatDelay.Milliseconds()) - 1); ok {
		t.Error("default delay fired early")
	}
	if _, ok := r.Tick(Millis(DefaultRepeatDelay.Milliseconds())); !ok {
		t.Error("default delay did not fire")
	}
	now := Millis(DefaultRepeatDelay.Milliseconds())
	if _, ok := r.Tick(now + Millis(DefaultRepeatInterval.Milliseconds())); !ok {
		t.Error("default interval did not fire")
	}
}
