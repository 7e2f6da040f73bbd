package keyboard

import (
	"bytes"
	"errors"
	"testing"
)

func usDecoder(t *testing.T, name string) *Decoder {
	t.Helper()
	l, err := LayoutByName(name)
	if err != nil {
		t.Fatalf("LayoutByName(%q) error = %v", name, err)
	}
	return NewDecoder(l)
}

func TestDecoderNewKeysOnly(t *testing.T) {
	d := usDecoder(t, "us")

	steps := []struct {
		report Report
		want   []byte
	}{
		{NewReport(0, KeyA), []byte("a")},
		{NewReport(0, KeyA), nil},
		{NewReport(0, KeyA, KeyA+1), []byte("b")},
		{NewReport(0, KeyA+2, KeyA+1, KeyA), []byte("c")},
		{NewReport(0), nil},
		{NewReport(0, KeyA+1, KeyA), []byte("ba")},
		{NewReport(ModLeftShift, KeyA+1, KeyA), nil},
		{NewReport(ModLeftShift, KeyA+2), []byte("C")},
	}

	for i, st := range steps {
		got, err := d.Decode(st.report)
		if err != nil {
			t.Fatalf("step %d: Decode() error = %v", i, err)
		}
		if !bytes.Equal(got, st.want) {
			t.Errorf("step %d: Decode() = %q, want %q", i, got, st.want)
		}
	}
}

func TestDecoderLocks(t *testing.T) {
	d := usDecoder(t, "us")

	steps := []struct {
		name      string
		report    Report
		want      []byte
		wantLEDs  uint8
		wantDirty bool
	}{
		{"keypad without numlock", NewReport(0, KeyKP1), nil, 0, false},
		{"release", NewReport(0), nil, 0, false},
		{"numlock on", NewReport(0, KeyNumLock), nil, LEDNumLock, true},
		{"numlock held", NewReport(0, KeyNumLock), nil, LEDNumLock, false},
		{"keypad with numlock", NewReport(0, KeyKP1), []byte("1"), LEDNumLock, false},
		{"caps on", NewReport(0, KeyCapsLock), nil, LEDNumLock | LEDCapsLock, true},
		{"caps letter", NewReport(0, KeyA), []byte("A"), LEDNumLock | LEDCapsLock, false},
		{"caps off and letter", NewReport(0, KeyCapsLock, KeyA+1), []byte("b"), LEDNumLock, true},
		{"numlock off", NewReport(0, KeyNumLock), nil, 0, true},
	}

	for _, st := range steps {
		got, err := d.Decode(st.report)
		if err != nil {
			t.Fatalf("%s: Decode() error = %v", st.name, err)
		}
		if !bytes.Equal(got, st.want) {
			t.Errorf("%s: Decode() = %q, want %q", st.name, got, st.want)
		}
		if d.LEDs() != st.wantLEDs {
			t.Errorf("%s: LEDs() = %#x, want %#x", st.name, d.LEDs(), st.wantLEDs)
		}
		if d.LEDsDirty() != st.wantDirty {
			t.Errorf("%s: LEDsDirty() = %v, want %v", st.name, d.LEDsDirty(), st.wantDirty)
		}
	}
}

func TestDecoderCapsNeedsShift(t *testing.T) {
	d := usDecoder(t, "jp")

	if _, err := d.Decode(NewReport(0, KeyCapsLock)); err != nil {
		t.Fatal(err)
	}
	if d.LEDs() != 0 {
		t.Fatalf("CapsLock without Shift toggled LEDs to %#x", d.LEDs())
	}

	_, _ = d.Decode(NewReport(0))
	if _, err := d.Decode(NewReport(ModLeftShift, KeyCapsLock)); err != nil {
		t.Fatal(err)
	}
	if d.LEDs() != LEDCapsLock {
		t.Fatalf("Shift+CapsLock LEDs = %#x, want %#x", d.LEDs(), LEDCapsLock)
	}

	_, _ = d.Decode(NewReport(0))
	got, _ := d.Decode(NewReport(0, KeyA))
	if !bytes.Equal(got, []byte("A")) {
		t.Errorf("Decode(a) with caps = %q, want \"A\"", got)
	}
}

func TestDecoderRollover(t *testing.T) {
	d := usDecoder(t, "us")

	if _, err := d.Decode(NewReport(0, KeyCapsLock, KeyA)); err != nil {
		t.Fatal(err)
	}
	leds := d.LEDs()

	got, err := d.Decode(NewReport(0, KeyErrRollOver, KeyErrRollOver, KeyErrRollOver))
	if !errors.Is(err, ErrRollover) {
		t.Fatalf("Decode(rollover) error = %v, want ErrRollover", err)
	}
	if got != nil {
		t.Errorf("Decode(rollover) = %q, want nothing", got)
	}
	if d.LEDs() != leds {
		t.Errorf("LEDs() = %#x after rollover, want %#x", d.LEDs(), leds)
	}

	// The previous report survives, so A is still considered held.
	got, _ = d.Decode(NewReport(0, KeyCapsLock, KeyA))
	if got != nil {
		t.Errorf("Decode after rollover = %q, want nothing", got)
	}
}

func TestDecoderSingleRolloverSlot(t *testing.T) {
	d := usDecoder(t, "us")
	got, err := d.Decode(NewReport(0, KeyErrRollOver, KeyA))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(got, []byte("a")) {
		t.Errorf("Decode() = %q, want \"a\"", got)
	}
}

func TestDecoderReset(t *testing.T) {
	d := usDecoder(t, "us")
	_, _ = d.Decode(NewReport(0, KeyCapsLock, KeyA))
	d.Reset()

	if d.LEDs() != 0 {
		t.Errorf("LEDs() after Reset = %#x, want 0", d.LEDs())
	}
	got, _ := d.Decode(NewReport(0, KeyA))
	if !bytes.Equal(got, []byte("a")) {
		t.Errorf("Decode() after Reset = %q, want \"a\"", got)
	}
}

func TestParseReport(t *testing.T) {
	data := []byte{byte(ModLeftShift), 0, KeyA, KeyA + 1, 0, 0, 0, 0, 0xee}
	r, err := ParseReport(data)
	if err != nil {
		t.Fatalf("ParseReport() error = %v", err)
	}
	want := NewReport(ModLeftShift, KeyA, KeyA+1)
	if r != want {
		t.Errorf("ParseReport() = %+v, want %+v", r, want)
	}
	if !bytes.Equal(r.Bytes(), data[:ReportSize]) {
		t.Errorf("Bytes() = %v, want %v", r.Bytes(), data[:ReportSize])
	}

	if _, err := ParseReport(data[:7]); !errors.Is(err, ErrShortReport) {
		t.Errorf("ParseReport(short) error = %v, want ErrShortReport", err)
	}
}
