package keyboard

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunner(t *testing.T) {
	tr := &fakeTransport{}
	p := NewPipeline(WithTransport(tr), WithRepeatTiming(time.Hour, time.Hour))
	r := NewRunner(p, time.Millisecond)

	ctx := context.Background()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Start(ctx); !errors.Is(err, ErrRunnerStarted) {
		t.Errorf("second Start() error = %v, want ErrRunnerStarted", err)
	}

	dev := Device{Addr: 1}
	if err := r.Mount(ctx, dev, ProtocolKeyboard); err != nil {
		t.Fatal(err)
	}
	report := NewReport(0, KeyA).Bytes()
	if err := r.Report(ctx, dev, report); err != nil {
		t.Fatal(err)
	}
	report[2] = KeyZ

	waitFor(t, func() bool { return p.Len() == 1 })
	if c, _ := p.TryPop(); c != 'a' {
		t.Errorf("TryPop() = %q, want 'a'", c)
	}

	if err := r.Unmount(ctx, dev); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		_, ok := p.Active()
		return !ok
	})

	r.Stop()
	select {
	case <-r.Done():
	default:
		t.Error("Done() not closed after Stop")
	}
	r.Stop()
}

func TestRunnerStopsOnContext(t *testing.T) {
	p := NewPipeline()
	r := NewRunner(p, 0)

	ctx, cancel := context.WithCancel(context.Background())
	if err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop on context cancel")
	}
}
