package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtconsole.toml")
	if err := os.WriteFile(path, []byte("[display]\nwidth = 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	type result struct {
		cfg *Config
		err error
	}
	reloads := make(chan result, 8)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		reloads <- result{cfg, err}
	}, WithDebounce(10*time.Millisecond), WithWatcherLoader(NewLoaderWith(OSFS{}, nil)))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[display]\nwidth = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloads:
		if r.err != nil {
			t.Fatalf("reload error = %v", r.err)
		}
		if r.cfg.Display.Width != 100 {
			t.Errorf("reloaded width = %d, want 100", r.cfg.Display.Width)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	if err := os.WriteFile(path, []byte("[display]\nwidth = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r := <-reloads:
			if r.err == nil {
				continue
			}
			if r.cfg != nil {
				t.Errorf("failed reload returned config %+v", r.cfg)
			}
			return
		case <-deadline:
			t.Fatal("no failed reload after invalid write")
		}
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vtconsole.toml")

	reloads := make(chan struct{}, 8)
	w, err := NewWatcher(path, func(*Config, error) { reloads <- struct{}{} }, WithDebounce(time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-reloads:
		t.Error("reload fired for a sibling file")
	case <-time.After(100 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
