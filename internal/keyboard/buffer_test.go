package keyboard

import (
	"sync"
	"testing"
)

func TestBufferCapacity(t *testing.T) {
	var b Buffer

	for i := 0; i < BufferCapacity+1; i++ {
		ok := b.Push(byte(i))
		if want := i < BufferCapacity; ok != want {
			t.Fatalf("Push #%d = %v, want %v", i+1, ok, want)
		}
	}
	if b.Len() != BufferCapacity {
		t.Fatalf("Len() = %d, want %d", b.Len(), BufferCapacity)
	}
	if b.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", b.Dropped())
	}

	for i := 0; i < BufferCapacity; i++ {
		got, ok := b.TryPop()
		if !ok {
			t.Fatalf("TryPop #%d: empty", i+1)
		}
		if got != byte(i) {
			t.Fatalf("TryPop #%d = %d, want %d", i+1, got, i)
		}
	}
	if _, ok := b.TryPop(); ok {
		t.Error("TryPop on drained buffer returned a code")
	}
}

func TestBufferWrapsIndices(t *testing.T) {
	var b Buffer
	for i := 0; i < 10*BufferCapacity; i++ {
		if !b.Push(byte(i)) {
			t.Fatalf("Push #%d failed", i)
		}
		got, ok := b.TryPop()
		if !ok || got != byte(i) {
			t.Fatalf("TryPop #%d = %d, %v; want %d, true", i, got, ok, byte(i))
		}
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestBufferConcurrent(t *testing.T) {
	const n = 20000
	var b Buffer
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; {
			if b.Push(byte(i)) {
				i++
			}
		}
	}()

	for i := 0; i < n; {
		got, ok := b.TryPop()
		if !ok {
			continue
		}
		if got != byte(i) {
			t.Fatalf("TryPop #%d = %d, want %d", i, got, byte(i))
		}
		i++
	}
	wg.Wait()
}
