package keyboard

import "sync/atomic"

// BufferCapacity is the number of codes the staging buffer holds.
const BufferCapacity = 64

// Buffer is a bounded FIFO of key codes for one producer and one consumer.
// It never blocks: Push fails when full and TryPop fails when empty.
type Buffer struct {
	slots [BufferCapacity]byte

	// head is advanced only by the consumer, tail only by the producer.
	head atomic.Uint32
	tail atomic.Uint32

	dropped atomic.Uint64
}

// Push appends code. It returns false, dropping code, when the buffer is full.
func (b *Buffer) Push(code byte) bool {
	tail := b.tail.Load()
	if tail-b.head.Load() >= BufferCapacity {
		b.dropped.Add(1)
		return false
	}
	b.slots[tail%BufferCapacity] = code
	b.tail.Store(tail + 1)
	return true
}

// TryPop removes and returns the oldest code.
func (b *Buffer) TryPop() (byte, bool) {
	head := b.head.Load()
	if head == b.tail.Load() {
		return 0, false
	}
	code := b.slots[head%BufferCapacity]
	b.head.Store(head + 1)
	return code, true
}

// Len returns the number of queued codes.
func (b *Buffer) Len() int {
	return int(b.tail.Load() - b.head.Load())
}

// Dropped returns how many pushes failed because the buffer was full.
func (b *Buffer) Dropped() uint64 {
	return b.dropped.Load()
}
