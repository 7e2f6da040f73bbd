// Package keyboard turns USB HID boot keyboard reports into console key codes.
//
// The pipeline has four parts:
//
//   - Keymap: an ordered table of scancode ranges to output code rules.
//   - Decoder: diffs each report against the previous one, tracks the
//     NumLock and CapsLock state, and decodes newly pressed keys.
//   - Repeater: holds the most recently decoded code and re-emits it on a
//     fixed cadence until the next report supersedes it.
//   - Buffer: a bounded single-producer/single-consumer FIFO between the
//     periodic tick context and the console reader.
//
// Pipeline ties them together and adds device tracking: the first keyboard
// mounted is used, later keyboards are ignored until it unmounts.
//
// DecodeReport, Tick and the mount callbacks must be called from one goroutine
// (the producer). TryPop and Len may be called concurrently from another (the
// consumer). Runner provides the producer goroutine.
package keyboard
