// Package terminal implements the console's escape sequence interpreter.
//
// A Session owns a display.Grid and interprets an outgoing byte stream
// against it, one byte at a time. Two dialects are supported:
//
//   - VT102: ESC and CSI sequences with up to 16 numeric parameters, an
//     optional '?' or '#' lead character, DEC private modes, scroll regions,
//     origin mode, deferred auto-wrap, tab stops and G0/G1 charset slots.
//   - VT52: single letter ESC commands plus direct cursor addressing
//     (ESC Y row col), entered with CSI ?2l and left with ESC <.
//
// The cursor is drawn by setting the highlight flag of the cell it occupies.
// Every operation that may rewrite that cell hides the cursor first and shows
// it again afterwards.
//
// Completed CSI sequences are dispatched through a table keyed by lead
// character and final byte. Device status and attribute requests are answered
// through an optional reply sink.
//
// Basic usage:
//
//	s, err := terminal.NewSession(80, 30, terminal.WithReplySink(w))
//	if err != nil {
//		return err
//	}
//	s.Write([]byte("\x1b[2J\x1b[5;3HX"))
package terminal
