// Package host runs the console on the user's own terminal through tcell.
//
// Screen draws a session's framebuffer, decoding glyph bytes as Code Page 437
// so that the line drawing and block glyphs used by the character generator
// come out as the matching Unicode box drawing characters. Highlighted cells
// (the cursor) are drawn in reverse video, as is the whole screen while the
// grid is inverted.
//
// Key events from the host terminal are turned into boot keyboard reports, a
// press followed by a release, and fed to a keyboard pipeline as if a USB
// keyboard were attached.
package host
