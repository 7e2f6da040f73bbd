// Package display holds the character framebuffer driven by the terminal
// interpreter.
//
// A Grid is a fixed width x height array of Cells. Each Cell carries a single
// glyph byte and a highlight flag used to draw the cursor. The tagged form is
// used everywhere inside the module; the packed 16-bit form (low byte glyph,
// bit 8 highlight) exists only at the Surface boundary, for collaborators that
// want a directly addressable video buffer.
//
// Editing primitives (FillRect, ScrollRegion, InsertCells, DeleteCells) clamp
// every coordinate to the grid and never fail. Grid does no locking of its own;
// the owner serializes access.
package display
