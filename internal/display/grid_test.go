package display

import (
	"strings"
	"testing"
)

func newGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) error = %v", w, h, err)
	}
	return g
}

// fillRows writes a distinct letter on each row so moves are visible.
func fillRows(g *Grid) {
	for y := 0; y < g.Height(); y++ {
		g.FillRect(0, y, g.Width(), 1, byte('a'+y))
	}
}

func TestNewGridInvalidSize(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := NewGrid(dims[0], dims[1]); err != ErrInvalidSize {
			t.Errorf("NewGrid(%d, %d) error = %v, want %v", dims[0], dims[1], err, ErrInvalidSize)
		}
	}
}

func TestCellPacking(t *testing.T) {
	tests := []struct {
		cell Cell
		want uint16
	}{
		{Cell{Glyph: 'A'}, 0x0041},
		{Cell{Glyph: 'A', Highlighted: true}, 0x0141},
		{Cell{Glyph: 0xdb, Highlighted: true}, 0x01db},
	}

	for _, tt := range tests {
		if got := tt.cell.Pack(); got != tt.want {
			t.Errorf("%+v.Pack() = %#04x, want %#04x", tt.cell, got, tt.want)
		}
		if got := Unpack(tt.want); got != tt.cell {
			t.Errorf("Unpack(%#04x) = %+v, want %+v", tt.want, got, tt.cell)
		}
	}

	if got := Unpack(0xff41); got != (Cell{Glyph: 'A', Highlighted: true}) {
		t.Errorf("Unpack(0xff41) = %+v, want highlighted 'A'", got)
	}
}

func TestFillRectClamps(t *testing.T) {
	g := newGrid(t, 5, 3)
	g.FillRect(3, 1, 10, 10, '#')

	want := []string{"     ", "   ##", "   ##"}
	for y, row := range want {
		if got := g.RowText(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}

	before := g.Generation()
	g.FillRect(-5, -5, 2, 2, 'x')
	if g.Generation() != before {
		t.Error("fully clipped FillRect should not mutate the grid")
	}
}

func TestFillRectClearsHighlight(t *testing.T) {
	g := newGrid(t, 3, 1)
	g.SetHighlight(1, 0, true)
	g.FillRect(0, 0, 3, 1, 'z')

	if g.Cell(1, 0).Highlighted {
		t.Error("FillRect should clear the highlight flag")
	}
}

func TestScrollRegion(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		n          int
		want       string
	}{
		{"up one", 1, 3, 1, "acd e"},
		{"down one", 1, 3, -1, "a bce"},
		{"up clamped", 1, 3, 10, "a   e"},
		{"down clamped", 1, 3, -10, "a   e"},
		{"zero", 1, 3, 0, "abcde"},
		{"full screen", 0, 4, 2, "cde  "},
		{"bounds clipped", -3, 99, 1, "bcde "},
		{"inverted region", 3, 1, 1, "abcde"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 2, 5)
			fillRows(g)
			g.ScrollRegion(tt.start, tt.end, tt.n)

			var got strings.Builder
			for y := 0; y < g.Height(); y++ {
				got.WriteByte(g.Cell(0, y).Glyph)
			}
			if got.String() != tt.want {
				t.Errorf("column 0 after ScrollRegion(%d, %d, %d) = %q, want %q",
					tt.start, tt.end, tt.n, got.String(), tt.want)
			}
		})
	}
}

func TestScrollRoundTrip(t *testing.T) {
	const start, end = 2, 7
	for n := 1; n < end-start+1; n++ {
		g := newGrid(t, 4, 10)
		fillRows(g)
		orig := make([]string, g.Height())
		for y := range orig {
			orig[y] = g.RowText(y)
		}

		g.ScrollRegion(start, end, n)
		g.ScrollRegion(start, end, -n)

		for y := 0; y < g.Height(); y++ {
			cleared := y >= start && y < start+n
			got := g.RowText(y)
			if cleared {
				if got != "    " {
					t.Errorf("n=%d row %d = %q, want blank", n, y, got)
				}
				continue
			}
			if got != orig[y] {
				t.Errorf("n=%d row %d = %q, want %q", n, y, got, orig[y])
			}
		}
	}
}

func TestScrollCarriesLineAttr(t *testing.T) {
	g := newGrid(t, 2, 3)
	g.SetLineAttr(1, LineDoubleWidth)
	g.ScrollRegion(0, 2, 1)

	if g.LineAttr(0) != LineDoubleWidth {
		t.Errorf("LineAttr(0) = %v, want %v", g.LineAttr(0), LineDoubleWidth)
	}
	if g.LineAttr(2) != LineSingle {
		t.Errorf("LineAttr(2) = %v, want %v", g.LineAttr(2), LineSingle)
	}
}

func TestInsertDeleteCells(t *testing.T) {
	tests := []struct {
		name string
		op   func(g *Grid)
		want string
	}{
		{"insert middle", func(g *Grid) { g.InsertCells(2, 0, 2) }, "ab  cdef"},
		{"insert clamped", func(g *Grid) { g.InsertCells(6, 0, 9) }, "abcdef  "},
		{"delete middle", func(g *Grid) { g.DeleteCells(2, 0, 2) }, "abefgh  "},
		{"delete clamped", func(g *Grid) { g.DeleteCells(5, 0, 9) }, "abcde   "},
		{"insert zero", func(g *Grid) { g.InsertCells(2, 0, 0) }, "abcdefgh"},
		{"out of bounds", func(g *Grid) { g.DeleteCells(8, 0, 1) }, "abcdefgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 8, 1)
			for i, c := range []byte("abcdefgh") {
				g.SetGlyph(i, 0, c)
			}
			tt.op(g)
			if got := g.RowText(0); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

// Vacated cells use the same blank for insert and delete, not the 0xdb block
// some Pico DVI consoles leave behind on insert.
func TestInsertDeleteFillGlyph(t *testing.T) {
	g := newGrid(t, 4, 1)
	g.FillRect(0, 0, 4, 1, 'x')

	g.InsertCells(0, 0, 1)
	if got := g.Cell(0, 0).Glyph; got != Blank {
		t.Errorf("insert fill = %q, want %q", got, Blank)
	}
	g.DeleteCells(0, 0, 2)
	if got := g.Cell(3, 0).Glyph; got != Blank {
		t.Errorf("delete fill = %q, want %q", got, Blank)
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	const row = "0123456789"
	for x := 0; x < len(row); x++ {
		for n := 1; n < len(row)-x; n++ {
			g := newGrid(t, len(row), 1)
			for i := range row {
				g.SetGlyph(i, 0, row[i])
			}
			g.InsertCells(x, 0, n)
			g.DeleteCells(x, 0, n)

			got := g.RowText(0)
			if got[:len(row)-n] != row[:len(row)-n] {
				t.Errorf("x=%d n=%d row = %q, want prefix %q", x, n, got, row[:len(row)-n])
			}
		}
	}
}

func TestPublish(t *testing.T) {
	g := newGrid(t, 3, 2)
	g.SetGlyph(0, 0, 'A')
	g.SetHighlight(2, 1, true)

	buf := NewPackedBuffer(2, 2)
	g.Publish(buf)

	if got := buf.At(0, 0); got != 'A' {
		t.Errorf("At(0, 0) = %#04x, want %#04x", got, 'A')
	}
	if got := buf.At(1, 1); got != uint16(Blank) {
		t.Errorf("At(1, 1) = %#04x, want %#04x", got, Blank)
	}

	wide := NewPackedBuffer(3, 2)
	g.Publish(wide)
	if got := wide.At(2, 1); got != uint16(Blank)|PackedHighlight {
		t.Errorf("At(2, 1) = %#04x, want highlighted blank", got)
	}
}

func TestInverted(t *testing.T) {
	g := newGrid(t, 1, 1)
	before := g.Generation()
	g.SetInverted(false)
	if g.Generation() != before {
		t.Error("SetInverted with the current value should not mutate")
	}
	g.SetInverted(true)
	if !g.Inverted() {
		t.Error("Inverted() = false, want true")
	}
}
