package display

// Grid is a row-major framebuffer of width x height cells.
type Grid struct {
	width  int
	height int
	lines  []*Line

	inverted   bool
	generation uint64
}

// NewGrid creates a blank grid.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidSize
	}

	g := &Grid{
		width:  width,
		height: height,
		lines:  make([]*Line, height),
	}
	for i := range g.lines {
		g.lines[i] = NewLine(width)
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Generation returns a counter that changes on every mutation.
func (g *Grid) Generation() uint64 { return g.generation }

func (g *Grid) touch() { g.generation++ }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the cell at (x, y), or a blank cell when out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if !g.inBounds(x, y) {
		return BlankCell()
	}
	return g.lines[y].Cells[x]
}

// SetCell stores c at (x, y). Out of bounds writes are ignored.
func (g *Grid) SetCell(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	g.lines[y].Cells[x] = c
	g.touch()
}

// SetGlyph stores an unhighlighted glyph at (x, y).
func (g *Grid) SetGlyph(x, y int, glyph byte) {
	g.SetCell(x, y, Cell{Glyph: glyph})
}

// SetHighlight sets or clears the highlight flag at (x, y) keeping the glyph.
func (g *Grid) SetHighlight(x, y int, on bool) {
	if !g.inBounds(x, y) {
		return
	}
	g.lines[y].Cells[x].Highlighted = on
	g.touch()
}

// Line returns a copy of row y.
func (g *Grid) Line(y int) []Cell {
	if y < 0 || y >= g.height {
		return nil
	}
	out := make([]Cell, g.width)
	copy(out, g.lines[y].Cells)
	return out
}

// RowText returns the glyphs of row y as a string.
func (g *Grid) RowText(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	return g.lines[y].Text()
}

// LineAttr returns the line attribute of row y.
func (g *Grid) LineAttr(y int) LineAttr {
	if y < 0 || y >= g.height {
		return LineSingle
	}
	return g.lines[y].Attr
}

// SetLineAttr sets the line attribute of row y.
func (g *Grid) SetLineAttr(y int, a LineAttr) {
	if y < 0 || y >= g.height {
		return
	}
	g.lines[y].Attr = a
	g.touch()
}

// Inverted reports whether the whole screen is shown in reverse video.
func (g *Grid) Inverted() bool { return g.inverted }

// SetInverted sets screen-wide reverse video.
func (g *Grid) SetInverted(on bool) {
	if g.inverted != on {
		g.inverted = on
		g.touch()
	}
}

// FillRect fills the w x h rectangle at (x, y) with glyph, clipped to the grid.
// Filled cells lose their highlight. A rectangle spanning whole rows also
// resets those rows to single size.
func (g *Grid) FillRect(x, y, w, h int, glyph byte) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, g.width), min(y+h, g.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	for row := y0; row < y1; row++ {
		line := g.lines[row]
		if x0 == 0 && x1 == g.width {
			line.Clear(glyph)
			continue
		}
		for col := x0; col < x1; col++ {
			line.Cells[col] = Cell{Glyph: glyph}
		}
	}
	g.touch()
}

// Clear fills the whole grid with blanks.
func (g *Grid) Clear() {
	g.FillRect(0, 0, g.width, g.height, Blank)
}

// ScrollRegion shifts rows start..end (inclusive) by n. Positive n moves
// content up and blanks the n bottom rows of the region; negative n moves
// content down and blanks the top rows. |n| is clamped to the region height.
func (g *Grid) ScrollRegion(start, end, n int) {
	start = max(start, 0)
	end = min(end, g.height-1)
	if n == 0 || start > end {
		return
	}

	size := end - start + 1
	up := n > 0
	if !up {
		n = -n
	}
	if n > size {
		n = size
	}

	// Rows that leave the region are recycled as the blank rows.
	if up {
		gone := append([]*Line(nil), g.lines[start:start+n]...)
		copy(g.lines[start:], g.lines[start+n:end+1])
		for i, l := range gone {
			l.Clear(Blank)
			g.lines[end-n+1+i] = l
		}
	} else {
		gone := append([]*Line(nil), g.lines[end-n+1:end+1]...)
		copy(g.lines[start+n:end+1], g.lines[start:end-n+1])
		for i, l := range gone {
			l.Clear(Blank)
			g.lines[start+i] = l
		}
	}
	g.touch()
}

// InsertCells shifts row y right by n cells starting at column x. Cells pushed
// past the right edge are lost; the n vacated cells become blank.
func (g *Grid) InsertCells(x, y, n int) {
	if !g.inBounds(x, y) || n <= 0 {
		return
	}
	n = min(n, g.width-x)

	cells := g.lines[y].Cells
	copy(cells[x+n:], cells[x:g.width-n])
	for i := x; i < x+n; i++ {
		cells[i] = BlankCell()
	}
	g.touch()
}

// DeleteCells removes n cells at column x of row y, shifting the rest of the
// row left. The n cells vacated at the right edge become blank.
func (g *Grid) DeleteCells(x, y, n int) {
	if !g.inBounds(x, y) || n <= 0 {
		return
	}
	n = min(n, g.width-x)

	cells := g.lines[y].Cells
	copy(cells[x:], cells[x+n:])
	for i := g.width - n; i < g.width; i++ {
		cells[i] = BlankCell()
	}
	g.touch()
}
