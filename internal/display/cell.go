package display

// Blank is the glyph written into cleared and vacated cells.
const Blank byte = ' '

// PackedHighlight is the highlight marker bit in the packed cell format.
const PackedHighlight uint16 = 1 << 8

// Cell is one framebuffer slot.
type Cell struct {
	Glyph       byte
	Highlighted bool
}

// BlankCell returns an unhighlighted blank cell.
func BlankCell() Cell {
	return Cell{Glyph: Blank}
}

// Pack returns the 16-bit wire form of the cell.
func (c Cell) Pack() uint16 {
	v := uint16(c.Glyph)
	if c.Highlighted {
		v |= PackedHighlight
	}
	return v
}

// Unpack decodes a 16-bit wire cell. Any bit above the glyph byte counts
// as a highlight marker, so surfaces that OR in 0xff00 decode the same way.
func Unpack(v uint16) Cell {
	return Cell{Glyph: byte(v), Highlighted: v&0xff00 != 0}
}

// LineAttr is the DEC line size attribute of a row.
type LineAttr uint8

const (
	// LineSingle is a normal single width, single height row.
	LineSingle LineAttr = iota
	// LineDoubleTop is the top half of a double height row.
	LineDoubleTop
	// LineDoubleBottom is the bottom half of a double height row.
	LineDoubleBottom
	// LineDoubleWidth is a double width, single height row.
	LineDoubleWidth
)

// String returns the attribute name.
func (a LineAttr) String() string {
	switch a {
	case LineSingle:
		return "single"
	case LineDoubleTop:
		return "double-top"
	case LineDoubleBottom:
		return "double-bottom"
	case LineDoubleWidth:
		return "double-width"
	default:
		return "unknown"
	}
}

// Line is one row of the grid.
type Line struct {
	Cells []Cell
	Attr  LineAttr
}

// NewLine creates a blank line with the given width.
func NewLine(width int) *Line {
	l := &Line{Cells: make([]Cell, width)}
	l.Clear(Blank)
	return l
}

// Clear fills the line with glyph and resets its attribute.
func (l *Line) Clear(glyph byte) {
	for i := range l.Cells {
		l.Cells[i] = Cell{Glyph: glyph}
	}
	l.Attr = LineSingle
}

// Text returns the glyphs of the line as a string.
func (l *Line) Text() string {
	b := make([]byte, len(l.Cells))
	for i, c := range l.Cells {
		b[i] = c.Glyph
	}
	return string(b)
}
