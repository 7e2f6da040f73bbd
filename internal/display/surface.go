package display

// Surface is a directly addressable grid of packed 16-bit cells, such as a
// video framebuffer fed to a scan-out engine.
type Surface interface {
	Width() int
	Height() int
	Store(x, y int, v uint16)
}

// Publish writes every cell of g into s in packed form, clipped to the
// smaller of the two sizes.
func (g *Grid) Publish(s Surface) {
	w := min(g.width, s.Width())
	h := min(g.height, s.Height())
	for y := 0; y < h; y++ {
		for x, c := range g.lines[y].Cells[:w] {
			s.Store(x, y, c.Pack())
		}
	}
}

// PackedBuffer is an in-memory Surface.
type PackedBuffer struct {
	width  int
	height int
	Cells  []uint16
}

// NewPackedBuffer creates a zeroed packed buffer.
func NewPackedBuffer(width, height int) *PackedBuffer {
	return &PackedBuffer{
		width:  width,
		height: height,
		Cells:  make([]uint16, width*height),
	}
}

// Width returns the number of columns.
func (b *PackedBuffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *PackedBuffer) Height() int { return b.height }

// Store sets the packed value at (x, y).
func (b *PackedBuffer) Store(x, y int, v uint16) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.Cells[y*b.width+x] = v
}

// At returns the packed value at (x, y).
func (b *PackedBuffer) At(x, y int) uint16 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.Cells[y*b.width+x]
}
