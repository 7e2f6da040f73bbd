package terminal

// AttrFlags are the rendition flags selected by SGR.
type AttrFlags uint8

const (
	AttrBold AttrFlags = 1 << iota
	AttrUnderline
	AttrBlink
	AttrReverse
)

// Has returns true if all bits of f are set.
func (a AttrFlags) Has(f AttrFlags) bool {
	return a&f == f
}

// ColorDefault marks a foreground or background that was never selected.
const ColorDefault = -1

// Attributes is the current graphic rendition. It is tracked, saved and
// restored with the cursor, but cells do not store it.
type Attributes struct {
	Flags AttrFlags
	FG    int
	BG    int
}

func defaultAttributes() Attributes {
	return Attributes{FG: ColorDefault, BG: ColorDefault}
}

// applySGR updates a from a list of SGR parameters.
func (a *Attributes) applySGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for _, p := range params {
		switch {
		case p == 0:
			*a = defaultAttributes()
		case p == 1:
			a.Flags |= AttrBold
		case p == 4:
			a.Flags |= AttrUnderline
		case p == 5:
			a.Flags |= AttrBlink
		case p == 7:
			a.Flags |= AttrReverse
		case p == 22:
			a.Flags &^= AttrBold
		case p == 24:
			a.Flags &^= AttrUnderline
		case p == 25:
			a.Flags &^= AttrBlink
		case p == 27:
			a.Flags &^= AttrReverse
		case p >= 30 && p <= 37:
			a.FG = p - 30
		case p == 39:
			a.FG = ColorDefault
		case p >= 40 && p <= 47:
			a.BG = p - 40
		case p == 49:
			a.BG = ColorDefault
		}
	}
}
