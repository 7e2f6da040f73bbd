package terminal

import (
	"testing"

	"github.com/dshills/vtconsole/internal/display"
)

func newTestSession(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(w, h, opts...)
	if err != nil {
		t.Fatalf("NewSession(%d, %d) error = %v", w, h, err)
	}
	return s
}

func feed(s *Session, in string) {
	_, _ = s.Write([]byte(in))
}

func rowText(s *Session, y int) string {
	var out string
	s.View(func(g *display.Grid) { out = g.RowText(y) })
	return out
}

func cellAt(s *Session, row, col int) display.Cell {
	var c display.Cell
	s.View(func(g *display.Grid) { c = g.Cell(col, row) })
	return c
}

// highlightedCells returns every (row, col) carrying the highlight flag.
func highlightedCells(s *Session) [][2]int {
	var out [][2]int
	s.View(func(g *display.Grid) {
		for y := 0; y < g.Height(); y++ {
			for x, c := range g.Line(y) {
				if c.Highlighted {
					out = append(out, [2]int{y, x})
				}
			}
		}
	})
	return out
}

func assertCursor(t *testing.T, s *Session, row, col int) {
	t.Helper()
	st := s.State()
	if st.Row != row || st.Col != col {
		t.Errorf("cursor = (%d, %d), want (%d, %d)", st.Row, st.Col, row, col)
	}
}

func assertRows(t *testing.T, s *Session, want ...string) {
	t.Helper()
	for y, row := range want {
		if got := rowText(s, y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}
