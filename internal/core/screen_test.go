package core

import (
	"strings"
	"testing"
)

// rows renders s as one string per row for compact comparisons.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	for i, row := range rows(s) {
		if row != "      " {
			t.Errorf("row %d = %q, want blanks", i, row)
		}
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 2}} {
		s.Set(p[0], p[1], '#')
		if got := s.Get(p[0], p[1]); got != ' ' {
			t.Errorf("Get(%d, %d) = %q outside the buffer", p[0], p[1], got)
		}
	}
	if strings.ContainsRune(s.String(), '#') {
		t.Errorf("clipped writes leaked into the buffer:\n%s", s)
	}

	s.DrawText(2, 1, "asteroid")
	if got := s.Row(1); got != "  as" {
		t.Errorf("Row(1) = %q, want text clipped at the edge", got)
	}
	if got := s.Row(7); got != "    " {
		t.Errorf("Row(7) = %q, want blank row", got)
	}
}

func TestScreenColours(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawTextColored(0, 0, "<=>", ColorCyan)
	s.SetColored(4, 0, '*', ColorOrange)

	want := []Cell{
		{'<', ColorCyan}, {'=', ColorCyan}, {'>', ColorCyan},
		{' ', ColorDefault}, {'*', ColorOrange},
	}
	for x, c := range want {
		if got := s.GetCell(x, 0); got != c {
			t.Errorf("GetCell(%d, 0) = %+v, want %+v", x, got, c)
		}
	}

	s.Clear()
	if got := s.GetCell(4, 0); got != blank {
		t.Errorf("after Clear cell = %+v, want blank", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "ÜBER")
	if got := s.Row(0); got != "   ÜBER    " {
		t.Errorf("Row(0) = %q, want runes centred", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '#', ColorGray)
	want := []string{
		"     ",
		" ### ",
		" ### ",
		"     ",
	}
	got := rows(s)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
	if c := s.GetCell(2, 2).Color; c != ColorGray {
		t.Errorf("fill colour = %v, want gray", c)
	}
}

func TestScreenDrawMessage(t *testing.T) {
	s := NewScreen(20, 7)
	s.DrawMessage("GAME OVER", "r: again")
	want := []string{
		"                    ",
		"   ┌───────────┐    ",
		"   │ GAME OVER │    ",
		"   │           │    ",
		"   │ r: again  │    ",
		"   └───────────┘    ",
		"                    ",
	}
	got := rows(s)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	want := []string{"ab", "ef", "  "}
	got := rows(s)
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, want %q", i, got[i], want[i])
		}
	}

	s.Resize(2, 3)
	if s.Row(0) != "ab" {
		t.Error("same-size Resize should keep the buffer")
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport{UnitsPerCol: 10, UnitsPerRow: 20, OffsetY: 1}

	tests := []struct {
		p    Vec2
		x, y int
	}{
		{V(0, 0), 0, 1},
		{V(405, 300), 40, 16},
		{V(9.99, 19.99), 0, 1},
		{V(-0.5, 0), -1, 1},
	}
	for _, tt := range tests {
		if x, y := vp.Cell(tt.p); x != tt.x || y != tt.y {
			t.Errorf("Cell(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.x, tt.y)
		}
	}

	if cols, rows := vp.Span(40, 40); cols != 4 || rows != 2 {
		t.Errorf("Span(40, 40) = (%d, %d), want (4, 2)", cols, rows)
	}
	if cols, rows := vp.Span(2, 2); cols != 1 || rows != 1 {
		t.Errorf("Span(2, 2) = (%d, %d), want at least one cell", cols, rows)
	}
	if b := vp.Bounds(80, 30); b.W != 800 || b.H != 600 {
		t.Errorf("Bounds(80, 30) = %+v, want 800x600", b)
	}
}
