package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen cell (%d, %d) = %+v", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(2, 3, '@', ColorBrightCyan)
	c := s.GetCell(2, 3)
	if c.Rune != '@' || c.Color != ColorBrightCyan {
		t.Errorf("GetCell(2, 3) = %+v", c)
	}

	// Out of bounds writes are ignored
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawTextColored(1, 0, "Round 2/4", ColorYellow)

	if got := s.Row(0); got != " Round 2/4  " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(1, 0).Color != ColorYellow {
		t.Error("text should carry its color")
	}

	// Clipped at the right edge
	s.DrawText(10, 1, "abc")
	if s.Get(10, 1) != 'a' || s.Get(11, 1) != 'b' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "██")

	if s.Get(4, 0) != '█' || s.Get(5, 0) != '█' {
		t.Errorf("centered row = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got := s.String(); got != "AAAAA\nBBBBB\nCCCCC" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(3, 2)
	if got := s.String(); got != "AAA\nBBB" {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(6, 3)
	if !strings.HasPrefix(s.Row(0), "AAA") {
		t.Errorf("content lost after grow, row 0 = %q", s.Row(0))
	}
	if s.Row(-1) != "      " {
		t.Errorf("out of bounds row = %q", s.Row(-1))
	}
}
