package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"apart vertically", NewRect(0, 0, 10, 10), NewRect(0, 15, 10, 10), false},
		{"touching right edge", NewRect(0, 0, 48, 48), NewRect(48, 0, 48, 48), false},
		{"touching bottom edge", NewRect(0, 0, 48, 48), NewRect(0, 48, 48, 48), false},
		{"hitbox inside tile", NewRect(96, 96, 48, 48), NewRect(106, 114, 28, 28), true},
		{"one pixel overlap", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right corner is exclusive", 30, 25, false},
		{"left of rect", 5, 15, false},
		{"below rect", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectOffsetAndCenter(t *testing.T) {
	r := NewRect(5, 10, 20, 15).Offset(3, -4)

	if r.X != 8 || r.Y != 6 || r.W != 20 || r.H != 15 {
		t.Errorf("Offset() = %+v", r)
	}
	if r.Right() != 28 || r.Bottom() != 21 {
		t.Errorf("edges = (%d, %d), expected (28, 21)", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 18 || cy != 13 {
		t.Errorf("Center() = (%d, %d), expected (18, 13)", cx, cy)
	}
}

func TestClampAbs(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if Abs(-7) != 7 || Abs(7) != 7 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
}
