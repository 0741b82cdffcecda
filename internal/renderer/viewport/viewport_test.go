package viewport

import "testing"

func TestNewViewport(t *testing.T) {
	v := New(80, 24)
	if v.Width() != 80 || v.Height() != 24 {
		t.Errorf("size = %dx%d, want 80x24", v.Width(), v.Height())
	}
	if v.TopLine() != 0 || v.LeftColumn() != 0 {
		t.Errorf("origin = (%d,%d), want (0,0)", v.TopLine(), v.LeftColumn())
	}

	v = New(0, -3)
	if v.Width() != 1 || v.Height() != 1 {
		t.Errorf("size should clamp to 1x1, got %dx%d", v.Width(), v.Height())
	}
}

func TestFollowVertical(t *testing.T) {
	tests := []struct {
		name    string
		top     int
		line    int
		wantTop int
		moved   bool
	}{
		{"visible", 0, 5, 0, false},
		{"last visible row", 0, 9, 0, false},
		{"below", 0, 10, 1, true},
		{"far below", 0, 50, 41, true},
		{"above", 20, 3, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(80, 10)
			v.ScrollTo(tt.top)
			moved := v.Follow(tt.line, 0)
			if v.TopLine() != tt.wantTop {
				t.Errorf("TopLine = %d, want %d", v.TopLine(), tt.wantTop)
			}
			if moved != tt.moved {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
			if tt.line < v.TopLine() || tt.line > v.BottomLine() {
				t.Errorf("line %d outside [%d,%d]", tt.line, v.TopLine(), v.BottomLine())
			}
		})
	}
}

func TestFollowHorizontal(t *testing.T) {
	v := New(10, 5)
	v.Follow(0, 15)
	if v.LeftColumn() != 6 {
		t.Errorf("LeftColumn = %d, want 6", v.LeftColumn())
	}
	v.Follow(0, 2)
	if v.LeftColumn() != 2 {
		t.Errorf("LeftColumn = %d, want 2", v.LeftColumn())
	}
}

func TestScrollOff(t *testing.T) {
	v := New(80, 10)
	v.SetScrollOff(2)

	v.Follow(8, 0)
	if v.TopLine() != 1 {
		t.Errorf("TopLine = %d, want 1", v.TopLine())
	}
	v.Follow(2, 0)
	if v.TopLine() != 0 {
		t.Errorf("TopLine = %d, want 0", v.TopLine())
	}

	v.SetScrollOff(100)
	v.Follow(30, 0)
	if v.TopLine() > 30 || v.BottomLine() < 30 {
		t.Errorf("large scrolloff lost the cursor: top %d", v.TopLine())
	}
}

func TestClampAndVisibleRange(t *testing.T) {
	v := New(80, 10)
	v.ScrollTo(40)
	v.Clamp(5)
	if v.TopLine() != 4 {
		t.Errorf("TopLine = %d, want 4", v.TopLine())
	}

	v.ScrollTo(0)
	first, last := v.VisibleRange(3)
	if first != 0 || last != 2 {
		t.Errorf("VisibleRange = %d,%d; want 0,2", first, last)
	}

	v.ScrollTo(5)
	for line, want := range map[int]bool{4: false, 5: true, 14: true, 15: false} {
		if got := v.IsLineVisible(line); got != want {
			t.Errorf("IsLineVisible(%d) = %v, want %v", line, got, want)
		}
	}
}

func TestRowConversion(t *testing.T) {
	v := New(80, 10)
	v.ScrollTo(7)
	if v.LineToRow(9) != 2 || v.RowToLine(2) != 9 {
		t.Error("row conversion mismatch")
	}
	v.ScrollBy(-20)
	if v.TopLine() != 0 {
		t.Errorf("ScrollBy should stop at 0, got %d", v.TopLine())
	}
}
