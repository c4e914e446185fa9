package document

import "testing"

func TestRange_End(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		want Point
	}{
		{
			name: "collapsed",
			r:    Collapsed(Point{Key: "t1", Offset: 3}),
			want: Point{Key: "t1", Offset: 3},
		},
		{
			name: "forward same node",
			r: Range{
				Anchor: Point{Key: "t1", Offset: 1},
				Focus:  Point{Key: "t1", Offset: 4},
			},
			want: Point{Key: "t1", Offset: 4},
		},
		{
			name: "backward same node",
			r: Range{
				Anchor: Point{Key: "t1", Offset: 7},
				Focus:  Point{Key: "t1", Offset: 2},
			},
			want: Point{Key: "t1", Offset: 7},
		},
		{
			name: "cross node uses focus",
			r: Range{
				Anchor: Point{Key: "t1", Offset: 9},
				Focus:  Point{Key: "t2", Offset: 0},
			},
			want: Point{Key: "t2", Offset: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.End(); got != tt.want {
				t.Errorf("End() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange_MovedForward(t *testing.T) {
	r := Range{
		Anchor: Point{Key: "t1", Offset: 2},
		Focus:  Point{Key: "t1", Offset: 5},
	}

	fwd := r.MovedForward(3)
	if fwd.Anchor.Offset != 5 || fwd.Focus.Offset != 8 {
		t.Errorf("MovedForward(3) = %v", fwd)
	}

	back := r.MovedForward(-4)
	if back.Anchor.Offset != 0 {
		t.Errorf("expected anchor clamped to 0, got %d", back.Anchor.Offset)
	}
	if back.Focus.Offset != 1 {
		t.Errorf("expected focus 1, got %d", back.Focus.Offset)
	}
}

func TestRange_CollapsedToEnd(t *testing.T) {
	r := Range{
		Anchor: Point{Key: "t1", Offset: 1},
		Focus:  Point{Key: "t1", Offset: 6},
	}
	c := r.CollapsedToEnd()
	if !c.IsCollapsed() {
		t.Fatal("expected collapsed range")
	}
	if c.Anchor.Offset != 6 {
		t.Errorf("expected offset 6, got %d", c.Anchor.Offset)
	}
}

func TestMarkSet(t *testing.T) {
	m := MarkSet{"bold", "italic"}

	if !m.Contains("bold") {
		t.Error("expected Contains(bold) = true")
	}
	if m.Contains("underline") {
		t.Error("expected Contains(underline) = false")
	}
	if !m.Equal(MarkSet{"bold", "italic"}) {
		t.Error("expected equal sets")
	}
	if m.Equal(MarkSet{"italic", "bold"}) {
		t.Error("order matters for Equal")
	}

	c := m.Clone()
	c[0] = "strike"
	if m[0] != "bold" {
		t.Error("Clone() must not share backing storage")
	}
}

func TestLeaf_Len(t *testing.T) {
	if got := (Leaf{Text: "héllo"}).Len(); got != 5 {
		t.Errorf("Len() = %d, want 5", got)
	}
	if got := (Leaf{}).Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}
