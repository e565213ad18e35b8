package brush

import "testing"

func TestDotSinglePixel(t *testing.T) {
	pen := Pen{R: 10, G: 20, B: 30, Diameter: 1}

	edits := Dot(8, 8, 3, 4, pen)
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	e := edits[0]
	if e.X != 3 || e.Y != 4 || e.R != 10 || e.G != 20 || e.B != 30 {
		t.Errorf("unexpected edit %+v", e)
	}

	if edits := Dot(8, 8, -1, 4, pen); edits != nil {
		t.Errorf("out-of-bounds dot produced %d edits", len(edits))
	}
	if edits := Dot(8, 8, 3, 8, pen); edits != nil {
		t.Errorf("out-of-bounds dot produced %d edits", len(edits))
	}
}

func TestThinSegmentConnected(t *testing.T) {
	pen := Pen{R: 255, Diameter: 1}

	cases := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"horizontal", 1, 3, 6, 3},
		{"vertical", 4, 0, 4, 7},
		{"diagonal", 0, 0, 7, 7},
		{"steep", 2, 0, 3, 7},
		{"reverse", 6, 5, 1, 1},
		{"degenerate", 3, 3, 3, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edits := Segment(8, 8, tc.x1, tc.y1, tc.x2, tc.y2, pen)
			if len(edits) == 0 {
				t.Fatal("no edits produced")
			}

			first, last := edits[0], edits[len(edits)-1]
			if first.X != tc.x1 || first.Y != tc.y1 {
				t.Errorf("segment starts at (%d,%d), want (%d,%d)", first.X, first.Y, tc.x1, tc.y1)
			}
			if last.X != tc.x2 || last.Y != tc.y2 {
				t.Errorf("segment ends at (%d,%d), want (%d,%d)", last.X, last.Y, tc.x2, tc.y2)
			}

			// 8-connectivity: consecutive pixels never step more than one
			// in each axis.
			for i := 1; i < len(edits); i++ {
				dx := edits[i].X - edits[i-1].X
				dy := edits[i].Y - edits[i-1].Y
				if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
					t.Fatalf("gap between %+v and %+v", edits[i-1], edits[i])
				}
			}
		})
	}
}

func TestThinSegmentClipsToCanvas(t *testing.T) {
	pen := Pen{R: 255, Diameter: 1}
	edits := Segment(4, 4, -2, 1, 6, 1, pen)
	for _, e := range edits {
		if e.X < 0 || e.X >= 4 || e.Y < 0 || e.Y >= 4 {
			t.Errorf("edit %+v outside the canvas", e)
		}
	}
	if len(edits) != 4 {
		t.Errorf("got %d in-bounds edits, want 4", len(edits))
	}
}
