package mazegrid

import (
	"errors"
	"math"
	"testing"
)

func TestNewRejectsBadInput(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		wrap       []int
	}{
		{"zero rows", 0, 10, nil},
		{"negative cols", 5, -1, nil},
		{"wrap row past end", 5, 10, []int{5}},
		{"negative wrap row", 5, 10, []int{-1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.rows, tc.cols, 10, tc.wrap)
			if !errors.Is(err, ErrInvalidTopology) {
				t.Fatalf("err = %v, want ErrInvalidTopology", err)
			}
		})
	}
}

func TestGeometry(t *testing.T) {
	topo := MustNew(20, 32, 10, 5, 9)

	if got := topo.Width(); got != 320 {
		t.Fatalf("width = %v, want 320", got)
	}
	if got := topo.Height(); got != 200 {
		t.Fatalf("height = %v, want 200", got)
	}
	if got := topo.ToPixel(2, 3); got != (Point{X: 35, Y: 25}) {
		t.Fatalf("ToPixel(2,3) = %+v, want {35 25}", got)
	}
	if !topo.HasWrap(5) || !topo.HasWrap(9) || topo.HasWrap(6) {
		t.Fatalf("HasWrap mismatch for rows %v", topo.WrapRows())
	}
	if got := topo.WrapRows(); len(got) != 2 || got[0] != 5 || got[1] != 9 {
		t.Fatalf("WrapRows = %v, want [5 9]", got)
	}
}

func TestWrap(t *testing.T) {
	topo := MustNew(10, 32, 10)
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{5, 5},
		{320, 0},
		{325, 5},
		{-5, 315},
		{-330, 310},
		{965, 5},
	}
	for _, tc := range cases {
		if got := topo.Wrap(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Wrap(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWrapDeltaTakesShortWay(t *testing.T) {
	topo := MustNew(10, 32, 10)
	if got := topo.WrapDelta(315, 5); got != 10 {
		t.Fatalf("WrapDelta(315,5) = %v, want 10", got)
	}
	if got := topo.WrapDelta(5, 315); got != -10 {
		t.Fatalf("WrapDelta(5,315) = %v, want -10", got)
	}
	if got := topo.WrapDelta(100, 150); got != 50 {
		t.Fatalf("WrapDelta(100,150) = %v, want 50", got)
	}
}

func TestToCellAndClamp(t *testing.T) {
	topo := MustNew(10, 32, 10, 5)

	if got := topo.ToCell(Point{X: 35, Y: 25}); got != (Cell{Row: 2, Col: 3}) {
		t.Fatalf("ToCell = %+v, want {2 3}", got)
	}
	// Virtual x past the seam lands back on column 0 of a wrapping row.
	if got := topo.ToCell(Point{X: 325, Y: 55}); got != (Cell{Row: 5, Col: 0}) {
		t.Fatalf("ToCell on wrap row = %+v, want {5 0}", got)
	}
	if got := topo.ClampCell(-3, 40); got != (Cell{Row: 0, Col: 31}) {
		t.Fatalf("ClampCell = %+v, want {0 31}", got)
	}
}

func TestSetCellSize(t *testing.T) {
	topo := MustNew(10, 32, 10)
	if f := topo.SetCellSize(20); f != 2 {
		t.Fatalf("scale = %v, want 2", f)
	}
	if f := topo.SetCellSize(0); f != 0 {
		t.Fatalf("scale to zero = %v, want 0", f)
	}
	if topo.Usable() {
		t.Fatal("zero cell size should not be usable")
	}
	if f := topo.SetCellSize(10); f != 0 {
		t.Fatalf("scale from zero = %v, want 0", f)
	}
}

func TestFitCellSize(t *testing.T) {
	topo := MustNew(20, 32, 10)
	if got := topo.FitCellSize(640, 480); got != 20 {
		t.Fatalf("FitCellSize(640,480) = %v, want 20", got)
	}
	if got := topo.FitCellSize(640, 200); got != 10 {
		t.Fatalf("FitCellSize(640,200) = %v, want 10", got)
	}
	if got := topo.FitCellSize(0, 200); got != 0 {
		t.Fatalf("FitCellSize(0,200) = %v, want 0", got)
	}
}
