package gridmove

import (
	"testing"

	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

// testMaze is 4x6:
//
//	######
//	......   <- wraps
//	#.##.#
//	######
func testMaze() *leveldata.MazeData {
	layout := []string{
		"######",
		"......",
		"#.##.#",
		"######",
	}
	m := &leveldata.MazeData{Name: "test", Rows: len(layout), Cols: len(layout[0]), TileSize: 16}
	for _, row := range layout {
		for _, ch := range row {
			m.Walls = append(m.Walls, ch == '#')
		}
	}
	m.WrapRows = leveldata.DetectWrapRows(m)
	return m
}

func mustGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(testMaze())
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

func TestOpen(t *testing.T) {
	g := mustGrid(t)
	cases := []struct {
		cell mazegrid.Cell
		want bool
	}{
		{mazegrid.Cell{Row: 1, Col: 0}, true},
		{mazegrid.Cell{Row: 1, Col: 5}, true},
		{mazegrid.Cell{Row: 2, Col: 1}, true},
		{mazegrid.Cell{Row: 2, Col: 2}, false},
		{mazegrid.Cell{Row: 0, Col: 0}, false},
		{mazegrid.Cell{Row: -1, Col: 0}, false},
		{mazegrid.Cell{Row: 1, Col: 6}, false},
	}
	for _, tc := range cases {
		if got := g.Open(tc.cell); got != tc.want {
			t.Fatalf("Open(%+v) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestStepWrapsThroughTunnel(t *testing.T) {
	g := mustGrid(t)

	next, ok := g.Step(mazegrid.Cell{Row: 1, Col: 5}, netconfig.DirRight)
	if !ok || next != (mazegrid.Cell{Row: 1, Col: 0}) {
		t.Fatalf("step right from col 5 = %+v,%v, want {1 0},true", next, ok)
	}
	next, ok = g.Step(mazegrid.Cell{Row: 1, Col: 0}, netconfig.DirLeft)
	if !ok || next != (mazegrid.Cell{Row: 1, Col: 5}) {
		t.Fatalf("step left from col 0 = %+v,%v, want {1 5},true", next, ok)
	}
}

func TestStepBlockedByWall(t *testing.T) {
	g := mustGrid(t)
	from := mazegrid.Cell{Row: 2, Col: 1}

	if _, ok := g.Step(from, netconfig.DirRight); ok {
		t.Fatal("stepping into a wall should fail")
	}
	if next, ok := g.Step(from, netconfig.DirUp); !ok || next != (mazegrid.Cell{Row: 1, Col: 1}) {
		t.Fatalf("step up = %+v,%v, want {1 1},true", next, ok)
	}
	if _, ok := g.Step(from, netconfig.DirNone); ok {
		t.Fatal("DirNone must not move")
	}
}

func TestExits(t *testing.T) {
	g := mustGrid(t)
	exits := g.Exits(mazegrid.Cell{Row: 1, Col: 1})
	want := map[netconfig.Direction]bool{
		netconfig.DirDown:  true,
		netconfig.DirLeft:  true,
		netconfig.DirRight: true,
	}
	if len(exits) != len(want) {
		t.Fatalf("exits = %v, want 3 directions", exits)
	}
	for _, d := range exits {
		if !want[d] {
			t.Fatalf("unexpected exit %s", d)
		}
	}
}

func TestOccupancy(t *testing.T) {
	g := mustGrid(t)
	cell := mazegrid.Cell{Row: 1, Col: 2}

	g.Place(1, cell)
	if !g.Occupied(cell, 2) {
		t.Fatal("cell should be occupied by body 1")
	}
	if g.Occupied(cell, 1) {
		t.Fatal("a body must not block itself")
	}

	g.Place(1, mazegrid.Cell{Row: 1, Col: 3})
	if g.Occupied(cell, 2) {
		t.Fatal("body moved away but cell still occupied")
	}

	g.Forget(1)
	if g.Occupied(mazegrid.Cell{Row: 1, Col: 3}, 2) {
		t.Fatal("forgotten body still occupies its cell")
	}
}

func TestMoverBuffersTurns(t *testing.T) {
	g := mustGrid(t)
	m := NewMover(mazegrid.Cell{Row: 1, Col: 0}, 0.1)
	m.Want(netconfig.DirRight)

	if d := m.Update(0.05, g.Step); d != netconfig.DirNone {
		t.Fatalf("stepped before the interval: %v", d)
	}
	if d := m.Update(0.05, g.Step); d != netconfig.DirRight || m.Cell.Col != 1 {
		t.Fatalf("first step: dir %v cell %+v", d, m.Cell)
	}

	// down is open below column 1, so the early press is taken right away
	m.Want(netconfig.DirDown)
	m.Update(0.1, g.Step)
	if m.Cell != (mazegrid.Cell{Row: 2, Col: 1}) || m.CurrentDir != netconfig.DirDown {
		t.Fatalf("after turn: cell %+v dir %v", m.Cell, m.CurrentDir)
	}

	// blocked below: the mover stops
	if d := m.Update(0.1, g.Step); d != netconfig.DirNone || m.CurrentDir != netconfig.DirNone {
		t.Fatalf("expected stop, got dir %v current %v", d, m.CurrentDir)
	}
}

func TestMoverKeepsGoingUntilDesiredOpens(t *testing.T) {
	g := mustGrid(t)
	m := NewMover(mazegrid.Cell{Row: 1, Col: 2}, 0.1)
	m.Want(netconfig.DirRight)
	m.Update(0.1, g.Step) // col 3
	m.Want(netconfig.DirDown)
	m.Update(0.1, g.Step) // down blocked at col 3, continue right to col 4
	if m.Cell != (mazegrid.Cell{Row: 1, Col: 4}) {
		t.Fatalf("cell = %+v, want {1 4}", m.Cell)
	}
	m.Update(0.1, g.Step) // down open at col 4
	if m.Cell != (mazegrid.Cell{Row: 2, Col: 4}) {
		t.Fatalf("cell = %+v, want {2 4}", m.Cell)
	}
}

func TestMoverWrapsOnWrapRow(t *testing.T) {
	g := mustGrid(t)
	m := NewMover(mazegrid.Cell{Row: 1, Col: 5}, 0.1)
	m.Want(netconfig.DirRight)
	m.Update(0.1, g.Step)
	if m.Cell != (mazegrid.Cell{Row: 1, Col: 0}) {
		t.Fatalf("cell = %+v, want {1 0}", m.Cell)
	}
}
