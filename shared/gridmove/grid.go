// Package gridmove implements one-cell-at-a-time movement on a maze grid,
// including horizontal wrap through tunnel rows. The local mover and the
// practice bots share it so both obey the same walls.
package gridmove

import (
	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/solarlune/resolv"
)

// Resolv tags for the maze collision space.
const (
	tagWall = "wall"
	tagBody = "body"
)

// unit is the collision-space size of one maze cell. Objects are inset by one
// unit on each side so they never spill into a neighbouring space cell.
const unit = 4

// Grid answers wall and occupancy queries for a maze.
type Grid struct {
	maze   *leveldata.MazeData
	topo   *mazegrid.Topology
	space  *resolv.Space
	probe  *resolv.Object
	bodies map[netconfig.EntityID]*resolv.Object
}

// NewGrid builds a resolv space with one solid object per wall cell.
func NewGrid(maze *leveldata.MazeData) (*Grid, error) {
	topo, err := maze.Topology(unit)
	if err != nil {
		return nil, err
	}

	space := resolv.NewSpace(maze.Cols*unit, maze.Rows*unit, unit, unit)
	for r := 0; r < maze.Rows; r++ {
		for c := 0; c < maze.Cols; c++ {
			if maze.IsWall(r, c) {
				space.Add(newCellObject(r, c, tagWall))
			}
		}
	}

	probe := newCellObject(0, 0, "probe")
	space.Add(probe)

	return &Grid{
		maze:   maze,
		topo:   topo,
		space:  space,
		probe:  probe,
		bodies: make(map[netconfig.EntityID]*resolv.Object),
	}, nil
}

func newCellObject(row, col int, tag string) *resolv.Object {
	obj := resolv.NewObject(float64(col*unit+1), float64(row*unit+1), unit-2, unit-2, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, unit-2, unit-2))
	return obj
}

func moveTo(obj *resolv.Object, cell mazegrid.Cell) {
	obj.X = float64(cell.Col*unit + 1)
	obj.Y = float64(cell.Row*unit + 1)
	obj.Update()
}

func (g *Grid) Maze() *leveldata.MazeData { return g.maze }

// Topology returns the grid geometry. Its cell size is the collision unit and
// must not be used for rendering.
func (g *Grid) Topology() *mazegrid.Topology { return g.topo }

// Open reports whether a cell exists and is not a wall.
func (g *Grid) Open(cell mazegrid.Cell) bool {
	if !g.topo.InBounds(cell.Row, cell.Col) {
		return false
	}
	moveTo(g.probe, cell)
	return g.probe.Check(0, 0, tagWall) == nil
}

// Neighbor returns the cell one step in dir, wrapping through tunnel rows.
// ok is false when the step leaves the grid.
func (g *Grid) Neighbor(from mazegrid.Cell, dir netconfig.Direction) (mazegrid.Cell, bool) {
	dr, dc := dir.Delta()
	next := mazegrid.Cell{Row: from.Row + dr, Col: from.Col + dc}
	if dr == 0 && g.topo.HasWrap(from.Row) {
		cols := g.maze.Cols
		next.Col = (next.Col + cols) % cols
	}
	return next, g.topo.InBounds(next.Row, next.Col)
}

// Step moves one cell in dir if the destination is open.
func (g *Grid) Step(from mazegrid.Cell, dir netconfig.Direction) (mazegrid.Cell, bool) {
	if dir == netconfig.DirNone {
		return from, false
	}
	next, ok := g.Neighbor(from, dir)
	if !ok || !g.Open(next) {
		return from, false
	}
	return next, true
}

// Exits lists the directions that lead to an open cell.
func (g *Grid) Exits(from mazegrid.Cell) []netconfig.Direction {
	var exits []netconfig.Direction
	for _, d := range netconfig.Directions {
		if _, ok := g.Step(from, d); ok {
			exits = append(exits, d)
		}
	}
	return exits
}

// Place records a body at cell, creating it on first use.
func (g *Grid) Place(id netconfig.EntityID, cell mazegrid.Cell) {
	obj, ok := g.bodies[id]
	if !ok {
		obj = newCellObject(cell.Row, cell.Col, tagBody)
		obj.Data = id
		g.space.Add(obj)
		g.bodies[id] = obj
		return
	}
	moveTo(obj, cell)
}

// Forget removes a body.
func (g *Grid) Forget(id netconfig.EntityID) {
	if obj, ok := g.bodies[id]; ok {
		g.space.Remove(obj)
		delete(g.bodies, id)
	}
}

// Occupied reports whether a body other than self sits in cell.
func (g *Grid) Occupied(cell mazegrid.Cell, self netconfig.EntityID) bool {
	if !g.topo.InBounds(cell.Row, cell.Col) {
		return false
	}
	moveTo(g.probe, cell)
	check := g.probe.Check(0, 0, tagBody)
	if check == nil {
		return false
	}
	for _, o := range check.ObjectsByTags(tagBody) {
		if id, ok := o.Data.(netconfig.EntityID); ok && id != self {
			return true
		}
	}
	return false
}
