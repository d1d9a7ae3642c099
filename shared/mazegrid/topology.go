// Package mazegrid describes the static geometry of a maze: grid size, cell
// size and which rows wrap horizontally. It has no dependencies on ebiten or
// donburi so it can be shared by the client, tools and tests.
package mazegrid

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidTopology is returned when a topology cannot be built from the
// given dimensions.
var ErrInvalidTopology = errors.New("invalid maze topology")

// Point is a pixel-space position.
type Point struct {
	X, Y float64
}

// Cell is a grid position.
type Cell struct {
	Row, Col int
}

// Topology is the grid shape of a maze. Rows and columns are fixed for a
// session; the cell size follows the viewport.
type Topology struct {
	rows     int
	cols     int
	cellSize float64
	wrapRows map[int]struct{}
}

// New builds a topology. Every wrap row must lie inside [0, rows).
func New(rows, cols int, cellSize float64, wrapRows []int) (*Topology, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", ErrInvalidTopology, rows, cols)
	}

	t := &Topology{
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
		wrapRows: make(map[int]struct{}, len(wrapRows)),
	}
	for _, r := range wrapRows {
		if r < 0 || r >= rows {
			return nil, fmt.Errorf("%w: wrap row %d outside [0,%d)", ErrInvalidTopology, r, rows)
		}
		t.wrapRows[r] = struct{}{}
	}
	return t, nil
}

// MustNew is New for fixtures and tests.
func MustNew(rows, cols int, cellSize float64, wrapRows ...int) *Topology {
	t, err := New(rows, cols, cellSize, wrapRows)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Topology) Rows() int { return t.rows }

func (t *Topology) Cols() int { return t.cols }

func (t *Topology) CellSize() float64 { return t.cellSize }

// Width is the pixel width of the maze, which is also the wrap period.
func (t *Topology) Width() float64 { return float64(t.cols) * t.cellSize }

func (t *Topology) Height() float64 { return float64(t.rows) * t.cellSize }

// HasWrap reports whether column 0 and column cols-1 of row are adjacent.
func (t *Topology) HasWrap(row int) bool {
	_, ok := t.wrapRows[row]
	return ok
}

// Usable reports whether pixel math on this topology produces finite values.
func (t *Topology) Usable() bool {
	return t.cellSize > 0 && !math.IsInf(t.cellSize, 0) && !math.IsNaN(t.cellSize)
}

// WrapRows returns the wrapping rows in ascending order.
func (t *Topology) WrapRows() []int {
	out := make([]int, 0, len(t.wrapRows))
	for r := range t.wrapRows {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// ToPixel returns the centre of a cell in pixels.
func (t *Topology) ToPixel(row, col int) Point {
	half := t.cellSize / 2
	return Point{
		X: float64(col)*t.cellSize + half,
		Y: float64(row)*t.cellSize + half,
	}
}

// ToCell returns the cell containing a pixel position. X is wrapped first on
// wrapping rows.
func (t *Topology) ToCell(p Point) Cell {
	if !t.Usable() {
		return Cell{}
	}
	row := int(math.Floor(p.Y / t.cellSize))
	x := p.X
	if t.HasWrap(row) {
		x = t.Wrap(x)
	}
	return t.ClampCell(row, int(math.Floor(x/t.cellSize)))
}

// InBounds reports whether (row, col) addresses a cell of the grid.
func (t *Topology) InBounds(row, col int) bool {
	return row >= 0 && row < t.rows && col >= 0 && col < t.cols
}

// ClampCell pulls (row, col) into the grid.
func (t *Topology) ClampCell(row, col int) Cell {
	return Cell{
		Row: clampInt(row, 0, t.rows-1),
		Col: clampInt(col, 0, t.cols-1),
	}
}

// Wrap normalizes x into [0, Width()). It is a no-op on an unusable topology.
func (t *Topology) Wrap(x float64) float64 {
	w := t.Width()
	if w <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	x = math.Mod(x, w)
	if x < 0 {
		x += w
	}
	// x+w can round up to exactly w for tiny negative x
	if x >= w {
		x -= w
	}
	return x
}

// WrapDelta returns the horizontal offset from x0 to x1 taking the shorter way
// around the cylinder.
func (t *Topology) WrapDelta(x0, x1 float64) float64 {
	d := x1 - x0
	w := t.Width()
	if w <= 0 {
		return d
	}
	if d > w/2 {
		d -= w
	} else if d < -w/2 {
		d += w
	}
	return d
}

// SetCellSize changes the cell size and returns the factor pixel positions
// must be multiplied by. The factor is 0 when the previous size was unusable.
func (t *Topology) SetCellSize(size float64) float64 {
	old := t.cellSize
	t.cellSize = size
	if old <= 0 || size <= 0 {
		return 0
	}
	return size / old
}

// FitCellSize returns the largest cell size that fits the grid inside a
// viewport of the given pixel dimensions.
func (t *Topology) FitCellSize(viewW, viewH int) float64 {
	if viewW <= 0 || viewH <= 0 {
		return 0
	}
	return math.Min(float64(viewW)/float64(t.cols), float64(viewH)/float64(t.rows))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
