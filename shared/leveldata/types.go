// Package leveldata provides TMX maze parsing shared by the client and tools.
// It has no dependencies on ebitengine, donburi, or resolv — pure data only.
package leveldata

import (
	"github.com/automoto/mazerun-mp/shared/mazegrid"
)

// MazeData holds everything the client needs from a maze map file.
type MazeData struct {
	Name     string
	Rows     int
	Cols     int
	TileSize int
	Walls    []bool // row-major, len Rows*Cols
	WrapRows []int
	Spawns   []SpawnPoint
}

// SpawnPoint is a player spawn cell.
type SpawnPoint struct {
	Row, Col int
	Index    int
}

// IsWall reports whether the cell is solid. Cells outside the grid are solid.
func (m *MazeData) IsWall(row, col int) bool {
	if row < 0 || row >= m.Rows || col < 0 || col >= m.Cols {
		return true
	}
	return m.Walls[row*m.Cols+col]
}

// OpenCells returns every walkable cell in row-major order.
func (m *MazeData) OpenCells() []mazegrid.Cell {
	var cells []mazegrid.Cell
	for r := 0; r < m.Rows; r++ {
		for c := 0; c < m.Cols; c++ {
			if !m.IsWall(r, c) {
				cells = append(cells, mazegrid.Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Topology builds the grid geometry for this maze at the given cell size.
func (m *MazeData) Topology(cellSize float64) (*mazegrid.Topology, error) {
	return mazegrid.New(m.Rows, m.Cols, cellSize, m.WrapRows)
}
