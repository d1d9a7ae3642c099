package gridmove

import (
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

// Mover walks one entity cell by cell at a fixed cadence. A desired direction
// is buffered until it can be taken, so a turn pressed slightly early still
// happens at the next junction.
type Mover struct {
	Cell       mazegrid.Cell
	CurrentDir netconfig.Direction
	DesiredDir netconfig.Direction

	interval float64 // seconds per cell
	elapsed  float64
}

func NewMover(start mazegrid.Cell, interval float64) *Mover {
	return &Mover{Cell: start, interval: interval}
}

// Want buffers a direction. DirNone keeps the previous wish.
func (m *Mover) Want(dir netconfig.Direction) {
	if dir != netconfig.DirNone {
		m.DesiredDir = dir
	}
}

// Reset puts the mover on cell and stops it.
func (m *Mover) Reset(cell mazegrid.Cell) {
	m.Cell = cell
	m.CurrentDir = netconfig.DirNone
	m.elapsed = 0
}

// Update advances the step clock by dt seconds and takes at most one step.
// It returns the direction stepped in, or DirNone.
func (m *Mover) Update(dt float64, step func(mazegrid.Cell, netconfig.Direction) (mazegrid.Cell, bool)) netconfig.Direction {
	m.elapsed += dt
	if m.elapsed < m.interval {
		return netconfig.DirNone
	}
	m.elapsed -= m.interval
	// a long stall must not bank several steps
	if m.elapsed > m.interval {
		m.elapsed = 0
	}

	if m.DesiredDir != netconfig.DirNone {
		if next, ok := step(m.Cell, m.DesiredDir); ok {
			m.Cell = next
			m.CurrentDir = m.DesiredDir
			return m.CurrentDir
		}
	}
	if next, ok := step(m.Cell, m.CurrentDir); ok {
		m.Cell = next
		return m.CurrentDir
	}
	m.CurrentDir = netconfig.DirNone
	m.elapsed = 0
	return netconfig.DirNone
}
