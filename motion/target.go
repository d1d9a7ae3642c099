package motion

import (
	"github.com/automoto/mazerun-mp/components"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"go.uber.org/zap"
)

// WrapDirection classifies a target change on a wrap row.
type WrapDirection uint8

const (
	WrapNone WrapDirection = iota
	// WrapRightToLeft: the entity left through the right edge and re-entered on
	// the left.
	WrapRightToLeft
	// WrapLeftToRight is the mirror case.
	WrapLeftToRight
)

func (w WrapDirection) String() string {
	switch w {
	case WrapRightToLeft:
		return "right-to-left"
	case WrapLeftToRight:
		return "left-to-right"
	default:
		return "none"
	}
}

// TargetChange describes what a SetTarget call did.
type TargetChange struct {
	Created bool
	Clamped bool
	Wrap    WrapDirection
	// EdgePair is true when the wrap was an exact last-column/first-column
	// transition rather than a large column jump.
	EdgePair bool
	// From is the cell the entity was recorded at before this change.
	From mazegrid.Cell
	To   mazegrid.Cell
	// Last is the previous recorded cell that wrap detection compares
	// against. It trails From by one update.
	Last    mazegrid.Cell
	ColDiff int // To.Col - Last.Col
}

// TargetUpdater applies authoritative grid positions to motion state.
type TargetUpdater struct {
	topo *mazegrid.Topology
	reg  *Registry
	log  *zap.Logger
}

func NewTargetUpdater(topo *mazegrid.Topology, reg *Registry, log *zap.Logger) *TargetUpdater {
	if log == nil {
		log = zap.NewNop()
	}
	return &TargetUpdater{topo: topo, reg: reg, log: log}
}

// SetTarget records (row, col) as the latest position of id. Unknown ids are
// created in place with no interpolation. Out-of-range cells are clamped.
func (u *TargetUpdater) SetTarget(id netconfig.EntityID, row, col int) TargetChange {
	cell := u.topo.ClampCell(row, col)
	clamped := cell.Row != row || cell.Col != col
	if clamped {
		u.log.Debug("target clamped",
			zap.Uint("entity", uint(id)),
			zap.Int("row", row), zap.Int("col", col),
			zap.Int("clampedRow", cell.Row), zap.Int("clampedCol", cell.Col))
	}

	m, ok := u.reg.Get(id)
	if !ok {
		u.reg.Create(id, newMotionState(u.topo, cell))
		return TargetChange{Created: true, Clamped: clamped, From: cell, To: cell, Last: cell}
	}

	change := applyTarget(u.topo, m, cell)
	change.Clamped = clamped
	if change.Wrap != WrapNone {
		u.log.Debug("wrap detected",
			zap.Uint("entity", uint(id)),
			zap.Stringer("dir", change.Wrap),
			zap.Bool("edgePair", change.EdgePair),
			zap.Int("lastCol", change.Last.Col), zap.Int("fromCol", change.From.Col), zap.Int("toCol", change.To.Col))
	}
	return change
}

func newMotionState(topo *mazegrid.Topology, cell mazegrid.Cell) components.MotionData {
	p := topo.ToPixel(cell.Row, cell.Col)
	return components.MotionData{
		Current: p,
		Target: components.MotionTarget{
			X: p.X, Y: p.Y,
			Row: cell.Row, Col: cell.Col,
			LastRow: cell.Row, LastCol: cell.Col,
		},
	}
}

// applyTarget moves m's target to cell. Wrap detection compares cell against
// the previous recorded cell (lastRow, lastCol), not the current one.
func applyTarget(topo *mazegrid.Topology, m *components.MotionData, cell mazegrid.Cell) TargetChange {
	t := &m.Target
	from := mazegrid.Cell{Row: t.Row, Col: t.Col}
	last := mazegrid.Cell{Row: t.LastRow, Col: t.LastCol}
	newPixel := topo.ToPixel(cell.Row, cell.Col)
	cols := topo.Cols()
	colDiff := cell.Col - last.Col

	change := TargetChange{From: from, To: cell, Last: last, ColDiff: colDiff}

	if topo.HasWrap(cell.Row) && topo.HasWrap(last.Row) {
		rightEdge := last.Col == cols-1 && cell.Col == 0
		leftEdge := last.Col == 0 && cell.Col == cols-1
		switch {
		case 2*colDiff < -cols || rightEdge:
			change.Wrap = WrapRightToLeft
			change.EdgePair = rightEdge
		case 2*colDiff > cols || leftEdge:
			change.Wrap = WrapLeftToRight
			change.EdgePair = leftEdge
		}
	}

	w := topo.Width()
	switch change.Wrap {
	case WrapRightToLeft:
		if m.Current.X < w/2 {
			m.Current.X += w
		}
		t.X = newPixel.X + w
	case WrapLeftToRight:
		if m.Current.X > w/2 {
			m.Current.X -= w
		}
		t.X = newPixel.X - w
	default:
		t.X = newPixel.X
	}
	t.Y = newPixel.Y

	t.LastRow, t.LastCol = t.Row, t.Col
	t.Row, t.Col = cell.Row, cell.Col
	t.WrapDetected = change.Wrap != WrapNone
	return change
}
