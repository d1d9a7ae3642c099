package motion

import (
	"math"

	"github.com/automoto/mazerun-mp/components"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/yohamta/donburi"
)

// rescale changes the topology's cell size and moves every entity so it keeps
// its place in the maze. When the old size was unusable there is nothing to
// scale from, so entities snap to their target cells instead. Returns the
// factor applied, or 0 after a snap.
func rescale(topo *mazegrid.Topology, reg *Registry, size float64) float64 {
	f := topo.SetCellSize(size)
	if !topo.Usable() {
		return 0
	}
	scalable := f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)

	reg.Each(func(_ *donburi.Entry, m *components.MotionData) {
		if scalable {
			m.Current.X *= f
			m.Current.Y *= f
			m.Target.X *= f
			m.Target.Y *= f
			return
		}
		snapToCell(topo, m)
	})

	if !scalable {
		return 0
	}
	return f
}

func snapToCell(topo *mazegrid.Topology, m *components.MotionData) {
	p := topo.ToPixel(m.Target.Row, m.Target.Col)
	m.Target.X, m.Target.Y = p.X, p.Y
	m.Target.WrapDetected = false
	m.Current = p
}
