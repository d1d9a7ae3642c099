package motion

import (
	"math"

	"github.com/automoto/mazerun-mp/components"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/yohamta/donburi"
)

const (
	// DefaultSpeed closes about 87% of the remaining distance per second.
	DefaultSpeed = 8.0
	// DefaultSnapThreshold is the distance in pixels under which current jumps
	// straight to target.
	DefaultSnapThreshold = 0.5
)

// Interpolator eases every entity's current position toward its target once
// per frame.
type Interpolator struct {
	topo  *mazegrid.Topology
	reg   *Registry
	speed float64
	snap  float64
}

func NewInterpolator(topo *mazegrid.Topology, reg *Registry, speed, snap float64) *Interpolator {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	if snap < 0 {
		snap = DefaultSnapThreshold
	}
	return &Interpolator{topo: topo, reg: reg, speed: speed, snap: snap}
}

// Factor returns the fraction of the remaining distance closed over
// deltaMillis.
func (in *Interpolator) Factor(deltaMillis float64) float64 {
	return 1 - math.Exp(-in.speed*deltaMillis/1000)
}

// Tick advances all entities by deltaMillis. It does nothing when the
// topology has no usable cell size or the delta is not a finite, non-negative
// number.
func (in *Interpolator) Tick(deltaMillis float64) {
	if !in.topo.Usable() || math.IsNaN(deltaMillis) || math.IsInf(deltaMillis, 0) || deltaMillis < 0 {
		return
	}
	factor := in.Factor(deltaMillis)
	in.reg.Each(func(_ *donburi.Entry, m *components.MotionData) {
		in.step(m, factor)
	})
}

func (in *Interpolator) step(m *components.MotionData, factor float64) {
	topo := in.topo
	w := topo.Width()
	wraps := topo.HasWrap(m.Target.Row)

	targetX, targetY := m.Target.X, m.Target.Y
	if wraps && !m.Target.WrapDetected {
		targetX = topo.Wrap(targetX)
	}

	if wraps {
		direct := targetX - m.Current.X
		switch {
		case targetX < m.Current.X && math.Abs(direct+w) < math.Abs(direct):
			targetX += w
		case targetX > m.Current.X && math.Abs(direct-w) < math.Abs(direct):
			targetX -= w
		}
	}

	dx := targetX - m.Current.X
	dy := targetY - m.Current.Y
	if math.Hypot(dx, dy) > in.snap {
		m.Current.X += dx * factor
		m.Current.Y += dy * factor
	} else {
		m.Current.X, m.Current.Y = targetX, targetY
	}

	if wraps {
		m.Current.X = topo.Wrap(m.Current.X)
	}
}
