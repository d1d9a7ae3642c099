package systems

import (
	"github.com/automoto/mazerun-mp/control"
	"github.com/automoto/mazerun-mp/effects"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi/ecs"
)

// NewLocalMoveSystem feeds the held direction to the local driver and
// handles the trails toggle. It runs after UpdateInput and before the
// session system so a step shows up in the same frame.
func NewLocalMoveSystem(d *control.Driver, p *effects.Presenter, clock *FrameClock, onToggle func(trails bool)) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		in := Input(e)
		if in == nil {
			return
		}
		if in.JustPressed(netconfig.ActionToggleTrails) {
			p.SetTrails(!p.Trails())
			if onToggle != nil {
				onToggle(p.Trails())
			}
		}
		d.Update(clock.Delta(), in.Facing)
	}
}
