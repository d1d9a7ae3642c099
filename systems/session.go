package systems

import (
	"time"

	"github.com/automoto/mazerun-mp/effects"
	"github.com/automoto/mazerun-mp/motion"
	"github.com/yohamta/donburi/ecs"
)

// FrameClock measures wall time between frames, capped at max so a stall or a
// dragged window does not produce one huge step.
type FrameClock struct {
	last time.Time
	dt   time.Duration
	max  time.Duration
	now  func() time.Time
}

func NewFrameClock(max time.Duration) *FrameClock {
	return &FrameClock{max: max, now: time.Now}
}

// Advance measures the time since the previous frame. The first frame has a
// zero delta.
func (c *FrameClock) Advance() {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		c.dt = 0
		return
	}
	dt := now.Sub(c.last)
	c.last = now
	switch {
	case dt < 0:
		dt = 0
	case c.max > 0 && dt > c.max:
		dt = c.max
	}
	c.dt = dt
}

// Delta is the duration of the current frame.
func (c *FrameClock) Delta() time.Duration { return c.dt }

// NewClockSystem must be the first system of a scene.
func NewClockSystem(c *FrameClock) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		c.Advance()
	}
}

// NewSessionSystem applies queued events, advances interpolation and then
// the render-side effects, once per frame.
func NewSessionSystem(s *motion.Session, p *effects.Presenter, clock *FrameClock) func(*ecs.ECS) {
	return func(_ *ecs.ECS) {
		dt := clock.Delta()
		s.Drain()
		s.Tick(float64(dt) / float64(time.Millisecond))
		p.Update(dt.Seconds())
	}
}
