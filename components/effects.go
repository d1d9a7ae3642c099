package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// SpawnPopData scales a freshly joined player's sprite up from nothing.
type SpawnPopData struct {
	Tween *gween.Tween
	Scale float64
}

var SpawnPop = donburi.NewComponentType[SpawnPopData]()

// SeamFlashData fades out a marker drawn where an entity crossed a wrap seam.
type SeamFlashData struct {
	Tween *gween.Tween
	Alpha float64
	Row   int
	Left  bool // flash drawn on the left edge (true) or the right edge
}

var SeamFlash = donburi.NewComponentType[SeamFlashData]()

// advanceTween steps a tween and reports whether it finished. A nil tween counts
// as finished.
func advanceTween(tw *gween.Tween, dt float64) (float64, bool) {
	if tw == nil {
		return 0, true
	}
	v, done := tw.Update(float32(dt))
	return float64(v), done
}

// Update advances the pop and returns true once the sprite is at full size.
func (p *SpawnPopData) Update(dt float64) bool {
	v, done := advanceTween(p.Tween, dt)
	if done {
		p.Scale = 1
		p.Tween = nil
		return true
	}
	p.Scale = v
	return false
}

// Update advances the fade and returns true once it is invisible.
func (f *SeamFlashData) Update(dt float64) bool {
	v, done := advanceTween(f.Tween, dt)
	if done {
		f.Alpha = 0
		f.Tween = nil
		return true
	}
	f.Alpha = v
	return false
}
