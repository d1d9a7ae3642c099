package components

import (
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// KnockbackDuration is how long a knockback offset takes to decay, in seconds.
const KnockbackDuration = 0.25

// ImmunityState is present while the server reports the player immune.
type ImmunityState struct {
	Elapsed float64 // seconds since immunity began, drives the blink phase
}

// FrozenState is present while the server reports the player frozen.
type FrozenState struct {
	Elapsed float64
}

// KnockbackState is a short visual shove that decays to nothing.
type KnockbackState struct {
	Dir       netconfig.Direction
	Remaining float64
}

// VisualStateData holds the transient visual states a player can be in. Each
// state is a named optional field; nil means inactive.
type VisualStateData struct {
	Immunity  *ImmunityState
	Frozen    *FrozenState
	Knockback *KnockbackState

	prevFlags netconfig.VisualFlags
}

var VisualState = donburi.NewComponentType[VisualStateData]()

// Apply reconciles the states with flags reported by the server. Immunity and
// frozen follow the flags; knockback starts on the rising edge of its flag and
// then runs out on its own.
func (v *VisualStateData) Apply(flags netconfig.VisualFlags, knockDir netconfig.Direction) {
	switch {
	case flags.Has(netconfig.VisualImmune) && v.Immunity == nil:
		v.Immunity = &ImmunityState{}
	case !flags.Has(netconfig.VisualImmune):
		v.Immunity = nil
	}

	switch {
	case flags.Has(netconfig.VisualFrozen) && v.Frozen == nil:
		v.Frozen = &FrozenState{}
	case !flags.Has(netconfig.VisualFrozen):
		v.Frozen = nil
	}

	rising := flags.Has(netconfig.VisualKnockback) && !v.prevFlags.Has(netconfig.VisualKnockback)
	if rising && knockDir != netconfig.DirNone {
		v.Knockback = &KnockbackState{Dir: knockDir, Remaining: KnockbackDuration}
	}
	v.prevFlags = flags
}

// Advance moves state timers forward by dt seconds.
func (v *VisualStateData) Advance(dt float64) {
	if v.Immunity != nil {
		v.Immunity.Elapsed += dt
	}
	if v.Frozen != nil {
		v.Frozen.Elapsed += dt
	}
	if v.Knockback != nil {
		v.Knockback.Remaining -= dt
		if v.Knockback.Remaining <= 0 {
			v.Knockback = nil
		}
	}
}

// KnockbackOffset returns the current sprite displacement in pixels. It peaks
// at half a cell and decays linearly.
func (v *VisualStateData) KnockbackOffset(cellSize float64) (dx, dy float64) {
	if v.Knockback == nil {
		return 0, 0
	}
	amount := cellSize / 2 * (v.Knockback.Remaining / KnockbackDuration)
	dr, dc := v.Knockback.Dir.Delta()
	return float64(dc) * amount, float64(dr) * amount
}

// Blink reports whether an immune sprite is in the hidden half of its blink.
func (v *VisualStateData) Blink() bool {
	if v.Immunity == nil {
		return false
	}
	return int(v.Immunity.Elapsed*8)%2 == 1
}
