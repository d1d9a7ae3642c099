package netcomponents

import (
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	Name         string
	ColorIndex   int
	Flags        netconfig.VisualFlags
	KnockDir     netconfig.Direction // Direction of the last knockback, valid while VisualKnockback is set
	LastSequence uint32              // Last move input applied by the server (for prediction reconciliation)
	IsLocal      bool                // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
