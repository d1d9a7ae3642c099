package netcomponents

import "github.com/yohamta/donburi"

// NetGridPositionData is a player's authoritative cell. The client never
// lerps it; smoothing happens in pixel space after the cell is applied.
type NetGridPositionData struct {
	Row, Col int
}

var NetGridPosition = donburi.NewComponentType[NetGridPositionData]()
