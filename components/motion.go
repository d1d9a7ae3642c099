package components

import (
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// MotionTarget is the latest authoritative cell of an entity together with
// its pixel target. X may lie outside the maze width while a wrap is in
// flight.
type MotionTarget struct {
	X, Y             float64
	Row, Col         int
	LastRow, LastCol int
	WrapDetected     bool
}

// MotionData stores interpolation state for smooth rendering of an entity
// between grid updates. Current is what gets drawn; Target is where it is
// heading.
type MotionData struct {
	EntityID        netconfig.EntityID
	Current         mazegrid.Point
	Target          MotionTarget
	IsLocallyDriven bool
}

var Motion = donburi.NewComponentType[MotionData]()
