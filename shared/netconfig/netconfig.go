// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so tools and the headless core stay buildable anywhere.
package netconfig

// EntityID is the stable identifier of a player entity for the lifetime of a
// session. It mirrors the necs network id assigned by the server.
type EntityID uint

// Direction is a grid movement direction.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the row and column step for a direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Directions lists the four movement directions in a fixed order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// VisualFlags is the wire form of transient player visual states.
type VisualFlags uint8

const (
	VisualImmune VisualFlags = 1 << iota
	VisualFrozen
	VisualKnockback
)

func (f VisualFlags) Has(flag VisualFlags) bool {
	return f&flag != 0
}

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionToggleTrails
	ActionLeave
	ActionMenuSelect
	ActionCount // Must be last - used for array sizing
)
