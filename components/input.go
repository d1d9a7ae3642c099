package components

import (
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// InputData holds this frame's and last frame's action states.
type InputData struct {
	Current  [netconfig.ActionCount]bool
	Previous [netconfig.ActionCount]bool
	// Facing is the most recently pressed movement direction still held.
	Facing netconfig.Direction
}

var Input = donburi.NewComponentType[InputData]()

var moveActions = [...]struct {
	action netconfig.ActionID
	dir    netconfig.Direction
}{
	{netconfig.ActionMoveUp, netconfig.DirUp},
	{netconfig.ActionMoveDown, netconfig.DirDown},
	{netconfig.ActionMoveLeft, netconfig.DirLeft},
	{netconfig.ActionMoveRight, netconfig.DirRight},
}

func (in *InputData) Pressed(a netconfig.ActionID) bool {
	return in.Current[a]
}

func (in *InputData) JustPressed(a netconfig.ActionID) bool {
	return in.Current[a] && !in.Previous[a]
}

// Advance moves Current into Previous and installs next as the new state.
func (in *InputData) Advance(next [netconfig.ActionCount]bool) {
	in.Previous = in.Current
	in.Current = next

	for _, m := range moveActions {
		if in.JustPressed(m.action) {
			in.Facing = m.dir
		}
	}
	if in.Facing != netconfig.DirNone && in.Pressed(actionFor(in.Facing)) {
		return
	}
	in.Facing = netconfig.DirNone
	for _, m := range moveActions {
		if in.Pressed(m.action) {
			in.Facing = m.dir
			return
		}
	}
}

func actionFor(d netconfig.Direction) netconfig.ActionID {
	for _, m := range moveActions {
		if m.dir == d {
			return m.action
		}
	}
	return netconfig.ActionNone
}
