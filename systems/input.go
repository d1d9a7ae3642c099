package systems

import (
	"github.com/automoto/mazerun-mp/components"
	cfg "github.com/automoto/mazerun-mp/config"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls keyboard and gamepads into the Input singleton.
// Must run before any system that reads input.
func UpdateInput(e *ecs.ECS) {
	input := getOrCreateInput(e)

	var next [netconfig.ActionCount]bool
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				next[actionID] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					next[actionID] = true
				}
			}
		}
	}

	// Merge analog stick into directional actions
	left, right, up, down := getAnalogStickState(gamepadIDs)
	next[netconfig.ActionMoveLeft] = next[netconfig.ActionMoveLeft] || left
	next[netconfig.ActionMoveRight] = next[netconfig.ActionMoveRight] || right
	next[netconfig.ActionMoveUp] = next[netconfig.ActionMoveUp] || up
	next[netconfig.ActionMoveDown] = next[netconfig.ActionMoveDown] || down

	input.Advance(next)
}

// getAnalogStickState reads the left analog stick from all gamepads
func getAnalogStickState(gamepads []ebiten.GamepadID) (left, right, up, down bool) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}

		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

		left = left || horizontal < -deadzone
		right = right || horizontal > deadzone
		up = up || vertical < -deadzone
		down = down || vertical > deadzone
	}
	return
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(e *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// Input returns this frame's input state, or nil before UpdateInput ran.
func Input(e *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(e.World)
	if !ok {
		return nil
	}
	return components.Input.Get(entry)
}
