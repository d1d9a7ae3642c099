package protocol

import (
	"github.com/automoto/mazerun-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetGridPosition uint = 20
	SyncIDNetPlayerState  uint = 21
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
// Neither component registers an interp fn: grid cells are discrete and the
// client does its own pixel-space smoothing.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetGridPosition,
		netcomponents.NetGridPositionData{},
		netcomponents.NetGridPosition,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPlayerState,
		netcomponents.NetPlayerStateData{},
		netcomponents.NetPlayerState,
	); err != nil {
		return err
	}

	return nil
}
