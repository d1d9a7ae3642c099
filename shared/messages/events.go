package messages

// TeleportEvent is broadcast when the server moves a player somewhere it
// could not have walked to. Clients snap instead of interpolating, so the
// jump is never read as a seam crossing.
type TeleportEvent struct {
	NetworkID uint
	Row, Col  int
}
