package messages

import "github.com/automoto/mazerun-mp/shared/netconfig"

// MoveInput is sent from client to server each time the local player steps
// into a new cell. Row and Col are the client's prediction; the server answers
// with its own cell and echoes Sequence back as LastSequence.
type MoveInput struct {
	Sequence  uint32 // Incrementing ID for reconciliation
	Direction netconfig.Direction
	Row, Col  int
	Timestamp int64 // Client timestamp (Unix ms)
}
