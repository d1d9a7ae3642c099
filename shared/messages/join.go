package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest opens the maze handshake. The client sends it once the socket
// is up; the relay answers with JoinAccepted or JoinRejected before any world
// snapshot is streamed.
type JoinRequest struct {
	Version        string
	PlayerName     string
	ReconnectToken string
}

// JoinAccepted hands the client its entity id and the maze it must load.
// Snapshot positions are cells of that maze's grid; the client drops them
// until the networked scene has loaded the maze and attached its event sink.
type JoinAccepted struct {
	NetworkID      esync.NetworkId
	ReconnectToken string
	ServerName     string
	TickRate       int
	Maze           string
}

// JoinRejected ends the handshake; the client surfaces Reason on the join
// screen.
type JoinRejected struct {
	Reason string
}
