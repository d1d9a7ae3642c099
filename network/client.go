package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/mazerun-mp/logging"
	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"
)

// ErrNotConnected is returned by SendMessage before the socket is up.
var ErrNotConnected = errors.New("not connected")

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	default:
		return "disconnected"
	}
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	networkID      esync.NetworkId
	reconnectToken string
	serverName     string
	tickRate       int
	maze           string
	conn           *websocket.Conn

	translator *SnapshotTranslator
	log        *zap.SugaredLogger
}

func NewClient() *Client {
	log := logging.Named("client")
	return &Client{
		state:      StateDisconnected,
		translator: NewSnapshotTranslator(log),
		log:        log,
	}
}

// SetSink routes snapshot events to sink, normally the session inbox.
func (c *Client) SetSink(sink motion.EventSink) {
	c.translator.SetSink(sink)
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Infow("connected to server", "address", address)
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.log.Infow("join accepted",
			"networkID", msg.NetworkID, "server", msg.ServerName, "tickRate", msg.TickRate, "maze", msg.Maze)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.reconnectToken = msg.ReconnectToken
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.maze = msg.Maze
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.Warnw("join rejected", "reason", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		c.translator.Apply(snapshot)
	})

	router.On(func(_ *router.NetworkClient, evt messages.TeleportEvent) {
		c.translator.Teleport(evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Infow("disconnected", "err", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Errorw("router error", "err", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	c.translator.SetSink(nil)
	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

// Maze is the name of the maze the server is running.
func (c *Client) Maze() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maze
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.log.Errorw("client error", "err", err)
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
