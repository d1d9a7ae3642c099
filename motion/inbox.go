package motion

import (
	"sync"

	"github.com/automoto/mazerun-mp/shared/netconfig"
)

// EventKind identifies what an inbound Event reports.
type EventKind uint8

const (
	EventJoin EventKind = iota + 1
	EventUpdate
	EventLeave
	EventVisual
	EventTeleport
)

func (k EventKind) String() string {
	switch k {
	case EventJoin:
		return "join"
	case EventUpdate:
		return "update"
	case EventLeave:
		return "leave"
	case EventVisual:
		return "visual"
	case EventTeleport:
		return "teleport"
	default:
		return "unknown"
	}
}

// Event is one inbound change for an entity. Join, Update and Teleport carry
// a grid cell; Join also carries the player's display data; Visual carries
// state flags.
type Event struct {
	Kind EventKind
	ID   netconfig.EntityID

	Row, Col int
	// Seq is the last local input the server applied. Only meaningful for
	// updates about the local entity.
	Seq uint32

	Name       string
	ColorIndex int

	Flags    netconfig.VisualFlags
	KnockDir netconfig.Direction
}

// EventSink accepts events from any goroutine.
type EventSink interface {
	Push(ev Event)
}

// Inbox queues events from network or simulation goroutines until the frame
// thread drains them. Pushes never block on a drain in progress.
type Inbox struct {
	mu      sync.Mutex
	pending []Event
	spare   []Event
}

func NewInbox() *Inbox {
	return &Inbox{
		pending: make([]Event, 0, 64),
		spare:   make([]Event, 0, 64),
	}
}

func (b *Inbox) Push(ev Event) {
	b.mu.Lock()
	b.pending = append(b.pending, ev)
	b.mu.Unlock()
}

// PushAll queues evs in order under a single lock, so a whole snapshot lands
// in the same drain.
func (b *Inbox) PushAll(evs []Event) {
	if len(evs) == 0 {
		return
	}
	b.mu.Lock()
	b.pending = append(b.pending, evs...)
	b.mu.Unlock()
}

// Len returns the number of queued events.
func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Drain hands every queued event to fn in arrival order and returns how many
// were handled. Only one goroutine may drain.
func (b *Inbox) Drain(fn func(Event)) int {
	b.mu.Lock()
	batch := b.pending
	b.pending = b.spare[:0]
	b.mu.Unlock()

	for _, ev := range batch {
		fn(ev)
	}
	n := len(batch)
	clear(batch)
	b.spare = batch[:0]
	return n
}
