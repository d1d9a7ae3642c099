package network

import (
	"sort"
	"sync"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/messages"
	"github.com/automoto/mazerun-mp/shared/netcomponents"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"go.uber.org/zap"
)

// DecodedEntity is one snapshot entity with its components unpacked.
type DecodedEntity struct {
	ID       esync.NetworkId
	Position *netcomponents.NetGridPositionData
	State    *netcomponents.NetPlayerStateData
}

type batchSink interface {
	PushAll(evs []motion.Event)
}

type seenPlayer struct {
	flags    netconfig.VisualFlags
	knockDir netconfig.Direction
}

// SnapshotTranslator turns full world snapshots into motion events. It runs
// on the router goroutine and never touches motion state directly.
type SnapshotTranslator struct {
	mu      sync.Mutex
	sink    motion.EventSink
	known   map[netconfig.EntityID]seenPlayer
	present map[netconfig.EntityID]bool
	buf     []motion.Event
	log     *zap.SugaredLogger
}

func NewSnapshotTranslator(log *zap.SugaredLogger) *SnapshotTranslator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SnapshotTranslator{
		known:   make(map[netconfig.EntityID]seenPlayer),
		present: make(map[netconfig.EntityID]bool),
		log:     log,
	}
}

// SetSink starts delivering events to sink. Everything seen so far is
// forgotten, so the next snapshot re-joins every entity. A nil sink pauses
// delivery.
func (t *SnapshotTranslator) SetSink(sink motion.EventSink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sink = sink
	clear(t.known)
}

// Apply decodes a snapshot and translates it.
func (t *SnapshotTranslator) Apply(snapshot esync.WorldSnapshot) {
	entities := make([]DecodedEntity, 0, len(snapshot))
	for _, ent := range snapshot {
		decoded := DecodedEntity{ID: ent.Id}
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				t.log.Debugw("skipping undecodable component", "entity", ent.Id, "err", err)
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetGridPositionData:
				decoded.Position = &v
			case netcomponents.NetPlayerStateData:
				decoded.State = &v
			}
		}
		entities = append(entities, decoded)
	}
	t.Translate(entities)
}

// Translate emits Join for ids seen for the first time, Update for known ids,
// Visual when a player's flags change and Leave for known ids missing from
// entities. Entities without a position are not joined yet.
func (t *SnapshotTranslator) Translate(entities []DecodedEntity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sink == nil {
		return
	}

	t.buf = t.buf[:0]
	clear(t.present)

	for _, ent := range entities {
		id := netconfig.EntityID(ent.ID)
		t.present[id] = true

		prev, known := t.known[id]
		if !known {
			if ent.Position == nil {
				continue
			}
			join := motion.Event{Kind: motion.EventJoin, ID: id, Row: ent.Position.Row, Col: ent.Position.Col}
			if ent.State != nil {
				join.Name = ent.State.Name
				join.ColorIndex = ent.State.ColorIndex
				join.Seq = ent.State.LastSequence
			}
			t.buf = append(t.buf, join)
			prev = seenPlayer{}
		} else if ent.Position != nil {
			upd := motion.Event{Kind: motion.EventUpdate, ID: id, Row: ent.Position.Row, Col: ent.Position.Col}
			if ent.State != nil {
				upd.Seq = ent.State.LastSequence
			}
			t.buf = append(t.buf, upd)
		}

		seen := prev
		if ent.State != nil {
			seen = seenPlayer{flags: ent.State.Flags, knockDir: ent.State.KnockDir}
		}
		if seen != prev {
			t.buf = append(t.buf, motion.Event{
				Kind:     motion.EventVisual,
				ID:       id,
				Flags:    seen.flags,
				KnockDir: seen.knockDir,
			})
		}
		t.known[id] = seen
	}

	var gone []netconfig.EntityID
	for id := range t.known {
		if !t.present[id] {
			gone = append(gone, id)
		}
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, id := range gone {
		delete(t.known, id)
		t.buf = append(t.buf, motion.Event{Kind: motion.EventLeave, ID: id})
	}

	t.push(t.buf)
}

// Teleport forwards a server teleport for a known entity.
func (t *SnapshotTranslator) Teleport(evt messages.TeleportEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sink == nil {
		return
	}
	t.push([]motion.Event{{Kind: motion.EventTeleport, ID: netconfig.EntityID(evt.NetworkID), Row: evt.Row, Col: evt.Col}})
}

func (t *SnapshotTranslator) push(evs []motion.Event) {
	if len(evs) == 0 {
		return
	}
	if bs, ok := t.sink.(batchSink); ok {
		bs.PushAll(evs)
		return
	}
	for _, ev := range evs {
		t.sink.Push(ev)
	}
}
