package control

import (
	"testing"
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/gridmove"
	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/messages"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

const localID netconfig.EntityID = 7

func testGrid(t *testing.T) *gridmove.Grid {
	t.Helper()
	layout := []string{
		"######",
		"#....#",
		"#.##.#",
		"#....#",
		"######",
	}
	m := &leveldata.MazeData{Name: "loop", Rows: len(layout), Cols: len(layout[0]), TileSize: 16}
	for _, row := range layout {
		for _, ch := range row {
			m.Walls = append(m.Walls, ch == '#')
		}
	}
	g, err := gridmove.NewGrid(m)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return g
}

type outbox struct {
	sent []messages.MoveInput
}

func (o *outbox) send(msg any) error {
	o.sent = append(o.sent, msg.(messages.MoveInput))
	return nil
}

func newTestDriver(t *testing.T) (*Driver, *motion.Session, *outbox) {
	t.Helper()
	s := motion.NewSession(mazegrid.MustNew(5, 6, 10), motion.Options{})
	out := &outbox{}
	d := NewDriver(s, testGrid(t), localID, 100*time.Millisecond, out.send, nil)
	return d, s, out
}

func TestDriverPredictsAndSends(t *testing.T) {
	d, s, out := newTestDriver(t)
	d.Spawn(mazegrid.Cell{Row: 1, Col: 1})

	d.Update(100*time.Millisecond, netconfig.DirRight)
	d.Update(100*time.Millisecond, netconfig.DirNone)

	if got, _ := s.Target(localID); got != (mazegrid.Cell{Row: 1, Col: 3}) {
		t.Fatalf("target = %+v, want {1 3}", got)
	}
	if len(out.sent) != 2 {
		t.Fatalf("sent %d moves, want 2", len(out.sent))
	}
	first := out.sent[0]
	if first.Sequence != 1 || first.Direction != netconfig.DirRight || first.Row != 1 || first.Col != 2 {
		t.Fatalf("first move = %+v", first)
	}
	if out.sent[1].Sequence != 2 {
		t.Fatalf("second sequence = %d, want 2", out.sent[1].Sequence)
	}
}

func TestDriverStopsAtWalls(t *testing.T) {
	d, _, out := newTestDriver(t)
	d.Spawn(mazegrid.Cell{Row: 1, Col: 1})

	d.Update(100*time.Millisecond, netconfig.DirUp)
	if len(out.sent) != 0 || d.Cell() != (mazegrid.Cell{Row: 1, Col: 1}) {
		t.Fatalf("moved into a wall: cell %+v, sent %d", d.Cell(), len(out.sent))
	}
	d.Update(100*time.Millisecond, netconfig.DirDown)
	if d.Cell() != (mazegrid.Cell{Row: 2, Col: 1}) {
		t.Fatalf("cell = %+v, want {2 1}", d.Cell())
	}
}

func TestDriverReconcilesRefusedMove(t *testing.T) {
	d, s, _ := newTestDriver(t)
	d.Spawn(mazegrid.Cell{Row: 1, Col: 1})
	d.Update(100*time.Millisecond, netconfig.DirRight)
	d.Update(100*time.Millisecond, netconfig.DirNone)

	d.OnServerUpdate(motion.Event{Kind: motion.EventUpdate, ID: localID, Row: 1, Col: 2, Seq: 1})
	if d.Corrections() != 0 {
		t.Fatal("matching acknowledgement caused a correction")
	}

	d.OnServerUpdate(motion.Event{Kind: motion.EventUpdate, ID: localID, Row: 1, Col: 1, Seq: 1})
	if d.Corrections() != 1 {
		t.Fatalf("corrections = %d, want 1", d.Corrections())
	}
	want := mazegrid.Cell{Row: 1, Col: 2}
	if d.Cell() != want {
		t.Fatalf("replayed cell = %+v, want %+v", d.Cell(), want)
	}
	if got, _ := s.Target(localID); got != want {
		t.Fatalf("session target = %+v, want %+v", got, want)
	}
}

func TestDriverWaitsForServerSpawn(t *testing.T) {
	d, s, out := newTestDriver(t)
	s.SetHooks(motion.Hooks{LocalUpdate: d.OnServerUpdate})

	d.Update(100*time.Millisecond, netconfig.DirRight)
	if len(out.sent) != 0 {
		t.Fatal("moved before the local entity existed")
	}

	s.Inbox().Push(motion.Event{Kind: motion.EventJoin, ID: localID, Row: 3, Col: 1})
	s.Inbox().Push(motion.Event{Kind: motion.EventUpdate, ID: localID, Row: 3, Col: 1})
	s.Drain()

	m, ok := s.Registry().Get(localID)
	if !ok || !m.IsLocallyDriven {
		t.Fatal("local entity missing or not marked locally driven")
	}

	d.Update(100*time.Millisecond, netconfig.DirRight)
	if d.Cell() != (mazegrid.Cell{Row: 3, Col: 2}) || len(out.sent) != 1 {
		t.Fatalf("cell = %+v, sent %d; want {3 2} and one move", d.Cell(), len(out.sent))
	}
	if d.Corrections() != 0 {
		t.Fatalf("corrections = %d, want 0", d.Corrections())
	}
}
