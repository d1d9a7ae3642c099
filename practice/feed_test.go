package practice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

func testMaze() *leveldata.MazeData {
	layout := []string{
		"##########",
		"#........#",
		"#.##.###.#",
		"..........",
		"#.##.###.#",
		"#........#",
		"##########",
	}
	m := &leveldata.MazeData{Name: "practice", Rows: len(layout), Cols: len(layout[0]), TileSize: 16}
	for _, row := range layout {
		for _, ch := range row {
			m.Walls = append(m.Walls, ch == '#')
		}
	}
	m.WrapRows = leveldata.DetectWrapRows(m)
	return m
}

type collectSink struct {
	mu     sync.Mutex
	events []motion.Event
}

func (s *collectSink) Push(ev motion.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *collectSink) snapshot() []motion.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]motion.Event(nil), s.events...)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	return cfg
}

func TestFeedJoinsThenWalks(t *testing.T) {
	maze := testMaze()
	sink := &collectSink{}
	cfg := testConfig()
	cfg.MaxJitter = 80 * time.Millisecond
	f, err := NewFeed(maze, sink, cfg, nil)
	if err != nil {
		t.Fatalf("NewFeed: %v", err)
	}
	if len(f.Bots()) != 4 {
		t.Fatalf("bots = %d, want 4", len(f.Bots()))
	}

	for i := 0; i < 300; i++ {
		f.Advance(16 * time.Millisecond)
	}

	evs := sink.snapshot()
	for i, id := range f.Bots() {
		if evs[2*i].Kind != motion.EventJoin || evs[2*i].ID != id {
			t.Fatalf("event %d = %+v, want join for %d", 2*i, evs[2*i], id)
		}
	}

	topo := mazegrid.MustNew(maze.Rows, maze.Cols, 1, maze.WrapRows...)
	last := make(map[netconfig.EntityID]mazegrid.Cell)
	visited := make(map[netconfig.EntityID]map[mazegrid.Cell]bool)
	updates := 0
	for _, ev := range evs {
		switch ev.Kind {
		case motion.EventJoin:
			last[ev.ID] = mazegrid.Cell{Row: ev.Row, Col: ev.Col}
		case motion.EventUpdate:
			updates++
			if maze.IsWall(ev.Row, ev.Col) {
				t.Fatalf("bot %d reported a wall cell (%d,%d)", ev.ID, ev.Row, ev.Col)
			}
			prev := last[ev.ID]
			dr := abs(ev.Row - prev.Row)
			dc := abs(ev.Col - prev.Col)
			if topo.HasWrap(ev.Row) && dc == maze.Cols-1 {
				dc = 1
			}
			if dr+dc > 1 {
				t.Fatalf("bot %d jumped from %+v to (%d,%d)", ev.ID, prev, ev.Row, ev.Col)
			}
			last[ev.ID] = mazegrid.Cell{Row: ev.Row, Col: ev.Col}
			if visited[ev.ID] == nil {
				visited[ev.ID] = make(map[mazegrid.Cell]bool)
			}
			visited[ev.ID][last[ev.ID]] = true
		}
	}
	// 4.8s at 30Hz for four bots, minus what is still in flight
	if updates < 4*130 {
		t.Fatalf("only %d updates delivered", updates)
	}

	for id, cells := range visited {
		if len(cells) < 4 {
			t.Fatalf("bot %d only visited %d cells", id, len(cells))
		}
	}
}

func TestFeedBotsNeverShareACell(t *testing.T) {
	f, err := NewFeed(testMaze(), &collectSink{}, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewFeed: %v", err)
	}
	for i := 0; i < 500; i++ {
		f.Advance(16 * time.Millisecond)
		seen := make(map[mazegrid.Cell]netconfig.EntityID)
		for _, b := range f.bots {
			if other, ok := seen[b.mover.Cell]; ok {
				t.Fatalf("tick %d: bots %d and %d share %+v", i, other, b.id, b.mover.Cell)
			}
			seen[b.mover.Cell] = b.id
		}
	}
}

func TestFeedImmunityClears(t *testing.T) {
	sink := &collectSink{}
	cfg := testConfig()
	cfg.Bots = 1
	cfg.MaxJitter = 0
	cfg.SpawnImmune = 100 * time.Millisecond
	f, err := NewFeed(testMaze(), sink, cfg, nil)
	if err != nil {
		t.Fatalf("NewFeed: %v", err)
	}
	for i := 0; i < 10; i++ {
		f.Advance(20 * time.Millisecond)
	}

	var flags []netconfig.VisualFlags
	for _, ev := range sink.snapshot() {
		if ev.Kind == motion.EventVisual {
			flags = append(flags, ev.Flags)
		}
	}
	if len(flags) != 2 || !flags[0].Has(netconfig.VisualImmune) || flags[1] != 0 {
		t.Fatalf("visual flags = %v, want [immune, none]", flags)
	}
	if f.Pending() != 0 {
		t.Fatalf("pending = %d with no jitter", f.Pending())
	}
}

func TestFeedRunStopsOnCancel(t *testing.T) {
	inbox := motion.NewInbox()
	f, err := NewFeed(testMaze(), inbox, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewFeed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	s := motion.NewSession(mazegrid.MustNew(7, 10, 10, 3), motion.Options{})
	for inbox.Len() > 0 {
		n := inbox.Drain(func(ev motion.Event) {
			switch ev.Kind {
			case motion.EventJoin:
				s.Join(ev)
			case motion.EventUpdate:
				s.SetTarget(ev.ID, ev.Row, ev.Col)
			case motion.EventLeave:
				s.Leave(ev.ID)
			}
		})
		if n == 0 {
			break
		}
	}
	if s.Len() != 0 {
		t.Fatalf("%d bots left behind after stop", s.Len())
	}
}

func TestNewFeedRejectsZeroRate(t *testing.T) {
	cfg := testConfig()
	cfg.SendRate = 0
	if _, err := NewFeed(testMaze(), &collectSink{}, cfg, nil); err == nil {
		t.Fatal("expected an error for a zero send rate")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
