// Package practice simulates remote players for offline play. Bots walk the
// maze on their own goroutine and report positions through the same event
// path a network client uses, including irregular delivery.
package practice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/gridmove"
	"github.com/automoto/mazerun-mp/shared/leveldata"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"go.uber.org/zap"
)

// FirstBotID is the entity id of the first bot. Lower ids are left for local
// players.
const FirstBotID netconfig.EntityID = 1000

type Config struct {
	Bots         int
	SendRate     float64       // position reports per second
	StepInterval time.Duration // time a bot takes to cross one cell
	MaxJitter    time.Duration // extra delivery delay, uniform in [0, MaxJitter]
	SpawnImmune  time.Duration // how long a new bot reports VisualImmune
	Seed         uint64
}

// DefaultConfig mirrors a typical server: 30Hz snapshots and up to 40ms of
// jitter.
func DefaultConfig() Config {
	return Config{
		Bots:         4,
		SendRate:     30,
		StepInterval: 180 * time.Millisecond,
		MaxJitter:    40 * time.Millisecond,
		SpawnImmune:  2 * time.Second,
		Seed:         1,
	}
}

type bot struct {
	id      netconfig.EntityID
	name    string
	mover   *gridmove.Mover
	immune  bool
	lastDue time.Duration
}

type pending struct {
	due time.Duration
	ev  motion.Event
}

// Feed owns the bots. All of its state lives on the goroutine running Run
// (or the caller of Advance in tests).
type Feed struct {
	grid  *gridmove.Grid
	sink  motion.EventSink
	cfg   Config
	rng   *rand.Rand
	log   *zap.SugaredLogger
	bots  []*bot
	queue []pending

	clock    time.Duration
	sendAcc  time.Duration
	started  bool
	sendTick time.Duration
}

// NewFeed builds a feed over its own collision grid for maze.
func NewFeed(maze *leveldata.MazeData, sink motion.EventSink, cfg Config, log *zap.SugaredLogger) (*Feed, error) {
	grid, err := gridmove.NewGrid(maze)
	if err != nil {
		return nil, fmt.Errorf("practice grid: %w", err)
	}
	if cfg.SendRate <= 0 {
		return nil, fmt.Errorf("practice: send rate must be positive, got %v", cfg.SendRate)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	f := &Feed{
		grid:     grid,
		sink:     sink,
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		log:      log,
		sendTick: time.Duration(float64(time.Second) / cfg.SendRate),
	}
	f.spawn()
	return f, nil
}

func (f *Feed) spawn() {
	cells := make([]mazegrid.Cell, 0, len(f.grid.Maze().Spawns))
	for _, sp := range f.grid.Maze().Spawns {
		cells = append(cells, mazegrid.Cell{Row: sp.Row, Col: sp.Col})
	}
	open := f.grid.Maze().OpenCells()
	f.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })
	cells = append(cells, open...)

	interval := f.cfg.StepInterval.Seconds()
	for i := 0; i < f.cfg.Bots && len(cells) > 0; i++ {
		var cell mazegrid.Cell
		found := false
		for len(cells) > 0 {
			cell, cells = cells[0], cells[1:]
			if !f.grid.Occupied(cell, 0) {
				found = true
				break
			}
		}
		if !found {
			break
		}
		b := &bot{
			id:     FirstBotID + netconfig.EntityID(i),
			name:   fmt.Sprintf("bot-%d", i+1),
			mover:  gridmove.NewMover(cell, interval),
			immune: f.cfg.SpawnImmune > 0,
		}
		f.grid.Place(b.id, cell)
		f.bots = append(f.bots, b)
	}
}

// Bots returns the ids of all bots.
func (f *Feed) Bots() []netconfig.EntityID {
	ids := make([]netconfig.EntityID, len(f.bots))
	for i, b := range f.bots {
		ids[i] = b.id
	}
	return ids
}

// Run advances the simulation in real time until ctx is done. On return it
// reports every bot as gone.
func (f *Feed) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.sendTick / 2)
	defer ticker.Stop()

	f.log.Infow("practice feed started", "bots", len(f.bots))
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			for _, b := range f.bots {
				f.sink.Push(motion.Event{Kind: motion.EventLeave, ID: b.id})
			}
			f.log.Infow("practice feed stopped")
			return ctx.Err()
		case now := <-ticker.C:
			f.Advance(now.Sub(last))
			last = now
		}
	}
}

// Advance moves the simulated clock forward by dt, steps the bots and delivers
// every report whose delivery time has come.
func (f *Feed) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if !f.started {
		f.started = true
		for _, b := range f.bots {
			ev := motion.Event{Kind: motion.EventJoin, ID: b.id, Row: b.mover.Cell.Row, Col: b.mover.Cell.Col, Name: b.name, ColorIndex: int(b.id - FirstBotID)}
			f.sink.Push(ev)
			if b.immune {
				f.sink.Push(motion.Event{Kind: motion.EventVisual, ID: b.id, Flags: netconfig.VisualImmune})
			}
		}
	}
	f.clock += dt

	for _, b := range f.bots {
		f.walk(b, dt)
		if b.immune && f.clock >= f.cfg.SpawnImmune {
			b.immune = false
			f.schedule(b, motion.Event{Kind: motion.EventVisual, ID: b.id})
		}
	}

	f.sendAcc += dt
	if f.sendAcc >= f.sendTick {
		f.sendAcc %= f.sendTick
		for _, b := range f.bots {
			f.schedule(b, motion.Event{Kind: motion.EventUpdate, ID: b.id, Row: b.mover.Cell.Row, Col: b.mover.Cell.Col})
		}
	}

	f.deliver()
}

// walk steps a bot, choosing a new direction at junctions and dead ends. Bots
// never reverse unless there is no other way and never enter an occupied cell.
func (f *Feed) walk(b *bot, dt time.Duration) {
	exits := f.grid.Exits(b.mover.Cell)
	forward := make([]netconfig.Direction, 0, len(exits))
	for _, d := range exits {
		if d != b.mover.CurrentDir.Opposite() || len(exits) == 1 {
			forward = append(forward, d)
		}
	}
	if len(forward) > 0 && (len(forward) > 1 || b.mover.CurrentDir == netconfig.DirNone || !contains(forward, b.mover.CurrentDir)) {
		b.mover.Want(forward[f.rng.IntN(len(forward))])
	}

	step := func(from mazegrid.Cell, dir netconfig.Direction) (mazegrid.Cell, bool) {
		next, ok := f.grid.Step(from, dir)
		if !ok || f.grid.Occupied(next, b.id) {
			return from, false
		}
		return next, true
	}
	if b.mover.Update(dt.Seconds(), step) != netconfig.DirNone {
		f.grid.Place(b.id, b.mover.Cell)
	}
}

func contains(dirs []netconfig.Direction, d netconfig.Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}

// schedule queues ev with random latency. Reports from one bot keep their
// order, as they would over a single connection.
func (f *Feed) schedule(b *bot, ev motion.Event) {
	due := f.clock
	if f.cfg.MaxJitter > 0 {
		due += time.Duration(f.rng.Int64N(int64(f.cfg.MaxJitter) + 1))
	}
	if due < b.lastDue {
		due = b.lastDue
	}
	b.lastDue = due
	f.queue = append(f.queue, pending{due: due, ev: ev})
}

func (f *Feed) deliver() {
	sort.SliceStable(f.queue, func(i, j int) bool { return f.queue[i].due < f.queue[j].due })
	n := 0
	for n < len(f.queue) && f.queue[n].due <= f.clock {
		f.sink.Push(f.queue[n].ev)
		n++
	}
	f.queue = append(f.queue[:0], f.queue[n:]...)
}

// Pending returns the number of reports still in flight.
func (f *Feed) Pending() int {
	return len(f.queue)
}
