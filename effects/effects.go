// Package effects keeps the render-side components of each player in step
// with the motion session: names and colors, spawn pops, seam flashes,
// visual states and trails. It has no ebiten dependency.
package effects

import (
	"fmt"
	"math"

	"github.com/automoto/mazerun-mp/components"
	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/automoto/mazerun-mp/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

type Config struct {
	SpawnPopDuration  float32
	SeamFlashDuration float32
	TrailMinStep      float64 // fraction of a cell
	Trails            bool
}

// Components lists what every session entity carries besides its motion
// state.
func Components() []donburi.IComponentType {
	return []donburi.IComponentType{
		tags.Player,
		components.Player,
		components.VisualState,
		components.Trail,
	}
}

type Presenter struct {
	session *motion.Session
	cfg     Config
	log     *zap.SugaredLogger
	popDone   []*donburi.Entry
	flashDone []*donburi.Entry
}

func NewPresenter(s *motion.Session, cfg Config, log *zap.SugaredLogger) *Presenter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Presenter{session: s, cfg: cfg, log: log}
}

// SetTrails turns trail sampling on or off. Trails empty on the next Update
// once sampling is off.
func (p *Presenter) SetTrails(on bool) {
	p.cfg.Trails = on
}

func (p *Presenter) Trails() bool { return p.cfg.Trails }

// Install sets the session hooks. local receives server reports about the
// locally driven player and may be nil.
func (p *Presenter) Install(local func(motion.Event)) {
	p.session.SetHooks(motion.Hooks{
		Created:     p.created,
		Joined:      p.joined,
		Visual:      p.visual,
		Wrapped:     p.wrapped,
		Removing:    p.removing,
		Resized:     p.resized,
		LocalUpdate: local,
	})
}

func (p *Presenter) created(entry *donburi.Entry, ev motion.Event) {
	m := components.Motion.Get(entry)
	name := ev.Name
	if name == "" {
		name = fmt.Sprintf("p%d", m.EntityID)
	}
	components.Player.SetValue(entry, components.PlayerData{Name: name, ColorIndex: ev.ColorIndex})

	if m.IsLocallyDriven && !entry.HasComponent(tags.Local) {
		entry.AddComponent(tags.Local)
	}
	if p.cfg.SpawnPopDuration > 0 {
		entry.AddComponent(components.SpawnPop)
		components.SpawnPop.SetValue(entry, components.SpawnPopData{
			Tween: gween.New(0, 1, p.cfg.SpawnPopDuration, ease.OutBack),
		})
	}
}

func (p *Presenter) joined(entry *donburi.Entry, ev motion.Event) {
	if ev.Name == "" {
		return
	}
	pl := components.Player.Get(entry)
	pl.Name = ev.Name
	pl.ColorIndex = ev.ColorIndex
}

func (p *Presenter) visual(entry *donburi.Entry, ev motion.Event) {
	components.VisualState.Get(entry).Apply(ev.Flags, ev.KnockDir)
}

func (p *Presenter) wrapped(entry *donburi.Entry, change motion.TargetChange) {
	components.Trail.Get(entry).Reset()
	if !change.EdgePair {
		p.log.Debugw("wrap inferred from column jump",
			"entity", components.Motion.Get(entry).EntityID, "from", change.From, "to", change.To)
	}
	if p.cfg.SeamFlashDuration <= 0 {
		return
	}
	flash := components.SeamFlashData{
		Tween: gween.New(1, 0, p.cfg.SeamFlashDuration, ease.OutQuad),
		Alpha: 1,
		Row:   change.To.Row,
		Left:  change.Wrap == motion.WrapRightToLeft,
	}
	if !entry.HasComponent(components.SeamFlash) {
		entry.AddComponent(components.SeamFlash)
	}
	components.SeamFlash.SetValue(entry, flash)
}

func (p *Presenter) removing(id netconfig.EntityID, entry *donburi.Entry) {
	p.log.Debugw("player removed", "entity", id, "name", components.Player.Get(entry).Name)
}

func (p *Presenter) resized(f float64) {
	p.session.Each(func(entry *donburi.Entry, _ *components.MotionData) {
		tr := components.Trail.Get(entry)
		if f == 0 {
			tr.Reset()
			return
		}
		tr.Scale(f)
	})
}

// Update advances every effect by dt seconds and samples trails from the
// current interpolated positions. Call after Session.Tick.
func (p *Presenter) Update(dt float64) {
	minStep := p.cfg.TrailMinStep * p.session.Topology().CellSize()
	p.popDone = p.popDone[:0]
	p.flashDone = p.flashDone[:0]

	p.session.Each(func(entry *donburi.Entry, m *components.MotionData) {
		if entry.HasComponent(components.SpawnPop) && components.SpawnPop.Get(entry).Update(dt) {
			p.popDone = append(p.popDone, entry)
		}
		if entry.HasComponent(components.SeamFlash) && components.SeamFlash.Get(entry).Update(dt) {
			p.flashDone = append(p.flashDone, entry)
		}
		components.VisualState.Get(entry).Advance(dt)

		tr := components.Trail.Get(entry)
		if p.cfg.Trails {
			tr.Push(m.Current, minStep)
		} else if tr.Len() > 0 {
			tr.Reset()
		}
	})

	// components are removed outside the query
	for _, entry := range p.popDone {
		entry.RemoveComponent(components.SpawnPop)
	}
	for _, entry := range p.flashDone {
		entry.RemoveComponent(components.SeamFlash)
	}
}

// Ghost returns where to draw a second copy of an entity at x on row so it
// shows on both sides of the seam. ok is false away from the seam or off wrap
// rows. margin is in cells.
func Ghost(topo *mazegrid.Topology, row int, x, margin float64) (float64, bool) {
	if !topo.HasWrap(row) || !topo.Usable() {
		return 0, false
	}
	w := topo.Width()
	edge := margin * topo.CellSize()
	switch {
	case x < edge:
		return x + w, true
	case x > w-edge:
		return x - w, true
	}
	return 0, false
}

// Segments splits a trail into runs that never cross the seam, so no line is
// drawn across the whole maze. Runs with fewer than two points are dropped.
func Segments(points []mazegrid.Point, width float64, dst [][]mazegrid.Point) [][]mazegrid.Point {
	start := 0
	for i := 1; i <= len(points); i++ {
		if i < len(points) && math.Abs(points[i].X-points[i-1].X) <= width/2 {
			continue
		}
		if i-start >= 2 {
			dst = append(dst, points[start:i])
		}
		start = i
	}
	return dst
}
