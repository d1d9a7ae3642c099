// Package motion turns sparse grid positions into smooth pixel motion. A
// Session is built once per game and owns the maze topology, the entity
// registry and the inbox that network and simulation goroutines feed.
//
// Everything except Inbox.Push must be called from the frame goroutine.
package motion

import (
	"github.com/automoto/mazerun-mp/components"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Options tunes a Session. Zero values select the defaults.
type Options struct {
	Speed         float64
	SnapThreshold float64
	Logger        *zap.Logger

	// World lets render components share storage with motion state. A new
	// world is created when nil.
	World donburi.World
	// Components are added to every entity the session creates.
	Components []donburi.IComponentType
}

// Hooks let presentation code react to lifecycle changes. All hooks run on
// the frame goroutine.
type Hooks struct {
	// Created runs after an entity is created. ev is the zero Event when the
	// entity came from a direct SetTarget.
	Created func(entry *donburi.Entry, ev Event)
	// Removing runs just before an entity is deleted.
	Removing func(id netconfig.EntityID, entry *donburi.Entry)
	// Joined runs for every Join event, after the entity exists.
	Joined func(entry *donburi.Entry, ev Event)
	// Visual runs for Visual events about existing entities.
	Visual func(entry *donburi.Entry, ev Event)
	// Wrapped runs when a target change crosses the seam.
	Wrapped func(entry *donburi.Entry, change TargetChange)
	// LocalUpdate receives server positions for the locally driven entity once
	// it exists. When nil those updates go through SetTarget like any other.
	LocalUpdate func(ev Event)
	// Resized runs after a resize with the factor positions were scaled by,
	// or 0 when entities snapped to their cells.
	Resized func(factor float64)
}

type Session struct {
	topo    *mazegrid.Topology
	reg     *Registry
	updater *TargetUpdater
	interp  *Interpolator
	inbox   *Inbox
	log     *zap.Logger
	hooks   Hooks

	localID  netconfig.EntityID
	hasLocal bool
}

func NewSession(topo *mazegrid.Topology, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	world := opts.World
	if world == nil {
		world = donburi.NewWorld()
	}
	snap := opts.SnapThreshold
	if snap == 0 {
		snap = DefaultSnapThreshold
	}

	reg := NewRegistry(world, opts.Components...)
	return &Session{
		topo:    topo,
		reg:     reg,
		updater: NewTargetUpdater(topo, reg, log),
		interp:  NewInterpolator(topo, reg, opts.Speed, snap),
		inbox:   NewInbox(),
		log:     log,
	}
}

func (s *Session) Topology() *mazegrid.Topology { return s.topo }

func (s *Session) Registry() *Registry { return s.reg }

func (s *Session) World() donburi.World { return s.reg.World() }

// Inbox is the only part of a Session safe to use from other goroutines.
func (s *Session) Inbox() *Inbox { return s.inbox }

func (s *Session) SetHooks(h Hooks) { s.hooks = h }

// SetLocal marks id as the viewer's own entity.
func (s *Session) SetLocal(id netconfig.EntityID) {
	if s.hasLocal && s.localID != id {
		if m, ok := s.reg.Get(s.localID); ok {
			m.IsLocallyDriven = false
		}
	}
	s.localID, s.hasLocal = id, true
	if m, ok := s.reg.Get(id); ok {
		m.IsLocallyDriven = true
	}
}

func (s *Session) LocalID() (netconfig.EntityID, bool) {
	return s.localID, s.hasLocal
}

// SetTarget applies a new grid position for id.
func (s *Session) SetTarget(id netconfig.EntityID, row, col int) TargetChange {
	return s.setTarget(id, row, col, Event{})
}

func (s *Session) setTarget(id netconfig.EntityID, row, col int, ev Event) TargetChange {
	change := s.updater.SetTarget(id, row, col)
	entry, ok := s.reg.Entry(id)
	if !ok {
		return change
	}
	if change.Created {
		if s.hasLocal && id == s.localID {
			components.Motion.Get(entry).IsLocallyDriven = true
		}
		if s.hooks.Created != nil {
			s.hooks.Created(entry, ev)
		}
	}
	if change.Wrap != WrapNone && s.hooks.Wrapped != nil {
		s.hooks.Wrapped(entry, change)
	}
	return change
}

// Teleport moves id to (row, col) with no interpolation and no wrap
// detection. Unknown ids are created as by SetTarget.
func (s *Session) Teleport(id netconfig.EntityID, row, col int) {
	m, ok := s.reg.Get(id)
	if !ok {
		s.SetTarget(id, row, col)
		return
	}
	cell := s.topo.ClampCell(row, col)
	m.Target.LastRow, m.Target.LastCol = m.Target.Row, m.Target.Col
	m.Target.Row, m.Target.Col = cell.Row, cell.Col
	snapToCell(s.topo, m)
	s.log.Debug("entity teleported", zap.Uint("entity", uint(id)), zap.Int("row", cell.Row), zap.Int("col", cell.Col))
}

// Join registers id at (row, col). An existing entity keeps its motion state
// and only moves its target.
func (s *Session) Join(ev Event) {
	s.setTarget(ev.ID, ev.Row, ev.Col, ev)
	s.log.Info("entity joined", zap.Uint("entity", uint(ev.ID)), zap.String("name", ev.Name))
	if entry, ok := s.reg.Entry(ev.ID); ok && s.hooks.Joined != nil {
		s.hooks.Joined(entry, ev)
	}
}

// Leave removes id and reports whether it existed.
func (s *Session) Leave(id netconfig.EntityID) bool {
	entry, ok := s.reg.Entry(id)
	if !ok {
		return false
	}
	if s.hooks.Removing != nil {
		s.hooks.Removing(id, entry)
	}
	s.reg.Remove(id)
	s.log.Info("entity left", zap.Uint("entity", uint(id)))
	return true
}

// Drain applies every queued inbox event. Call once per frame before Tick.
func (s *Session) Drain() int {
	return s.inbox.Drain(s.apply)
}

func (s *Session) apply(ev Event) {
	switch ev.Kind {
	case EventJoin:
		s.Join(ev)
	case EventUpdate:
		if s.hasLocal && ev.ID == s.localID && s.hooks.LocalUpdate != nil {
			if _, ok := s.reg.Entry(ev.ID); ok {
				s.hooks.LocalUpdate(ev)
				return
			}
		}
		s.setTarget(ev.ID, ev.Row, ev.Col, ev)
	case EventLeave:
		s.Leave(ev.ID)
	case EventTeleport:
		s.Teleport(ev.ID, ev.Row, ev.Col)
	case EventVisual:
		if entry, ok := s.reg.Entry(ev.ID); ok && s.hooks.Visual != nil {
			s.hooks.Visual(entry, ev)
		}
	default:
		s.log.Warn("unknown event", zap.Uint8("kind", uint8(ev.Kind)), zap.Uint("entity", uint(ev.ID)))
	}
}

// Tick advances interpolation by deltaMillis.
func (s *Session) Tick(deltaMillis float64) {
	s.interp.Tick(deltaMillis)
}

// Resize fits the maze into a viewW x viewH viewport and rescales every
// entity in one pass.
func (s *Session) Resize(viewW, viewH int) float64 {
	return s.SetCellSize(s.topo.FitCellSize(viewW, viewH))
}

// SetCellSize is Resize with an explicit cell size.
func (s *Session) SetCellSize(size float64) float64 {
	if size == s.topo.CellSize() {
		return 1
	}
	f := rescale(s.topo, s.reg, size)
	s.log.Debug("maze resized", zap.Float64("cellSize", size), zap.Float64("factor", f))
	if s.hooks.Resized != nil {
		s.hooks.Resized(f)
	}
	return f
}

// Position returns the interpolated pixel position of id.
func (s *Session) Position(id netconfig.EntityID) (mazegrid.Point, bool) {
	m, ok := s.reg.Get(id)
	if !ok {
		return mazegrid.Point{}, false
	}
	return m.Current, true
}

// Target returns the latest grid cell recorded for id.
func (s *Session) Target(id netconfig.EntityID) (mazegrid.Cell, bool) {
	m, ok := s.reg.Get(id)
	if !ok {
		return mazegrid.Cell{}, false
	}
	return mazegrid.Cell{Row: m.Target.Row, Col: m.Target.Col}, true
}

// WrapJustOccurred reports whether the last target change for id crossed the
// seam.
func (s *Session) WrapJustOccurred(id netconfig.EntityID) bool {
	m, ok := s.reg.Get(id)
	return ok && m.Target.WrapDetected
}

// Each calls fn for every entity.
func (s *Session) Each(fn func(entry *donburi.Entry, m *components.MotionData)) {
	s.reg.Each(fn)
}

func (s *Session) Len() int { return s.reg.Len() }
