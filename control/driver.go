// Package control moves the locally controlled player. Steps are predicted
// immediately, reported to the server when there is one, and reconciled
// against the server's acknowledged position.
package control

import (
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/network"
	"github.com/automoto/mazerun-mp/shared/gridmove"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"go.uber.org/zap"
)

// Sender delivers a message to the server. It may be nil offline.
type Sender func(msg any) error

type Driver struct {
	session *motion.Session
	grid    *gridmove.Grid
	mover   *gridmove.Mover
	pred    *network.Prediction
	send    Sender
	id      netconfig.EntityID
	log     *zap.SugaredLogger
	now     func() time.Time

	ready       bool
	corrections int
}

// NewDriver marks id as the session's local entity. The driver starts moving
// once the entity exists, either from Spawn or from the server's first
// report.
func NewDriver(s *motion.Session, grid *gridmove.Grid, id netconfig.EntityID, stepInterval time.Duration, send Sender, log *zap.SugaredLogger) *Driver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s.SetLocal(id)
	return &Driver{
		session: s,
		grid:    grid,
		mover:   gridmove.NewMover(mazegrid.Cell{}, stepInterval.Seconds()),
		pred:    network.NewPrediction(),
		send:    send,
		id:      id,
		log:     log,
		now:     time.Now,
	}
}

func (d *Driver) ID() netconfig.EntityID { return d.id }

// Cell is the predicted cell of the local player.
func (d *Driver) Cell() mazegrid.Cell { return d.mover.Cell }

// Corrections counts server corrections applied so far.
func (d *Driver) Corrections() int { return d.corrections }

// Spawn places the local player at cell without interpolation.
func (d *Driver) Spawn(cell mazegrid.Cell) {
	d.session.Teleport(d.id, cell.Row, cell.Col)
	d.mover.Reset(cell)
	d.ready = true
}

func (d *Driver) attach() bool {
	if d.ready {
		return true
	}
	cell, ok := d.session.Target(d.id)
	if !ok {
		return false
	}
	d.mover.Reset(cell)
	d.ready = true
	return true
}

// Update buffers dir and advances the mover by dt. A completed step becomes
// the local entity's new target and is sent to the server.
func (d *Driver) Update(dt time.Duration, dir netconfig.Direction) {
	if !d.attach() {
		return
	}
	d.mover.Want(dir)
	stepped := d.mover.Update(dt.Seconds(), d.grid.Step)
	if stepped == netconfig.DirNone {
		return
	}

	cell := d.mover.Cell
	input := d.pred.Record(stepped, cell, d.now().UnixMilli())
	d.session.SetTarget(d.id, cell.Row, cell.Col)

	if d.send == nil {
		return
	}
	if err := d.send(input); err != nil {
		d.log.Warnw("send move failed", "seq", input.Sequence, "err", err)
	}
}

// OnServerUpdate reconciles an authoritative report for the local entity.
// It is meant for motion.Hooks.LocalUpdate.
func (d *Driver) OnServerUpdate(ev motion.Event) {
	server := mazegrid.Cell{Row: ev.Row, Col: ev.Col}
	cell, corrected := d.pred.Reconcile(ev.Seq, server, d.grid.Step)
	if !corrected {
		return
	}
	if !d.ready {
		d.mover.Reset(cell)
		d.ready = true
		d.session.SetTarget(d.id, cell.Row, cell.Col)
		return
	}
	if cell == d.mover.Cell {
		return
	}

	d.log.Debugw("local position corrected",
		"seq", ev.Seq, "server", server, "predicted", d.mover.Cell, "replayed", cell)
	d.corrections++

	desired := d.mover.DesiredDir
	d.mover.Reset(cell)
	d.mover.Want(desired)
	d.session.SetTarget(d.id, cell.Row, cell.Col)
}
