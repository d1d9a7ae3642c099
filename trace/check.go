package trace

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"go.uber.org/zap"
)

// FindingKind classifies a notable target change seen during replay.
type FindingKind uint8

const (
	// FindingEdgeWrap is a wrap between the last and first column.
	FindingEdgeWrap FindingKind = iota
	// FindingHeuristicWrap is a wrap inferred from a column jump of more than
	// half the maze width. Missed updates or server teleports show up here.
	FindingHeuristicWrap
	// FindingJump is a move of more than one cell that did not wrap.
	FindingJump
	// FindingEchoWrap is a wrap reported for a move of at most one cell. Wrap
	// detection compares against the cell before the previous one, so the
	// update after a seam crossing (or a repeated report of the cell just
	// crossed into) reads as a second wrap.
	FindingEchoWrap
)

func (k FindingKind) String() string {
	switch k {
	case FindingEdgeWrap:
		return "edge-wrap"
	case FindingHeuristicWrap:
		return "heuristic-wrap"
	case FindingEchoWrap:
		return "echo-wrap"
	default:
		return "jump"
	}
}

type Finding struct {
	Kind FindingKind
	At   time.Duration
	ID   netconfig.EntityID
	From mazegrid.Cell
	To   mazegrid.Cell
	Wrap motion.WrapDirection
}

func (f Finding) String() string {
	return fmt.Sprintf("%8v %-14s entity=%d (%d,%d)->(%d,%d) %s",
		f.At, f.Kind, f.ID, f.From.Row, f.From.Col, f.To.Row, f.To.Col, f.Wrap)
}

// Report summarizes a replayed trace.
type Report struct {
	Header   Header
	Events   int
	Entities int
	Findings []Finding
}

// Count returns the number of findings of kind k.
func (r *Report) Count(k FindingKind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Check replays every record in r through a fresh session at the given cell
// size, ticking interpolation between records.
func Check(r *Reader, cellSize float64, log *zap.Logger) (*Report, error) {
	h := r.Header()
	topo, err := mazegrid.New(h.Rows, h.Cols, cellSize, h.WrapRows)
	if err != nil {
		return nil, fmt.Errorf("trace topology: %w", err)
	}
	s := motion.NewSession(topo, motion.Options{Logger: log})
	rep := &Report{Header: h}
	seen := make(map[netconfig.EntityID]bool)

	var last time.Duration
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rep, fmt.Errorf("trace: record %d: %w", rep.Events, err)
		}
		rep.Events++
		if at := rec.At(); at > last {
			s.Tick(float64((at - last).Milliseconds()))
			last = at
		}

		ev := rec.Event()
		switch ev.Kind {
		case motion.EventJoin:
			s.Join(ev)
		case motion.EventUpdate:
			change := s.SetTarget(ev.ID, ev.Row, ev.Col)
			if f, ok := classify(change); ok {
				f.At, f.ID = rec.At(), ev.ID
				rep.Findings = append(rep.Findings, f)
			}
		case motion.EventLeave:
			s.Leave(ev.ID)
		case motion.EventTeleport:
			s.Teleport(ev.ID, ev.Row, ev.Col)
		default:
			continue
		}
		if !seen[ev.ID] && ev.Kind != motion.EventLeave {
			seen[ev.ID] = true
			rep.Entities++
		}
	}
	return rep, nil
}

func classify(c motion.TargetChange) (Finding, bool) {
	if c.Created {
		return Finding{}, false
	}
	f := Finding{From: c.From, To: c.To, Wrap: c.Wrap}
	moved := absInt(c.To.Row-c.From.Row) + absInt(c.To.Col-c.From.Col)
	switch {
	case c.Wrap != motion.WrapNone && moved <= 1:
		f.Kind = FindingEchoWrap
	case c.Wrap != motion.WrapNone && c.EdgePair:
		f.Kind = FindingEdgeWrap
	case c.Wrap != motion.WrapNone:
		f.Kind = FindingHeuristicWrap
	case moved > 1:
		f.Kind = FindingJump
	default:
		return Finding{}, false
	}
	return f, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
