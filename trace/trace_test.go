package trace

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

type sliceSink struct {
	events  []motion.Event
	batches int
}

func (s *sliceSink) Push(ev motion.Event) { s.events = append(s.events, ev) }

func (s *sliceSink) PushAll(evs []motion.Event) {
	s.batches++
	s.events = append(s.events, evs...)
}

func TestRecorderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	next := &sliceSink{}
	rec, err := NewRecorder(&buf, Header{Maze: "classic", Rows: 31, Cols: 28, WrapRows: []int{14}}, next)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	base := rec.start
	at := base
	rec.now = func() time.Time { return at }

	at = base.Add(16 * time.Millisecond)
	rec.Push(motion.Event{Kind: motion.EventJoin, ID: 7, Row: 14, Col: 27, Name: "ann", ColorIndex: 3})
	at = base.Add(50 * time.Millisecond)
	rec.PushAll([]motion.Event{
		{Kind: motion.EventUpdate, ID: 7, Row: 14, Col: 0, Seq: 12},
		{Kind: motion.EventVisual, ID: 7, Flags: netconfig.VisualKnockback, KnockDir: netconfig.DirLeft},
	})
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if len(next.events) != 3 || next.batches != 1 {
		t.Fatalf("forwarded %d events in %d batches, want 3 in 1", len(next.events), next.batches)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	h := r.Header()
	if h.Maze != "classic" || h.Rows != 31 || h.Cols != 28 || len(h.WrapRows) != 1 || h.WrapRows[0] != 14 {
		t.Fatalf("header = %+v", h)
	}

	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	if recs[0].At() != 16*time.Millisecond || recs[1].At() != 50*time.Millisecond {
		t.Fatalf("times = %v, %v", recs[0].At(), recs[1].At())
	}
	for i, want := range next.events {
		if got := recs[i].Event(); got != want {
			t.Fatalf("record %d = %+v, want %+v", i, got, want)
		}
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next after end = %v, want io.EOF", err)
	}
}

func TestRecorderWithoutNext(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, Header{Maze: "m", Rows: 1, Cols: 1}, nil)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	rec.Push(motion.Event{Kind: motion.EventLeave, ID: 1})
	rec.PushAll([]motion.Event{{Kind: motion.EventLeave, ID: 2}})
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	recs, err := r.ReadAll()
	if err != nil || len(recs) != 2 {
		t.Fatalf("records = %d (%v), want 2", len(recs), err)
	}
}

func TestReaderRejectsGarbage(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte{0xc1})); !errors.Is(err, ErrBadHeader) {
		t.Fatalf("err = %v, want ErrBadHeader", err)
	}
}

func TestCheckClassifiesTargetChanges(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, Header{Maze: "tiny", Rows: 5, Cols: 10, WrapRows: []int{2}}, nil)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	rec.PushAll([]motion.Event{
		{Kind: motion.EventJoin, ID: 1, Row: 2, Col: 9},
		{Kind: motion.EventUpdate, ID: 1, Row: 2, Col: 0},
		{Kind: motion.EventUpdate, ID: 1, Row: 2, Col: 1},
		{Kind: motion.EventUpdate, ID: 1, Row: 2, Col: 8},
		{Kind: motion.EventUpdate, ID: 1, Row: 4, Col: 8},
		{Kind: motion.EventTeleport, ID: 1, Row: 2, Col: 0},
		{Kind: motion.EventLeave, ID: 1},
	})
	if err := rec.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	rep, err := Check(r, 16, nil)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rep.Events != 7 || rep.Entities != 1 {
		t.Fatalf("events = %d, entities = %d", rep.Events, rep.Entities)
	}
	if len(rep.Findings) != 4 {
		t.Fatalf("findings = %v", rep.Findings)
	}
	want := []FindingKind{FindingEdgeWrap, FindingEchoWrap, FindingHeuristicWrap, FindingJump}
	for i, k := range want {
		if rep.Findings[i].Kind != k {
			t.Fatalf("finding %d = %v, want %v", i, rep.Findings[i], k)
		}
	}
	dirs := []motion.WrapDirection{motion.WrapRightToLeft, motion.WrapRightToLeft, motion.WrapLeftToRight}
	for i, d := range dirs {
		if rep.Findings[i].Wrap != d {
			t.Fatalf("finding %d wrap = %v, want %v", i, rep.Findings[i].Wrap, d)
		}
	}
	if rep.Count(FindingJump) != 1 {
		t.Fatalf("jump count = %d", rep.Count(FindingJump))
	}
}
