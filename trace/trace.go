// Package trace records inbound motion events to a msgpack stream so real
// sessions can be replayed and checked offline.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/automoto/mazerun-mp/motion"
	"github.com/automoto/mazerun-mp/shared/netconfig"
	"github.com/vmihailenco/msgpack/v5"
)

// FormatVersion is written in every header.
const FormatVersion = 1

// ErrBadHeader is returned when a stream does not start with a trace header.
var ErrBadHeader = errors.New("trace: bad header")

// Header describes the maze a trace was recorded on.
type Header struct {
	Version  int    `msgpack:"v"`
	Maze     string `msgpack:"maze"`
	Rows     int    `msgpack:"rows"`
	Cols     int    `msgpack:"cols"`
	WrapRows []int  `msgpack:"wrap"`
}

// Record is one event and the time it arrived, relative to the start of the
// recording.
type Record struct {
	AtMillis int64  `msgpack:"t"`
	Kind     uint8  `msgpack:"k"`
	ID       uint   `msgpack:"id"`
	Row      int    `msgpack:"r"`
	Col      int    `msgpack:"c"`
	Seq      uint32 `msgpack:"s,omitempty"`
	Name     string `msgpack:"n,omitempty"`
	Color    int    `msgpack:"ci,omitempty"`
	Flags    uint8  `msgpack:"f,omitempty"`
	KnockDir int    `msgpack:"kd,omitempty"`
}

// FromEvent converts ev into a record stamped at.
func FromEvent(ev motion.Event, at time.Duration) Record {
	return Record{
		AtMillis: at.Milliseconds(),
		Kind:     uint8(ev.Kind),
		ID:       uint(ev.ID),
		Row:      ev.Row,
		Col:      ev.Col,
		Seq:      ev.Seq,
		Name:     ev.Name,
		Color:    ev.ColorIndex,
		Flags:    uint8(ev.Flags),
		KnockDir: int(ev.KnockDir),
	}
}

// Event converts the record back into a motion event.
func (r Record) Event() motion.Event {
	return motion.Event{
		Kind:       motion.EventKind(r.Kind),
		ID:         netconfig.EntityID(r.ID),
		Row:        r.Row,
		Col:        r.Col,
		Seq:        r.Seq,
		Name:       r.Name,
		ColorIndex: r.Color,
		Flags:      netconfig.VisualFlags(r.Flags),
		KnockDir:   netconfig.Direction(r.KnockDir),
	}
}

// At is the record's arrival time.
func (r Record) At() time.Duration {
	return time.Duration(r.AtMillis) * time.Millisecond
}

// Recorder is an event sink that writes every event to w and then forwards it
// to next. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	next  motion.EventSink
	bw    *bufio.Writer
	enc   *msgpack.Encoder
	start time.Time
	now   func() time.Time
	err   error
}

// NewRecorder writes h and returns a recorder in front of next. next may be nil.
func NewRecorder(w io.Writer, h Header, next motion.EventSink) (*Recorder, error) {
	bw := bufio.NewWriter(w)
	r := &Recorder{
		next: next,
		bw:   bw,
		enc:  msgpack.NewEncoder(bw),
		now:  time.Now,
	}
	h.Version = FormatVersion
	if err := r.enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("trace: write header: %w", err)
	}
	r.start = r.now()
	return r, nil
}

func (r *Recorder) Push(ev motion.Event) {
	r.mu.Lock()
	r.write(ev)
	r.mu.Unlock()
	if r.next != nil {
		r.next.Push(ev)
	}
}

// PushAll records evs and forwards them as one batch when next supports it.
func (r *Recorder) PushAll(evs []motion.Event) {
	r.mu.Lock()
	for _, ev := range evs {
		r.write(ev)
	}
	r.mu.Unlock()

	if r.next == nil {
		return
	}
	if bs, ok := r.next.(interface{ PushAll([]motion.Event) }); ok {
		bs.PushAll(evs)
		return
	}
	for _, ev := range evs {
		r.next.Push(ev)
	}
}

func (r *Recorder) write(ev motion.Event) {
	if r.err != nil {
		return
	}
	rec := FromEvent(ev, r.now().Sub(r.start))
	r.err = r.enc.Encode(&rec)
}

// Err returns the first write error. Recording stops after an error; events
// are still forwarded.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Flush writes buffered records to the underlying writer.
func (r *Recorder) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	return r.bw.Flush()
}

// Reader decodes a trace stream.
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and validates the header.
func NewReader(rd io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(rd))
	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, h.Version)
	}
	return &Reader{dec: dec, header: h}, nil
}

func (r *Reader) Header() Header { return r.header }

// Next returns the next record, or io.EOF at the end of the stream.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.dec.Decode(&rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ReadAll returns every remaining record.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("trace: record %d: %w", len(out), err)
		}
		out = append(out, rec)
	}
}
