package network

import (
	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/automoto/mazerun-mp/shared/messages"
	"github.com/automoto/mazerun-mp/shared/netconfig"
)

const predictionBufferSize = 64

// MoveRecord stores a move alongside the cell the client predicted it leads to.
type MoveRecord struct {
	Input     messages.MoveInput
	Predicted mazegrid.Cell
}

// PredictionBuffer is a ring buffer that stores recent moves and their
// predicted outcomes for server reconciliation.
type PredictionBuffer struct {
	history [predictionBufferSize]MoveRecord
	nextSeq uint32
}

// Store saves a move. The predicted cell is the move's own Row/Col.
func (pb *PredictionBuffer) Store(input messages.MoveInput) {
	idx := input.Sequence % predictionBufferSize
	pb.history[idx] = MoveRecord{
		Input:     input,
		Predicted: mazegrid.Cell{Row: input.Row, Col: input.Col},
	}
	pb.nextSeq = input.Sequence + 1
}

// Get retrieves a stored record by sequence number. Returns false if not found
// or if the slot has been overwritten.
func (pb *PredictionBuffer) Get(seq uint32) (MoveRecord, bool) {
	idx := seq % predictionBufferSize
	record := pb.history[idx]
	if record.Input.Sequence != seq || seq >= pb.nextSeq {
		return MoveRecord{}, false
	}
	return record, true
}

// NextSeq returns the next expected sequence number.
func (pb *PredictionBuffer) NextSeq() uint32 {
	return pb.nextSeq
}

// GetUnacknowledged returns all stored moves with sequence numbers greater
// than lastAcked and less than nextSeq (i.e. moves the server hasn't
// confirmed yet).
func (pb *PredictionBuffer) GetUnacknowledged(lastAcked uint32) []MoveRecord {
	var results []MoveRecord
	for seq := lastAcked + 1; seq < pb.nextSeq; seq++ {
		if record, ok := pb.Get(seq); ok {
			results = append(results, record)
		}
	}
	return results
}

// Mispredicted reports whether the server put the player somewhere other than
// where the client predicted for seq. Unknown sequences never mispredict.
func (pb *PredictionBuffer) Mispredicted(seq uint32, server mazegrid.Cell) bool {
	record, ok := pb.Get(seq)
	if !ok {
		return false
	}
	return record.Predicted != server
}

// StepFunc moves one cell from `from` in dir, reporting false when blocked.
type StepFunc func(from mazegrid.Cell, dir netconfig.Direction) (mazegrid.Cell, bool)

// Prediction owns client-side prediction state for the local player.
type Prediction struct {
	Buffer *PredictionBuffer
	seq    uint32
}

func NewPrediction() *Prediction {
	return &Prediction{Buffer: &PredictionBuffer{}}
}

// Record numbers a move into cell and stores it. The returned input is ready
// to send.
func (p *Prediction) Record(dir netconfig.Direction, cell mazegrid.Cell, timestamp int64) messages.MoveInput {
	p.seq++
	input := messages.MoveInput{
		Sequence:  p.seq,
		Direction: dir,
		Row:       cell.Row,
		Col:       cell.Col,
		Timestamp: timestamp,
	}
	p.Buffer.Store(input)
	return input
}

// Reconcile checks the server's cell for lastAck against the prediction.
// When they differ it replays the unacknowledged moves from the server cell
// and returns the corrected cell. ok is false when no correction is needed.
//
// A zero lastAck means the server has not seen any input yet; the server cell
// is accepted only while nothing has been sent.
func (p *Prediction) Reconcile(lastAck uint32, server mazegrid.Cell, step StepFunc) (mazegrid.Cell, bool) {
	if lastAck == 0 {
		if p.Buffer.NextSeq() == 0 {
			return server, true
		}
		return mazegrid.Cell{}, false
	}
	if !p.Buffer.Mispredicted(lastAck, server) {
		return mazegrid.Cell{}, false
	}

	cell := server
	for _, rec := range p.Buffer.GetUnacknowledged(lastAck) {
		if next, ok := step(cell, rec.Input.Direction); ok {
			cell = next
		}
	}
	return cell, true
}
