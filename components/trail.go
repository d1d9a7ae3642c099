package components

import (
	"math"

	"github.com/automoto/mazerun-mp/shared/mazegrid"
	"github.com/yohamta/donburi"
)

// TrailLength is the number of samples kept per trail.
const TrailLength = 24

// TrailData is a ring of recent pixel positions, oldest first.
type TrailData struct {
	points [TrailLength]mazegrid.Point
	head   int
	size   int
}

var Trail = donburi.NewComponentType[TrailData]()

// Push appends p unless it is closer than minStep to the newest sample.
func (t *TrailData) Push(p mazegrid.Point, minStep float64) {
	if t.size > 0 {
		last := t.points[(t.head+t.size-1)%TrailLength]
		if math.Hypot(p.X-last.X, p.Y-last.Y) < minStep {
			return
		}
	}
	if t.size < TrailLength {
		t.points[(t.head+t.size)%TrailLength] = p
		t.size++
		return
	}
	t.points[t.head] = p
	t.head = (t.head + 1) % TrailLength
}

// Reset drops every sample.
func (t *TrailData) Reset() {
	t.head = 0
	t.size = 0
}

func (t *TrailData) Len() int {
	return t.size
}

// Points appends the samples to dst, oldest first, and returns it.
func (t *TrailData) Points(dst []mazegrid.Point) []mazegrid.Point {
	for i := 0; i < t.size; i++ {
		dst = append(dst, t.points[(t.head+i)%TrailLength])
	}
	return dst
}

// Scale multiplies every sample, used when the maze is resized.
func (t *TrailData) Scale(f float64) {
	for i := 0; i < t.size; i++ {
		idx := (t.head + i) % TrailLength
		t.points[idx].X *= f
		t.points[idx].Y *= f
	}
}
