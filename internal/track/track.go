// Package track turns sparse waypoints into a dense, index-addressable rail.
//
// Consecutive waypoints are joined by Hermite segments which are sampled a
// fixed number of times. A waypoint flagged as a gap opens a hole at the start
// of the segment it begins. The resulting Dense track is built once and never
// mutated afterwards, so it may be shared freely between readers.
package track

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"roller-coaster/internal/common"
)

// tracer writes to trace with key 'coaster.track'
func tracer() tracing.Trace {
	return tracing.Select("coaster.track")
}

var (
	// ErrInvalidInput indicates waypoints or parameters a track cannot be built from.
	ErrInvalidInput = errors.New("invalid track input")
	// ErrMalformedRow indicates a waypoint file row that cannot be parsed.
	ErrMalformedRow = errors.New("malformed waypoint row")
)

// Waypoint is a hand-authored checkpoint. Solid == false marks a gap.
type Waypoint struct {
	Solid    bool
	Position common.Vec2
}

// Point is a sample on the dense rail. Solid == false means there is no rail
// under it.
type Point struct {
	Solid    bool
	Position common.Vec2
}

// Dense is the fully sampled track. The index into it is the unit of
// playback time.
type Dense struct {
	points  []Point
	samples int
}

// Len returns the number of points.
func (d *Dense) Len() int {
	return len(d.points)
}

// Samples returns the samples-per-segment count the track was built with.
func (d *Dense) Samples() int {
	return d.samples
}

// At returns point i. Reading outside the track is a programming error.
func (d *Dense) At(i int) Point {
	if i < 0 || i >= len(d.points) {
		panic(fmt.Sprintf("track index %d out of range [0,%d)", i, len(d.points)))
	}
	return d.points[i]
}

// Points returns a copy of all points.
func (d *Dense) Points() []Point {
	pts := make([]Point, len(d.points))
	copy(pts, d.points)
	return pts
}

// Length is the horizontal extent of the track in track units.
func (d *Dense) Length() float64 {
	if len(d.points) == 0 {
		return 0
	}
	return d.points[len(d.points)-1].Position.X - d.points[0].Position.X
}

// NextGap finds the first non-solid point at or after index from.
func (d *Dense) NextGap(from int) (int, bool) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(d.points); i++ {
		if !d.points[i].Solid {
			return i, true
		}
	}
	return -1, false
}
