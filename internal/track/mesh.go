package track

import "roller-coaster/internal/common"

// World placement of the rail. Track point (x, y) is drawn at
// (RailLeft + x·scale, RailBase + y·scale); the structure under it reaches
// down to RailBottom.
const (
	RailLeft   = -1.0
	RailBase   = -0.8
	RailBottom = -1.0
)

// Quad is one rail panel: bottom-left, bottom-right, top-right, top-left.
type Quad [4]common.Vec2

// Rail is the drawable structure of a dense track in world coordinates.
type Rail struct {
	Quads  []Quad
	Scale  float64 // world units per track unit
	Length float64 // horizontal extent in world units
}

// NewRail joins every pair of consecutive solid points with a panel. A gap
// point breaks the structure on both of its sides.
func NewRail(d *Dense, scale float64) *Rail {
	rail := &Rail{Scale: scale, Length: d.Length() * scale}
	for i := 0; i+1 < d.Len(); i++ {
		p, q := d.points[i], d.points[i+1]
		if !p.Solid || !q.Solid {
			continue
		}
		x0 := RailLeft + p.Position.X*scale
		x1 := RailLeft + q.Position.X*scale
		rail.Quads = append(rail.Quads, Quad{
			{X: x0, Y: RailBottom},
			{X: x1, Y: RailBottom},
			{X: x1, Y: RailBase + q.Position.Y*scale},
			{X: x0, Y: RailBase + p.Position.Y*scale},
		})
	}
	tracer().Debugf("rail: %d panels over %.3g world units", len(rail.Quads), rail.Length)
	return rail
}

// Top returns the world position of the rail top above track point p.
func (r *Rail) Top(p Point) common.Vec2 {
	return common.Vec2{X: RailLeft + p.Position.X*r.Scale, Y: RailBase + p.Position.Y*r.Scale}
}
