package scene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/npillmayer/arithm"

	"roller-coaster/internal/physics"
	"roller-coaster/internal/track"
)

// Node names of the coaster graph.
const (
	NodeElements      = "elements"
	NodeScenery       = "scenery"
	NodeBackground    = "background"
	NodeRails         = "rails"
	NodeWagonAnchor   = "traslatedWagon"
	NodeScaledWagon   = "scaledWagon"
	NodeWagon         = "wagon"
	NodeBox           = "box"
	NodeFrontWheel    = "frontWheel"
	NodeBackWheel     = "backWheel"
	NodeWheelRotation = "wheelRotation"
	NodeWheel         = "wheel"
)

var (
	ColorSky   = color.RGBA{135, 190, 235, 255}
	ColorHills = color.RGBA{110, 170, 90, 255}
	ColorRail  = color.RGBA{120, 80, 50, 255}
	ColorBox   = color.RGBA{200, 30, 40, 255}
	ColorWheel = color.RGBA{40, 40, 40, 255}
	ColorSpoke = color.RGBA{220, 220, 220, 255}
)

// Coaster is the scene of one ride. The scenery scrolls under a wagon that
// stays put on screen.
type Coaster struct {
	Root *Node

	scenery       *Node
	wagon         *Node
	wheelRotation *Node
}

// NewCoaster lays out the background, the rail panels and the wagon.
func NewCoaster(rail *track.Rail) *Coaster {
	wheel := NewNode(NodeWheel, Scale(0.2))
	wheel.Shapes = []Shape{
		{Points: circle(0.5, 8), Color: ColorWheel},
		{Points: rect(-0.5, -0.06, 0.5, 0.06), Color: ColorSpoke},
	}
	wheelRotation := NewNode(NodeWheelRotation, arithm.Identity(), wheel)
	box := NewNode(NodeBox, arithm.Translation(arithm.P(0, 0.3)))
	box.Shapes = []Shape{{Points: rect(-0.5, -0.5, 0.5, 0.5), Color: ColorBox}}
	wagon := NewNode(NodeWagon, arithm.Identity(),
		box,
		NewNode(NodeFrontWheel, arithm.Translation(arithm.P(0.2, 0.1)), wheelRotation),
		NewNode(NodeBackWheel, arithm.Translation(arithm.P(-0.3, 0.1)), wheelRotation),
	)
	anchor := NewNode(NodeWagonAnchor, arithm.Translation(arithm.P(track.RailLeft, track.RailBase)),
		NewNode(NodeScaledWagon, Scale(0.1), wagon))

	scenery := NewNode(NodeScenery, arithm.Identity(), background(rail), rails(rail))
	root := NewNode(NodeElements,
		Scale(2).Combine(arithm.Translation(arithm.P(1.4, 0.9))),
		scenery, anchor)

	c := &Coaster{
		Root:          root,
		scenery:       mustFind(root, NodeScenery),
		wagon:         mustFind(root, NodeWagon),
		wheelRotation: mustFind(root, NodeWheelRotation),
	}
	tracer().Debugf("coaster scene: %d rail panels", len(rail.Quads))
	return c
}

// Apply moves the scene to the state of a frame.
func (c *Coaster) Apply(f physics.Frame) {
	c.scenery.Transform = arithm.Translation(arithm.P(-f.Position.X, -f.Position.Y))
	c.wagon.Transform = arithm.Rotation(f.Theta)
	c.wheelRotation.Transform = arithm.Rotation(f.WheelAngle)
}

// Polygons returns the world-space polygons to draw, back to front.
func (c *Coaster) Polygons() []Polygon {
	return Flatten(c.Root)
}

func background(rail *track.Rail) *Node {
	n := NewNode(NodeBackground, arithm.Identity())
	right := -2 + 3*rail.Length
	n.Shapes = []Shape{
		{Points: rect(-2, -1, right, 2), Color: ColorSky},
		{Points: rect(-2, -1, right, -0.7), Color: ColorHills},
	}
	return n
}

func rails(rail *track.Rail) *Node {
	n := NewNode(NodeRails, arithm.Identity())
	for _, q := range rail.Quads {
		pts := make([]arithm.Pair, len(q))
		for i, v := range q {
			pts[i] = arithm.P(v.X, v.Y)
		}
		n.Shapes = append(n.Shapes, Shape{Points: pts, Color: ColorRail})
	}
	return n
}

func circle(r float64, segments int) []arithm.Pair {
	pts := make([]arithm.Pair, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = arithm.P(r*math.Cos(a), r*math.Sin(a))
	}
	return pts
}

func mustFind(root *Node, name string) *Node {
	n := root.Find(name)
	if n == nil {
		panic(fmt.Sprintf("scene: node %q missing", name))
	}
	return n
}
