// Package scene is a small retained scene graph. Nodes carry a local affine
// transform and optional filled polygons; the world transform of a node is
// its parent's world transform times its local one.
package scene

import (
	"image/color"

	"github.com/npillmayer/arithm"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'coaster.scene'
func tracer() tracing.Trace {
	return tracing.Select("coaster.scene")
}

// Shape is a filled polygon in node coordinates.
type Shape struct {
	Points []arithm.Pair
	Color  color.RGBA
}

// Node is an element of the graph. A node may appear under several parents
// and is then drawn once per path.
type Node struct {
	Name      string
	Transform arithm.AT // nil means identity
	Shapes    []Shape
	Children  []*Node
}

// NewNode creates a node with the given local transform and children.
func NewNode(name string, transform arithm.AT, children ...*Node) *Node {
	return &Node{Name: name, Transform: transform, Children: children}
}

// Scale returns a uniform scaling transform.
func Scale(s float64) arithm.AT {
	return arithm.AT{s, 0, 0, 0, s, 0, 0, 0, 1}
}

// Find returns the first node called name in depth-first order, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, ch := range n.Children {
		if found := ch.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and its descendants depth-first, parents before children,
// passing each node's world transform.
func (n *Node) Walk(parent arithm.AT, visit func(n *Node, world arithm.AT)) {
	world := parent
	if n.Transform != nil {
		world = n.Transform.Combine(parent)
	}
	visit(n, world)
	for _, ch := range n.Children {
		ch.Walk(world, visit)
	}
}

// Polygon is a shape transformed to world coordinates.
type Polygon struct {
	Points []arithm.Pair
	Color  color.RGBA
}

// Flatten returns the world-space polygons of the graph below root, in
// drawing order.
func Flatten(root *Node) []Polygon {
	var polygons []Polygon
	root.Walk(arithm.Identity(), func(n *Node, world arithm.AT) {
		for _, s := range n.Shapes {
			pts := make([]arithm.Pair, len(s.Points))
			for i, p := range s.Points {
				pts[i] = world.Transform(p)
			}
			polygons = append(polygons, Polygon{Points: pts, Color: s.Color})
		}
	})
	return polygons
}

// rect is an axis-aligned rectangle as a counter-clockwise polygon.
func rect(x0, y0, x1, y1 float64) []arithm.Pair {
	return []arithm.Pair{arithm.P(x0, y0), arithm.P(x1, y0), arithm.P(x1, y1), arithm.P(x0, y1)}
}
