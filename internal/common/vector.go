package common

import "math"

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Sub subtracts other from v.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale multiplies the vector by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Angle returns the direction of v in radians, in (-π, π].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Vec3 represents a 3D vector. Curves are evaluated in 3D; the track only
// uses the x/y plane.
type Vec3 struct {
	X, Y, Z float64
}

// V3 lifts a 2D vector into the z=0 plane.
func V3(v Vec2) Vec3 {
	return Vec3{X: v.X, Y: v.Y}
}

// XY drops the z component.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}
