// Package curve evaluates cubic curves given in geometry/basis matrix form.
//
// A cubic curve is the product G·M·T(t), where G holds the four control
// vectors as columns, M is a constant basis matrix and T(t) = [1, t, t², t³].
// Hermite curves take two endpoints and two tangents, Bézier curves four
// control points. Both are blended into a Matrix once and may then be
// sampled any number of times.
package curve

import "roller-coaster/internal/common"

// Matrix is a blended cubic curve: one row per coordinate (x, y, z), one
// column per power of t.
type Matrix [3][4]float64

// hermiteBasis maps (P1, P2, T1, T2) to polynomial coefficients.
var hermiteBasis = [4][4]float64{
	{1, 0, -3, 2},
	{0, 0, 3, -2},
	{0, 1, -2, 1},
	{0, 0, -1, 1},
}

// bezierBasis maps (P0, P1, P2, P3) to polynomial coefficients.
var bezierBasis = [4][4]float64{
	{1, -3, 3, -1},
	{0, 3, -6, 3},
	{0, 0, 3, -3},
	{0, 0, 0, 1},
}

// Hermite returns the curve starting at p1 with tangent t1 and ending at p2
// with tangent t2.
func Hermite(p1, p2, t1, t2 common.Vec3) Matrix {
	return blend(geometry(p1, p2, t1, t2), &hermiteBasis)
}

// Bezier returns the cubic Bézier curve for control points p0 … p3.
func Bezier(p0, p1, p2, p3 common.Vec3) Matrix {
	return blend(geometry(p0, p1, p2, p3), &bezierBasis)
}

// geometry concatenates four vectors as the columns of a 3×4 matrix.
func geometry(c0, c1, c2, c3 common.Vec3) [3][4]float64 {
	return [3][4]float64{
		{c0.X, c1.X, c2.X, c3.X},
		{c0.Y, c1.Y, c2.Y, c3.Y},
		{c0.Z, c1.Z, c2.Z, c3.Z},
	}
}

func blend(g [3][4]float64, basis *[4][4]float64) Matrix {
	var m Matrix
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += g[row][k] * basis[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// At evaluates the curve at parameter t.
func (m Matrix) At(t float64) common.Vec3 {
	powers := [4]float64{1, t, t * t, t * t * t}
	var c [3]float64
	for row := 0; row < 3; row++ {
		for k := 0; k < 4; k++ {
			c[row] += m[row][k] * powers[k]
		}
	}
	return common.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

// Eval samples the curve at n evenly spaced parameters covering [0, 1],
// the first at exactly 0 and the last at exactly 1.
//
// n = 1 yields just the start point, n ≤ 0 yields nil.
func Eval(m Matrix, n int) []common.Vec3 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []common.Vec3{m.At(0)}
	}
	samples := make([]common.Vec3, n)
	last := float64(n - 1)
	for i := range samples {
		samples[i] = m.At(float64(i) / last)
	}
	return samples
}
