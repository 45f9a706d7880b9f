package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roller-coaster/internal/common"
)

const tolerance = 1e-9

func assertVec(t *testing.T, want, got common.Vec3) {
	t.Helper()
	assert.InDelta(t, 0, distance(want, got), tolerance, "want %v, got %v", want, got)
}

func distance(a, b common.Vec3) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}

func TestHermiteEndpoints(t *testing.T) {
	cases := []struct {
		p1, p2, t1, t2 common.Vec3
	}{
		{common.Vec3{X: 0, Y: 0}, common.Vec3{X: 1, Y: 5}, common.Vec3{X: 1.7}, common.Vec3{X: 1.7}},
		{common.Vec3{X: 1, Y: 4}, common.Vec3{X: 1, Y: 3}, common.Vec3{X: 1}, common.Vec3{X: 1}},
		{common.Vec3{X: -3, Y: 2, Z: 7}, common.Vec3{X: 12, Y: -8, Z: 1}, common.Vec3{Y: 4}, common.Vec3{X: -2, Z: 3}},
	}
	for _, c := range cases {
		m := Hermite(c.p1, c.p2, c.t1, c.t2)
		assertVec(t, c.p1, m.At(0))
		assertVec(t, c.p2, m.At(1))
		samples := Eval(m, 7)
		require.Len(t, samples, 7)
		assertVec(t, c.p1, samples[0])
		assertVec(t, c.p2, samples[6])
	}
}

func TestHermiteTangentShapesCurve(t *testing.T) {
	// a horizontal start tangent keeps the curve below the chord early on
	m := Hermite(common.Vec3{}, common.Vec3{X: 1, Y: 1}, common.Vec3{X: 1.7}, common.Vec3{X: 1.7})
	mid := m.At(0.25)
	assert.Less(t, mid.Y, mid.X)
	// midpoint of a symmetric setup lies on the chord
	half := m.At(0.5)
	assert.InDelta(t, 0.5, half.X, tolerance)
	assert.InDelta(t, 0.5, half.Y, tolerance)
}

func TestEvalSampleCount(t *testing.T) {
	m := Hermite(common.Vec3{}, common.Vec3{X: 2, Y: 1}, common.Vec3{X: 1.7}, common.Vec3{X: 1.7})
	for n := 2; n <= 64; n++ {
		assert.Len(t, Eval(m, n), n)
	}
}

func TestEvalUniformParameters(t *testing.T) {
	// a straight line with tangents equal to the chord is linear in t
	p1, p2 := common.Vec3{X: 0}, common.Vec3{X: 3}
	m := Hermite(p1, p2, common.Vec3{X: 3}, common.Vec3{X: 3})
	samples := Eval(m, 4)
	for i, s := range samples {
		assert.InDelta(t, float64(i), s.X, tolerance)
	}
}

func TestEvalDegenerate(t *testing.T) {
	m := Hermite(common.Vec3{X: 2, Y: 3}, common.Vec3{X: 5, Y: 1}, common.Vec3{X: 1.7}, common.Vec3{X: 1.7})
	one := Eval(m, 1)
	require.Len(t, one, 1)
	assertVec(t, common.Vec3{X: 2, Y: 3}, one[0])
	assert.Nil(t, Eval(m, 0))
	assert.Nil(t, Eval(m, -4))
}

func TestBezierEndpoints(t *testing.T) {
	r0 := common.Vec3{Z: 1}
	r1 := common.Vec3{X: 1}
	r2 := common.Vec3{X: 2, Z: 1}
	r3 := common.Vec3{X: 3}
	m := Bezier(r0, r1, r2, r3)
	samples := Eval(m, 4)
	require.Len(t, samples, 4)
	assertVec(t, r0, samples[0])
	assertVec(t, r3, samples[3])
	// evenly spaced control points give a linear x(t)
	assert.InDelta(t, 1.0, samples[1].X, tolerance)
	assert.InDelta(t, 2.0, samples[2].X, tolerance)
}
