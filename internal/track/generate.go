package track

import (
	"math"
	"math/rand"

	"roller-coaster/internal/common"
)

// Generate invents n authored waypoints for a playable track: x advances by
// 1 to 2.5 units per row, heights stay within [0.5, 4] and roughly every
// fourth row opens a gap. The first and last rows are always solid, and no
// two gaps follow each other.
func Generate(rnd *rand.Rand, n int) []Waypoint {
	waypoints := make([]Waypoint, 0, n)
	x := 0.0
	for i := 0; i < n; i++ {
		x += 1 + 1.5*rnd.Float64()
		y := 0.5 + 3.5*rnd.Float64()
		solid := i == 0 || i == n-1 || !waypoints[i-1].Solid || rnd.Intn(4) != 0
		waypoints = append(waypoints, Waypoint{
			Solid:    solid,
			Position: common.Vec2{X: round2(x), Y: round2(y)},
		})
	}
	return waypoints
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
