package track

import (
	"fmt"
	"math"

	"roller-coaster/internal/common"
	"roller-coaster/internal/curve"
)

// DefaultSamples is the number of curve samples per waypoint segment.
const DefaultSamples = 40

// Tangent is used at both ends of every segment, so slopes are not derived
// from the waypoints.
var Tangent = common.Vec3{X: 1.7}

// GapWidth returns how many leading samples of a gap segment have no rail:
// one sixth of the samples, rounded up.
func GapWidth(samples int) int {
	return (samples + 5) / 6
}

// Build samples one Hermite segment per consecutive waypoint pair and stitches
// them into a dense track of (len(waypoints)-1)*(samples-1)+1 points.
//
// The shared end sample of each segment is dropped, the last waypoint is
// appended verbatim. Ordering of x is not checked here; see Validate.
func Build(waypoints []Waypoint, samples int) (*Dense, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidInput, len(waypoints))
	}
	if samples < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples per segment, got %d", ErrInvalidInput, samples)
	}
	for i, w := range waypoints {
		if !finite(w.Position) {
			return nil, fmt.Errorf("%w: waypoint %d has non-finite coordinates", ErrInvalidInput, i)
		}
	}
	gap := GapWidth(samples)
	points := make([]Point, 0, (len(waypoints)-1)*(samples-1)+1)
	for i := 0; i < len(waypoints)-1; i++ {
		from, to := waypoints[i], waypoints[i+1]
		m := curve.Hermite(common.V3(from.Position), common.V3(to.Position), Tangent, Tangent)
		segment := curve.Eval(m, samples)
		for j := 0; j < samples-1; j++ {
			points = append(points, Point{
				Solid:    from.Solid || j >= gap,
				Position: segment[j].XY(),
			})
		}
	}
	points = append(points, Point(waypoints[len(waypoints)-1]))
	tracer().Debugf("built track: %d waypoints, %d samples/segment, %d points",
		len(waypoints), samples, len(points))
	return &Dense{points: points, samples: samples}, nil
}

// Validate checks the loader's preconditions: at least two waypoints and
// strictly increasing x. Build does not require it, but a track violating it
// folds back on itself.
func Validate(waypoints []Waypoint) error {
	if len(waypoints) < 2 {
		return fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInvalidInput, len(waypoints))
	}
	for i := 1; i < len(waypoints); i++ {
		if waypoints[i].Position.X <= waypoints[i-1].Position.X {
			return fmt.Errorf("%w: x not increasing at waypoint %d (%g after %g)", ErrInvalidInput,
				i, waypoints[i].Position.X, waypoints[i-1].Position.X)
		}
	}
	return nil
}

func finite(v common.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
