package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roller-coaster/internal/common"
	"roller-coaster/internal/track"
)

const frameTime = 1.0 / 60

func wp(solid bool, x, y float64) track.Waypoint {
	return track.Waypoint{Solid: solid, Position: common.Vec2{X: x, Y: y}}
}

func newRide(t *testing.T, waypoints []track.Waypoint, samples int) *Ride {
	t.Helper()
	tr, err := track.Build(waypoints, samples)
	require.NoError(t, err)
	params := DefaultParams()
	params.Samples = samples
	ride, err := NewRide(tr, params)
	require.NoError(t, err)
	return ride
}

// flat is a solid track at height 0, long enough for a full jump.
func flat(t *testing.T) *Ride {
	return newRide(t, []track.Waypoint{wp(true, 0, 0), wp(true, 4, 0), wp(true, 8, 0)}, 40)
}

func TestNewRideRejectsShortTracks(t *testing.T) {
	_, err := NewRide(nil, DefaultParams())
	assert.True(t, errors.Is(err, ErrTrackTooShort))
	tr, err := track.Build([]track.Waypoint{wp(true, 0, 0), wp(true, 1, 0)}, 2)
	require.NoError(t, err)
	params := DefaultParams()
	params.Samples = 2
	ride, err := NewRide(tr, params)
	require.NoError(t, err)
	assert.Equal(t, 0, ride.Last())
	s, f := ride.Step(NewState(), Input{Elapsed: 10})
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, Grounded, f.Mode)
}

func TestNewRideRejectsUnusableParams(t *testing.T) {
	tr, err := track.Build([]track.Waypoint{wp(true, 0, 0), wp(true, 4, 0)}, 10)
	require.NoError(t, err)
	cases := map[string]func(*Params){
		"zero jump step":    func(p *Params) { p.JumpStep = 0 },
		"negative jump":     func(p *Params) { p.JumpStep = -0.1 },
		"zero fall step":    func(p *Params) { p.FallStep = 0 },
		"NaN velocity":      func(p *Params) { p.Velocity = math.NaN() },
		"negative velocity": func(p *Params) { p.Velocity = -1 },
		"NaN floor":         func(p *Params) { p.Floor = math.NaN() },
		"infinite scale":    func(p *Params) { p.WorldScale = math.Inf(1) },
		"sample mismatch":   func(p *Params) { p.Samples = 40 },
	}
	for name, mutate := range cases {
		params := DefaultParams()
		params.Samples = 10
		mutate(&params)
		_, err := NewRide(tr, params)
		assert.True(t, errors.Is(err, ErrInvalidParams), "%s: got %v", name, err)
	}
	params := DefaultParams()
	params.Samples = 10
	_, err = NewRide(tr, params)
	assert.NoError(t, err)
}

func TestInitialState(t *testing.T) {
	s := NewState()
	assert.Equal(t, Grounded, s.Mode())
	assert.Equal(t, math.Pi, s.JumpPhase)
	assert.Zero(t, s.X)
	assert.Zero(t, s.Y)
	assert.Zero(t, s.Theta)
}

func TestIndexMonotonicAndClamped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "coaster.physics")
	defer teardown()
	ride := flat(t)
	s := NewState()
	prev := 0
	for frame := 0; frame < 600; frame++ {
		var f Frame
		s, f = ride.Step(s, Input{Elapsed: float64(frame) * frameTime})
		assert.GreaterOrEqual(t, f.Index, prev)
		assert.LessOrEqual(t, f.Index, ride.Track().Len()-3)
		assert.Equal(t, float64(f.Index), f.WheelAngle)
		prev = f.Index
	}
	assert.Equal(t, ride.Track().Len()-3, prev)
	// a clock going backwards does not move the wagon back
	s, f := ride.Step(s, Input{Elapsed: 0})
	assert.Equal(t, prev, f.Index)
	assert.Equal(t, prev, s.Index)
}

func TestIndexFromElapsedTime(t *testing.T) {
	ride := flat(t)
	_, f := ride.Step(NewState(), Input{Elapsed: 1})
	assert.Equal(t, 28, f.Index) // floor(1 * 40 * 0.7)
}

func TestGroundedFollowsRail(t *testing.T) {
	ride := newRide(t, []track.Waypoint{wp(true, 0, 0), wp(true, 2, 3), wp(true, 4, 1)}, 10)
	s := NewState()
	for frame := 0; frame < 100; frame++ {
		var f Frame
		s, f = ride.Step(s, Input{Elapsed: float64(frame) * frameTime})
		p := ride.Track().At(f.Index)
		next := ride.Track().At(f.Index + 1)
		require.Equal(t, Grounded, f.Mode)
		assert.InDelta(t, p.Position.X/4, f.Position.X, 1e-12)
		assert.InDelta(t, p.Position.Y/4, f.Position.Y, 1e-12)
		want := math.Atan2((next.Position.Y-p.Position.Y)/4, (next.Position.X-p.Position.X)/4)
		assert.InDelta(t, want, f.Theta, 1e-12)
	}
}

func TestJumpArc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "coaster.physics")
	defer teardown()
	ride := flat(t)
	s := NewState()
	elapsed := 0.0
	s, _ = ride.Step(s, Input{Elapsed: elapsed})
	theta := s.Theta

	elapsed += frameTime
	s, f := ride.Step(s, Input{Elapsed: elapsed, JumpRequested: true})
	require.Equal(t, Jumping, f.Mode)
	assert.InDelta(t, 0, f.Position.Y, 1e-12) // sin(π) = 0

	peak := 0.0
	airborne := 1
	for s.Jump {
		elapsed += frameTime
		s, f = ride.Step(s, Input{Elapsed: elapsed, JumpRequested: true})
		assert.GreaterOrEqual(t, f.Position.Y, 0.0)
		if f.Mode == Jumping {
			assert.Equal(t, theta, f.Theta, "tilt is frozen while jumping")
		}
		peak = math.Max(peak, f.Position.Y)
		airborne++
		require.Less(t, airborne, 100)
	}
	assert.InDelta(t, DefaultJumpHeight, peak, 0.001)
	// π / 0.12 arc samples plus the landing frame
	assert.Equal(t, int(math.Ceil(math.Pi/DefaultJumpStep))+1, airborne)
	assert.Equal(t, math.Pi, s.JumpPhase)

	elapsed += frameTime
	s, f = ride.Step(s, Input{Elapsed: elapsed})
	assert.Equal(t, Grounded, f.Mode)
	assert.Equal(t, 0.0, f.Position.Y)
	assert.False(t, s.Falling)
}

func TestJumpRequestIgnoredWhileJumping(t *testing.T) {
	ride := flat(t)
	s, _ := ride.Step(NewState(), Input{JumpRequested: true})
	s, _ = ride.Step(s, Input{Elapsed: frameTime})
	phase := s.JumpPhase
	s, _ = ride.Step(s, Input{Elapsed: 2 * frameTime, JumpRequested: true})
	assert.InDelta(t, phase-DefaultJumpStep, s.JumpPhase, 1e-12)
}

func TestJumpOverGap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "coaster.physics")
	defer teardown()
	ride := newRide(t, []track.Waypoint{wp(true, 0, 0), wp(true, 2, 0), wp(false, 4, 0), wp(true, 6, 0), wp(true, 8, 0)}, 40)
	gap, ok := ride.Track().NextGap(0)
	require.True(t, ok)
	s := NewState()
	jumped := false
	for frame := 0; frame < 1000 && s.Index < ride.Last(); frame++ {
		in := Input{Elapsed: float64(frame) * frameTime}
		if !jumped && s.Index >= gap-2 {
			in.JumpRequested = true
			jumped = true
		}
		s, _ = ride.Step(s, in)
		require.False(t, s.Falling, "fell at index %d", s.Index)
	}
	assert.True(t, jumped)
	assert.Equal(t, ride.Last(), s.Index)
}

func TestGapBeatsJumpRequest(t *testing.T) {
	ride := newRide(t, []track.Waypoint{wp(true, 0, 0), wp(false, 1, 5), wp(true, 2, 5)}, 4)
	// floor(1.1 * 4 * 0.7) = 3 lands on the gap point
	s, f := ride.Step(NewState(), Input{Elapsed: 1.1, JumpRequested: true})
	assert.Equal(t, 3, s.Index)
	assert.True(t, s.Falling)
	assert.False(t, s.Jump)
	assert.Equal(t, Falling, f.Mode)
	assert.InDelta(t, -DefaultFallStep, s.Y, 1e-12)
}

func TestFallingIsTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "coaster.physics")
	defer teardown()
	ride := newRide(t, []track.Waypoint{wp(true, 0, 0), wp(false, 1, 5), wp(true, 2, 5)}, 4)
	s := NewState()
	elapsed := 0.0
	for !s.Falling {
		s, _ = ride.Step(s, Input{Elapsed: elapsed})
		elapsed += frameTime
		require.Less(t, elapsed, 10.0)
	}
	assert.Equal(t, 3, s.Index, "fall starts on the gap point")
	y := s.Y
	frames := 0
	for !s.Over {
		var f Frame
		s, f = ride.Step(s, Input{Elapsed: elapsed, JumpRequested: true})
		elapsed += frameTime
		assert.InDelta(t, y-DefaultFallStep, f.Position.Y, 1e-9)
		assert.Less(t, f.Position.Y, y)
		assert.False(t, s.Jump)
		if !s.Over {
			assert.Equal(t, Falling, f.Mode)
		}
		y = f.Position.Y
		frames++
		require.Less(t, frames, 1000)
	}
	assert.Less(t, y, DefaultFloor)
	assert.GreaterOrEqual(t, y+DefaultFallStep, DefaultFloor)
}

func TestEndToEndScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "coaster.physics")
	defer teardown()
	ride := newRide(t, []track.Waypoint{wp(true, 0, 0), wp(false, 1, 5), wp(true, 2, 5)}, 4)
	require.Equal(t, 7, ride.Track().Len())
	s := NewState()
	var f Frame
	var modes []Mode
	elapsed := 0.0
	for frame := 0; frame < 1000 && f.Mode != GameOver; frame++ {
		s, f = ride.Step(s, Input{Elapsed: elapsed})
		if len(modes) == 0 || modes[len(modes)-1] != f.Mode {
			modes = append(modes, f.Mode)
		}
		if f.Index < 3 {
			assert.Equal(t, Grounded, f.Mode)
		}
		elapsed += frameTime
	}
	assert.Equal(t, []Mode{Grounded, Falling, GameOver}, modes)
	assert.Less(t, f.Position.Y, -0.125)

	// GameOver is terminal
	after, f2 := ride.Step(s, Input{Elapsed: elapsed + 5, JumpRequested: true})
	assert.Equal(t, s, after)
	assert.Equal(t, GameOver, f2.Mode)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "grounded", Grounded.String())
	assert.Equal(t, "game over", GameOver.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
