package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"

	"roller-coaster/internal/common"
	"roller-coaster/internal/track"
)

// tracer writes to trace with key 'coaster.physics'
func tracer() tracing.Trace {
	return tracing.Select("coaster.physics")
}

const (
	DefaultVelocity   = 0.7      // Track segments per second
	DefaultJumpStep   = 0.12     // Jump phase consumed per frame
	DefaultJumpHeight = 1.0 / 8  // Peak of the jump arc above the rail (world units)
	DefaultFallStep   = 0.02     // Drop per frame while falling (world units)
	DefaultFloor      = -0.5 / 4 // Below this the wagon is lost
	DefaultWorldScale = 1.0 / 4  // World units per track unit
)

var (
	// ErrTrackTooShort is returned for a track the wagon cannot ride on.
	ErrTrackTooShort = errors.New("track too short to ride")
	// ErrInvalidParams is returned for ride constants that cannot drive a ride.
	ErrInvalidParams = errors.New("invalid ride parameters")
)

// Params holds the constants of the ride. It is passed by value and never
// changed after a Ride is created.
type Params struct {
	Samples    int // samples per track segment, as used to build the track
	Velocity   float64
	JumpStep   float64
	JumpHeight float64
	FallStep   float64
	Floor      float64
	WorldScale float64
}

// DefaultParams returns the parameters of the reference ride.
func DefaultParams() Params {
	return Params{
		Samples:    track.DefaultSamples,
		Velocity:   DefaultVelocity,
		JumpStep:   DefaultJumpStep,
		JumpHeight: DefaultJumpHeight,
		FallStep:   DefaultFallStep,
		Floor:      DefaultFloor,
		WorldScale: DefaultWorldScale,
	}
}

// validate rejects constants under which the wagon could stall, hover or
// never be lost. NaN fails every check.
func (p Params) validate() error {
	switch {
	case p.Samples < 1:
		return fmt.Errorf("%w: samples=%d", ErrInvalidParams, p.Samples)
	case !(p.Velocity >= 0) || math.IsInf(p.Velocity, 0):
		return fmt.Errorf("%w: velocity=%g", ErrInvalidParams, p.Velocity)
	case !(p.JumpStep > 0) || math.IsInf(p.JumpStep, 0):
		return fmt.Errorf("%w: jump step=%g", ErrInvalidParams, p.JumpStep)
	case !(p.FallStep > 0) || math.IsInf(p.FallStep, 0):
		return fmt.Errorf("%w: fall step=%g", ErrInvalidParams, p.FallStep)
	case !(p.WorldScale > 0) || math.IsInf(p.WorldScale, 0):
		return fmt.Errorf("%w: world scale=%g", ErrInvalidParams, p.WorldScale)
	case !finite(p.JumpHeight) || !finite(p.Floor):
		return fmt.Errorf("%w: jump height=%g floor=%g", ErrInvalidParams, p.JumpHeight, p.Floor)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Mode is the motion state of the wagon.
type Mode int

const (
	Grounded Mode = iota
	Jumping
	Falling
	GameOver
)

func (m Mode) String() string {
	switch m {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Falling:
		return "falling"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// State is the controller state of one session. It is a plain value: Step
// takes one and returns the next.
type State struct {
	X, Y      float64 // wagon position (world units)
	Theta     float64 // wagon tilt (radians)
	Jump      bool    // jump in progress
	Falling   bool    // in free fall, never cleared
	JumpPhase float64 // remaining jump arc, counts down from π
	Index     int     // current track index
	Over      bool
}

// NewState returns the state at session start.
func NewState() State {
	return State{JumpPhase: math.Pi}
}

// Mode derives the motion state from the flags.
func (s State) Mode() Mode {
	switch {
	case s.Over:
		return GameOver
	case s.Falling:
		return Falling
	case s.Jump:
		return Jumping
	}
	return Grounded
}

// Input is what the frame loop feeds into a step.
type Input struct {
	Elapsed       float64 // seconds since session start
	JumpRequested bool    // true only on the frame the jump key went down
}

// Frame is the output of a step, ready for presentation.
type Frame struct {
	Position   common.Vec2
	Theta      float64
	WheelAngle float64
	Index      int
	Mode       Mode
}

// Ride advances a wagon along a dense track.
type Ride struct {
	track  *track.Dense
	params Params
	last   int // highest index the wagon may occupy
}

// NewRide prepares a ride on a built track.
func NewRide(tr *track.Dense, params Params) (*Ride, error) {
	if tr == nil || tr.Len() < 2 {
		return nil, ErrTrackTooShort
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	if params.Samples != tr.Samples() {
		return nil, fmt.Errorf("%w: %d samples per segment, track was built with %d",
			ErrInvalidParams, params.Samples, tr.Samples())
	}
	last := tr.Len() - 3
	if last < 0 {
		last = 0
	}
	return &Ride{track: tr, params: params, last: last}, nil
}

// Track returns the track of this ride.
func (r *Ride) Track() *track.Dense {
	return r.track
}

// Params returns the ride constants.
func (r *Ride) Params() Params {
	return r.params
}

// Last returns the index at which the wagon stops advancing.
func (r *Ride) Last() int {
	return r.last
}

// index maps elapsed time to a track index. It never moves backwards and
// always leaves room for the look-ahead point.
func (r *Ride) index(prev int, elapsed float64) int {
	t := int(math.Floor(elapsed * float64(r.params.Samples) * r.params.Velocity))
	if t < prev {
		t = prev
	}
	if t > r.last {
		t = r.last
	}
	if t < 0 {
		t = 0
	}
	return t
}

// Step advances the wagon by one frame. A state in GameOver is returned
// unchanged.
//
// Rules, in order of precedence: a gap under a wagon that is not jumping
// starts the fall; a jump request while grounded starts a jump; a jump in
// progress follows its half-sine arc; otherwise the wagon sits on the rail.
// A falling wagon drops every frame. The tilt follows the rail towards the
// next point except during a jump.
func (r *Ride) Step(s State, in Input) (State, Frame) {
	if s.Over {
		return s, r.frame(s)
	}
	before := s.Mode()
	s.Index = r.index(s.Index, in.Elapsed)
	p := r.track.At(s.Index)
	next := r.track.At(s.Index + 1)
	k := r.params.WorldScale
	s.X = p.Position.X * k
	rail := p.Position.Y * k
	ahead := next.Position.Scale(k)

	switch {
	case !p.Solid && !s.Jump:
		s.Falling = true
	case in.JumpRequested && !s.Jump && !s.Falling:
		s.Jump = true
		s.JumpPhase = math.Pi
		fallthrough
	case s.Jump && !s.Falling:
		if s.JumpPhase > 0 {
			s.Y = rail + math.Sin(s.JumpPhase)*r.params.JumpHeight
			s.JumpPhase -= r.params.JumpStep
		} else {
			s.Jump = false
			s.JumpPhase = math.Pi
		}
	case p.Solid && !s.Falling:
		s.Y = rail
	}
	if s.Falling {
		s.Y -= r.params.FallStep
	}

	if !s.Jump {
		s.Theta = ahead.Sub(common.Vec2{X: s.X, Y: s.Y}).Angle()
	}
	if s.Y < r.params.Floor {
		s.Over = true
	}
	if after := s.Mode(); after != before {
		tracer().P("index", s.Index).Debugf("%s -> %s at y=%.3f", before, after, s.Y)
	}
	return s, r.frame(s)
}

func (r *Ride) frame(s State) Frame {
	return Frame{
		Position:   common.Vec2{X: s.X, Y: s.Y},
		Theta:      s.Theta,
		WheelAngle: float64(s.Index),
		Index:      s.Index,
		Mode:       s.Mode(),
	}
}
