// Package session runs one ride: it owns the controller state, feeds it
// frame inputs, keeps the scene in sync and optionally lets the autopilot
// decide when to jump. It has no knowledge of windows or keyboards.
package session

import (
	"github.com/google/uuid"
	"github.com/npillmayer/schuko/tracing"

	"roller-coaster/internal/agent"
	"roller-coaster/internal/physics"
	"roller-coaster/internal/scene"
)

// tracer writes to trace with key 'coaster.session'
func tracer() tracing.Trace {
	return tracing.Select("coaster.session")
}

// Session is a single play-through of a ride. It is not safe for concurrent
// use; the frame loop is its only caller.
type Session struct {
	ID    string
	ride  *physics.Ride
	scene *scene.Coaster
	pilot agent.Agent // nil for manual play
	state physics.State
	frame physics.Frame
	runs  int
}

// New starts a session on ride. coaster and pilot may be nil.
func New(ride *physics.Ride, coaster *scene.Coaster, pilot agent.Agent) *Session {
	s := &Session{ride: ride, scene: coaster, pilot: pilot}
	s.Restart()
	return s
}

// Restart begins a fresh run under a new session id. A trained autopilot
// keeps what it learned.
func (s *Session) Restart() {
	s.ID = uuid.New().String()
	s.state = physics.NewState()
	s.frame = physics.Frame{}
	s.runs++
	if s.scene != nil {
		s.scene.Apply(s.frame)
	}
	tracer().P("session", s.ID).Infof("run %d started", s.runs)
}

// Advance runs one frame. The autopilot, if any, may add a jump request to
// the player's.
func (s *Session) Advance(in physics.Input) physics.Frame {
	if s.state.Over {
		return s.frame
	}
	var before agent.State
	action := agent.ActionCoast
	if s.pilot != nil {
		before = agent.DiscretizeState(s.state, s.ride.Track())
		action = s.pilot.SelectAction(before)
		in.JumpRequested = in.JumpRequested || action == agent.ActionJump
	}
	s.state, s.frame = s.ride.Step(s.state, in)
	if s.pilot != nil {
		after := agent.DiscretizeState(s.state, s.ride.Track())
		s.pilot.Learn(before, action, agent.CalculateReward(s.state, action), after)
	}
	if s.scene != nil {
		s.scene.Apply(s.frame)
	}
	if s.state.Over {
		tracer().P("session", s.ID).Infof("game over at index %d after %.2fs", s.state.Index, in.Elapsed)
	}
	return s.frame
}

// State returns the controller state.
func (s *Session) State() physics.State {
	return s.state
}

// Frame returns the output of the latest step.
func (s *Session) Frame() physics.Frame {
	return s.frame
}

// Runs counts the runs started, including the current one.
func (s *Session) Runs() int {
	return s.runs
}

// Autopilot reports whether the agent is driving.
func (s *Session) Autopilot() bool {
	return s.pilot != nil
}

// Pilot returns the agent, or nil for manual play.
func (s *Session) Pilot() agent.Agent {
	return s.pilot
}

// Ride returns the ride this session runs on.
func (s *Session) Ride() *physics.Ride {
	return s.ride
}

// Scene returns the scene kept in sync with the ride, or nil.
func (s *Session) Scene() *scene.Coaster {
	return s.scene
}
