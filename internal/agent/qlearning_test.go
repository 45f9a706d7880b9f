package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roller-coaster/internal/common"
	"roller-coaster/internal/physics"
	"roller-coaster/internal/track"
)

func build(t *testing.T) *track.Dense {
	t.Helper()
	d, err := track.Build([]track.Waypoint{
		{Solid: true},
		{Solid: false, Position: common.Vec2{X: 1, Y: 5}},
		{Solid: true, Position: common.Vec2{X: 2, Y: 5}},
	}, 4)
	require.NoError(t, err)
	return d
}

func TestDiscretizeState(t *testing.T) {
	d := build(t) // gap at index 3
	s := physics.NewState()
	assert.Equal(t, State{GapAhead: 1, Mode: physics.Grounded}, DiscretizeState(s, d))
	s.Index = 3
	assert.Equal(t, 0, DiscretizeState(s, d).GapAhead)
	s.Index = 4
	assert.Equal(t, Buckets-1, DiscretizeState(s, d).GapAhead, "no gap ahead")
	s.Jump = true
	assert.Equal(t, physics.Jumping, DiscretizeState(s, d).Mode)
}

func TestLearnPrefersRewardedAction(t *testing.T) {
	a := NewAgent(1)
	s := State{GapAhead: 0}
	over := State{GapAhead: 0, Mode: physics.GameOver}
	for i := 0; i < 50; i++ {
		a.Learn(s, ActionCoast, RewardGameOver, over)
		a.Learn(s, ActionJump, RewardAlive+RewardJump, State{GapAhead: 1, Mode: physics.Jumping})
	}
	q := a.QTable[s]
	assert.Greater(t, q[ActionJump], q[ActionCoast])
	for i := 0; i < 10; i++ {
		assert.Equal(t, ActionJump, a.Greedy(s))
	}
}

func TestEpsilonDecays(t *testing.T) {
	a := NewAgent(7)
	for i := 0; i < 10000; i++ {
		action := a.SelectAction(State{})
		assert.True(t, action == ActionCoast || action == ActionJump)
	}
	assert.InDelta(t, MinEpsilon, a.Epsilon, 1e-9)
	assert.Contains(t, a.DebugInfoStr(), "Q-Table")
}

func TestCalculateReward(t *testing.T) {
	s := physics.NewState()
	assert.Equal(t, RewardAlive, CalculateReward(s, ActionCoast))
	assert.Equal(t, RewardAlive+RewardJump, CalculateReward(s, ActionJump))
	s.Over = true
	assert.Equal(t, RewardGameOver, CalculateReward(s, ActionCoast))
}
