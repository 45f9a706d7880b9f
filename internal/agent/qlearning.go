package agent

import (
	"fmt"
	"math"
	"math/rand"

	"roller-coaster/internal/physics"
	"roller-coaster/internal/track"
)

// Actions
const (
	ActionCoast = iota
	ActionJump
	ActionCount
)

// Hyperparameters
const (
	Alpha      = 0.1  // Learning Rate
	Gamma      = 0.95 // Discount Factor
	MinEpsilon = 0.01
	Decay      = 0.999 // Decay Rate
)

// State space
const (
	BucketSize = 2  // track points per distance bucket
	Buckets    = 10 // the last bucket also means "no gap ahead"
)

// Rewards
const (
	RewardAlive    = 1.0
	RewardGameOver = -100.0
	RewardJump     = -0.5
)

// State represents the discretized state of the wagon.
type State struct {
	GapAhead int // distance to the next gap in buckets (0..Buckets-1)
	Mode     physics.Mode
}

// QTable stores the Q-values for state-action pairs.
type QTable map[State][ActionCount]float64

// Agent decides when the wagon jumps and learns from the outcome.
type Agent interface {
	SelectAction(state State) int
	Learn(state State, action int, reward float64, nextState State)
	DebugInfoStr() string
}

var _ Agent = (*AgentQTable)(nil)

type AgentQTable struct {
	QTable  QTable
	Epsilon float64 // exploration rate, decays with every selection
	rnd     *rand.Rand
}

// NewAgent creates an untrained agent. Equal seeds give equal behaviour.
func NewAgent(seed int64) *AgentQTable {
	return &AgentQTable{
		QTable:  make(QTable),
		Epsilon: 1.0,
		rnd:     rand.New(rand.NewSource(seed)),
	}
}

// DiscretizeState converts the wagon state to a discrete State.
func DiscretizeState(s physics.State, d *track.Dense) State {
	bucket := Buckets - 1
	if gap, ok := d.NextGap(s.Index); ok {
		bucket = (gap - s.Index) / BucketSize
		if bucket > Buckets-1 {
			bucket = Buckets - 1
		}
	}
	return State{GapAhead: bucket, Mode: s.Mode()}
}

// SelectAction chooses an action using Epsilon-Greedy policy.
func (a *AgentQTable) SelectAction(state State) int {
	a.Epsilon = math.Max(a.Epsilon*Decay, MinEpsilon)

	if a.rnd.Float64() < a.Epsilon {
		return a.rnd.Intn(ActionCount)
	}
	return a.Greedy(state)
}

// Greedy returns the best known action for state, breaking ties at random.
// Unknown states get a random action.
func (a *AgentQTable) Greedy(state State) int {
	qValues, exists := a.QTable[state]
	if !exists {
		return a.rnd.Intn(ActionCount)
	}

	bestAction := 0
	maxQ := -math.MaxFloat64

	start := a.rnd.Intn(ActionCount)
	for i := 0; i < ActionCount; i++ {
		idx := (start + i) % ActionCount
		if qValues[idx] > maxQ {
			maxQ = qValues[idx]
			bestAction = idx
		}
	}
	return bestAction
}

// Learn updates the Q-Table based on the transition.
func (a *AgentQTable) Learn(state State, action int, reward float64, nextState State) {
	qValues := a.QTable[state]
	currentQ := qValues[action]

	nextQValues, exists := a.QTable[nextState]
	maxNextQ := 0.0
	if exists && nextState.Mode != physics.GameOver {
		maxNextQ = -math.MaxFloat64
		for _, q := range nextQValues {
			if q > maxNextQ {
				maxNextQ = q
			}
		}
	}

	// Q(s,a) = Q(s,a) + Alpha * (R + Gamma * maxQ(s',a') - Q(s,a))
	qValues[action] = currentQ + Alpha*(reward+Gamma*maxNextQ-currentQ)
	a.QTable[state] = qValues
}

func (a *AgentQTable) DebugInfoStr() string {
	return fmt.Sprintf("Agent Type: Q-Table\nQ-Table Size: %d\nEpsilon: %.3f", len(a.QTable), a.Epsilon)
}

// CalculateReward scores the step that led to next.
func CalculateReward(next physics.State, action int) float64 {
	if next.Over {
		return RewardGameOver
	}
	reward := RewardAlive
	if action == ActionJump {
		reward += RewardJump
	}
	return reward
}
