package agent

import (
	"golang.org/x/exp/rand"

	"twocars/game"
)

// FixedAgent always plays the same action. Useful as an exhibition opponent
// and for pinning down transitions in tests.
type FixedAgent struct {
	action float64
}

func NewFixedAgent(action float64) *FixedAgent {
	return &FixedAgent{action: Clamp(action)}
}

func (a *FixedAgent) PerformAction(game.GameState) float64 {
	return a.action
}

// RandomAgent plays a uniformly random canonical action each step.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) PerformAction(game.GameState) float64 {
	return game.Actions[a.rng.Intn(len(game.Actions))]
}
