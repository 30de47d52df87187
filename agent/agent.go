// Package agent provides policies that map a game state to a turn action.
// Implementations clamp their output to [-1, 1]; the state machine itself
// accepts whatever it is given.
package agent

import (
	"math"

	"twocars/game"
)

// An Agent produces an action for the state it is shown. Implementations
// must not mutate the state and must not propagate evaluation failures;
// anything unrecoverable becomes the neutral action.
type Agent interface {
	PerformAction(state game.GameState) float64
}

// Clamp bounds an action to the legal [-1, 1] range. NaN pins to -1.0:
// guarded arithmetic can produce Inf, and Inf - Inf must not leak NaN
// headings into the state machine.
func Clamp(action float64) float64 {
	if math.IsNaN(action) {
		return -1.0
	}
	return math.Min(math.Max(-1.0, action), 1.0)
}
