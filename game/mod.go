// Package game implements the two-car pursuit-evasion game: immutable value
// states and a pure transition function. A logically simultaneous round is
// split into two sequential half-steps (see GameState.Step).
package game

// Player indices. The pursuer always acts first within a round.
const (
	Pursuer = 0
	Evader  = 1
)

// Actions is the canonical discrete turn-input set used by baseline agents
// and exhibition tooling. The state machine itself accepts any float input.
var Actions = []float64{-1, 0, 1}

// ActionNames labels Actions by index.
var ActionNames = []string{"Right", "Straight", "Left"}
