package game

import "math"

// GameState is an immutable snapshot of the pursuit-evasion game. Step
// returns a new state; no transition mutates the receiver, which is what
// makes independent episodes safe to run in parallel.
type GameState struct {
	// TotalTurns is the configured number of main steps before the evader
	// wins by timeout.
	TotalTurns int
	// CaptureRadius is the distance below which the pursuer captures.
	CaptureRadius float64

	Pursuer CarState
	Evader  CarState

	// TurnsRemaining decrements by one on each main step only.
	TurnsRemaining int

	current int
	// pursuerAction buffers the Phase A action until the paired evader
	// action arrives. Reset to 0 after every main step.
	pursuerAction float64
	terminal      bool
	// payoff is stored from the evader's perspective.
	payoff float64
}

// NewState builds the initial configuration. The pursuer acts first.
func NewState(totalTurns int, captureRadius float64, pursuer, evader CarState) GameState {
	return GameState{
		TotalTurns:     totalTurns,
		CaptureRadius:  captureRadius,
		Pursuer:        pursuer,
		Evader:         evader,
		TurnsRemaining: totalTurns,
		current:        Pursuer,
	}
}

// CurrentPlayer reports which player must act next.
func (s GameState) CurrentPlayer() int {
	return s.current
}

// IsTerminal reports whether the game has ended. No further transitions are
// defined on a terminal state; callers must stop stepping.
func (s GameState) IsTerminal() bool {
	return s.terminal
}

// Payoff returns the payoff for the given player. The game is zero-sum: the
// pursuer's payoff is the negation of the evader's.
func (s GameState) Payoff(player int) float64 {
	if player == Evader {
		return s.payoff
	}
	return -s.payoff
}

// Distance is the Euclidean distance between the two cars.
func (s GameState) Distance() float64 {
	dx := s.Pursuer.X - s.Evader.X
	dy := s.Pursuer.Y - s.Evader.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Step advances the game by one player-action. While the game is logically
// simultaneous, each round runs as two sequential half-steps: the pursuer's
// action is buffered (Phase A), then the evader's action triggers the main
// step (Phase B) that moves both cars with their respective actions.
//
// Actions are interpreted as turn inputs in [-1, 1] scaled by the car's
// turning rate. No range validation happens here; clamping is the acting
// policy's responsibility.
func (s GameState) Step(action float64) GameState {
	if s.current == Pursuer {
		return s.simultaneousStep(action)
	}
	return s.mainStep(action)
}

// simultaneousStep stores the pursuer's action and hands the turn to the
// evader. Positions, the clock, and termination are untouched.
func (s GameState) simultaneousStep(pursuerAction float64) GameState {
	next := s
	next.pursuerAction = pursuerAction
	next.current = Evader
	return next
}

// mainStep advances both cars simultaneously, the pursuer with its buffered
// action and the evader with the action just supplied, then decrements the
// clock and evaluates termination.
//
// Capture compares the distance of the incoming state, before this step's
// position update.
func (s GameState) mainStep(evaderAction float64) GameState {
	pursuerNext := s.Pursuer.advance(s.pursuerAction)
	evaderNext := s.Evader.advance(evaderAction)

	turnsRemaining := s.TurnsRemaining - 1

	capture := s.Distance() < s.CaptureRadius
	terminal := turnsRemaining <= 0 || capture

	// Payoff from the evader's perspective: surviving to the end wins,
	// and an earlier capture costs more.
	payoff := 0.0
	if turnsRemaining == 0 {
		payoff = 1.0
	}
	if capture {
		payoff = -float64(turnsRemaining) / float64(s.TotalTurns)
	}

	return GameState{
		TotalTurns:     s.TotalTurns,
		CaptureRadius:  s.CaptureRadius,
		Pursuer:        pursuerNext,
		Evader:         evaderNext,
		TurnsRemaining: turnsRemaining,
		current:        Pursuer,
		pursuerAction:  0.0,
		terminal:       terminal,
		payoff:         payoff,
	}
}
