package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// headOnState puts the cars on the x axis facing each other: the pursuer at
// the origin heading +x, the evader at x=distance heading -x.
func headOnState(totalTurns int, captureRadius, distance float64) GameState {
	pursuer := CarState{Speed: 1, TurningRate: 0.5, X: 0, Y: 0, Heading: 0}
	evader := CarState{Speed: 1, TurningRate: 0.5, X: distance, Y: 0, Heading: math.Pi}
	return NewState(totalTurns, captureRadius, pursuer, evader)
}

// playRound applies one full round: the pursuer's half-step then the main step.
func playRound(s GameState, pursuerAction, evaderAction float64) GameState {
	return s.Step(pursuerAction).Step(evaderAction)
}

func TestCarAdvanceTurnsBeforeMoving(t *testing.T) {
	car := CarState{Speed: 1, TurningRate: math.Pi / 2, X: 0, Y: 0, Heading: 0}

	moved := car.advance(1)

	require.InDelta(t, math.Pi/2, moved.Heading, 1e-12, "heading should update by the full turning rate")
	require.InDelta(t, 0, moved.X, 1e-12, "displacement should follow the new heading")
	require.InDelta(t, 1, moved.Y, 1e-12, "displacement should follow the new heading")
	require.Equal(t, car.Speed, moved.Speed, "speed never changes")
	require.Equal(t, car.TurningRate, moved.TurningRate, "turning rate never changes")
}

func TestTurnRateFromTurnRadius(t *testing.T) {
	require.InDelta(t, 0.5, TurnRateFromTurnRadius(1, 2), 1e-12)
	require.InDelta(t, 2.0, TurnRateFromTurnRadius(4, 2), 1e-12)
}

func TestPursuerHalfStepBuffersActionOnly(t *testing.T) {
	state := headOnState(100, 1, 10)

	next := state.Step(0.75)

	require.Equal(t, Evader, next.CurrentPlayer(), "turn should pass to the evader")
	require.Equal(t, 0.75, next.pursuerAction, "action should be buffered unchanged")
	require.Equal(t, state.Pursuer, next.Pursuer, "Phase A must not move the pursuer")
	require.Equal(t, state.Evader, next.Evader, "Phase A must not move the evader")
	require.Equal(t, state.TurnsRemaining, next.TurnsRemaining, "Phase A must not touch the clock")
	require.False(t, next.IsTerminal(), "Phase A never evaluates termination")
	require.Equal(t, Pursuer, state.CurrentPlayer(), "the input state is not mutated")
}

func TestMainStepAdvancesBothCars(t *testing.T) {
	state := headOnState(100, 1, 10)

	next := playRound(state, 0, 0)

	require.InDelta(t, 1, next.Pursuer.X, 1e-12, "pursuer should move toward the evader")
	require.InDelta(t, 9, next.Evader.X, 1e-12, "evader should move toward the pursuer")
	require.Equal(t, 99, next.TurnsRemaining, "main step decrements the clock")
	require.Equal(t, Pursuer, next.CurrentPlayer(), "turn should reset to the pursuer")
	require.Equal(t, 0.0, next.pursuerAction, "scratch action should reset to neutral")
	require.False(t, next.IsTerminal())
	require.Equal(t, 0.0, next.Payoff(Evader), "non-terminal steps pay nothing")
}

func TestHeadOnCapture(t *testing.T) {
	// Closing at a combined 2 per timestep from distance 10. Capture uses
	// the pre-update distance, so it lands on the main step that begins at
	// distance 0: round 6, leaving 94 turns on the clock.
	state := headOnState(100, 1, 10)

	rounds := 0
	for !state.IsTerminal() {
		state = playRound(state, 0, 0)
		rounds++
		require.LessOrEqual(t, rounds, 100, "game must terminate within total turns")
	}

	require.Equal(t, 6, rounds, "capture should trigger on the pre-update distance")
	require.Equal(t, 94, state.TurnsRemaining)
	require.InDelta(t, -0.94, state.Payoff(Evader), 1e-12, "early capture costs the evader more")
	require.InDelta(t, 0.94, state.Payoff(Pursuer), 1e-12)
}

func TestTimeoutPaysEvader(t *testing.T) {
	state := headOnState(100, 1, 1000)

	rounds := 0
	for !state.IsTerminal() {
		state = playRound(state, 0, 0)
		rounds++
		require.LessOrEqual(t, rounds, 100, "game must terminate within total turns")
	}

	require.Equal(t, 100, rounds)
	require.Equal(t, 0, state.TurnsRemaining)
	require.Equal(t, 1.0, state.Payoff(Evader), "surviving every turn wins for the evader")
	require.Equal(t, -1.0, state.Payoff(Pursuer))
}

func TestPayoffZeroSum(t *testing.T) {
	state := headOnState(50, 1, 10)
	for !state.IsTerminal() {
		require.Equal(t, -state.Payoff(Evader), state.Payoff(Pursuer), "payoffs must be zero-sum in every state")
		state = playRound(state, 1, -1)
	}
	require.Equal(t, -state.Payoff(Evader), state.Payoff(Pursuer), "payoffs must be zero-sum at the terminal state")
}

func TestStepIsPureOverCopies(t *testing.T) {
	state := headOnState(100, 1, 10)

	first := playRound(state, 0.5, -0.5)
	copied := state
	second := playRound(copied, 0.5, -0.5)

	require.Equal(t, first, second, "transitions must not depend on hidden shared state")
	require.Equal(t, headOnState(100, 1, 10), state, "the original state must be unchanged")
}

func TestOutOfRangeActionsAreAccepted(t *testing.T) {
	// The state machine does not validate the action range; oversized
	// actions simply scale the turning rate.
	state := headOnState(100, 1, 10)

	next := playRound(state, 4, 0)

	require.InDelta(t, 2.0, next.Pursuer.Heading, 1e-12, "action scales the turning rate unclamped")
}
