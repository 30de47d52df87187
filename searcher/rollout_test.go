package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"twocars/game"
)

// tailChase puts a fast pursuer directly behind the evader, both heading +x.
// Holding straight closes at one unit per round; turning hard makes the
// pursuer loop and lose the evader entirely.
func tailChase() game.GameState {
	pursuer := game.CarState{Speed: 2, TurningRate: 1, X: 0, Y: 0, Heading: 0}
	evader := game.CarState{Speed: 1, TurningRate: 1, X: 5, Y: 0, Heading: 0}
	return game.NewState(50, 1, pursuer, evader)
}

func TestRolloutPrefersClosingAction(t *testing.T) {
	r := NewRollout()

	action := r.FindNextAction(tailChase())

	require.Equal(t, 0.0, action, "holding straight captures earliest in a tail chase")
}

func TestRolloutIsDeterministicWithStraightPlayout(t *testing.T) {
	state := tailChase()
	first := NewRollout().FindNextAction(state)
	second := NewRollout().FindNextAction(state)
	require.Equal(t, first, second)
}

func TestRolloutWithRandomPlayoutStaysCanonical(t *testing.T) {
	r := NewRollout(WithPlayouts(8), WithPlayout(RandomPlayout(42)), WithHorizon(20))

	action := r.FindNextAction(tailChase())

	require.Contains(t, game.Actions, action)
}

func TestRolloutScoresForTheActingPlayer(t *testing.T) {
	// After the pursuer's half-step it is the evader's turn; the chosen
	// action must still be a legal turn input.
	state := tailChase().Step(0)
	require.Equal(t, game.Evader, state.CurrentPlayer())

	action := NewRollout(WithHorizon(10)).FindNextAction(state)

	require.Contains(t, game.Actions, action)
}

func TestRolloutOptions(t *testing.T) {
	r := NewRollout(WithHorizon(7), WithPlayouts(3))
	require.Equal(t, 7, r.horizon)
	require.Equal(t, 3, r.playouts)

	defaults := NewRollout(WithHorizon(0), WithPlayouts(-1))
	require.Equal(t, DefaultHorizon, defaults.horizon, "non-positive options keep defaults")
	require.Equal(t, 1, defaults.playouts, "non-positive options keep defaults")
}
