// Package engine runs complete episodes of a two-player state-action game.
// The driver is generic over the state type: a game is just a bundle of
// injected functions, and the pursuit-evasion game is one instantiation.
package engine

import "github.com/rs/zerolog/log"

// PayoffMetric keys each player's payoff in episode results.
const PayoffMetric = "payoff"

// An Agent produces an action for the state it is shown.
type Agent[S any] interface {
	PerformAction(state S) float64
}

// Game bundles the functions the driver needs over an opaque state type.
type Game[S any] struct {
	// Initial is the configured starting state.
	Initial S
	// Step advances the state by one player-action.
	Step func(state S, action float64) S
	// CurrentPlayer reports which agent index must act in the state.
	CurrentPlayer func(state S) int
	// IsTerminal reports whether the state ends the episode.
	IsTerminal func(state S) bool
	// Payoff reads the terminal payoff for a player index.
	Payoff func(state S, player int) float64
}

// Result holds one player's episode metrics.
type Result struct {
	Metrics map[string]float64
}

// Exhibition is the ordered sequence of every state an episode visited,
// including the initial one, for consumption by an external renderer.
type Exhibition[S any] struct {
	States []S
}

// Evaluate runs one full episode: while the state is not terminal, the
// current player's agent picks an action and the state advances. It returns
// one result per agent with that player's payoff. When exhibition is
// requested the full state trajectory is recorded and returned as well;
// otherwise the second return is nil.
//
// The loop is bounded by the game's own termination rule; for the
// pursuit-evasion game that is at most TotalTurns main steps.
func (g Game[S]) Evaluate(agents []Agent[S], exhibition bool) ([]Result, *Exhibition[S]) {
	state := g.Initial
	var history []S
	if exhibition {
		history = append(history, state)
	}

	steps := 0
	for !g.IsTerminal(state) {
		player := g.CurrentPlayer(state)
		action := agents[player].PerformAction(state)
		state = g.Step(state, action)
		steps++
		if exhibition {
			history = append(history, state)
		}
	}

	results := make([]Result, len(agents))
	for player := range agents {
		results[player] = Result{
			Metrics: map[string]float64{PayoffMetric: g.Payoff(state, player)},
		}
	}
	log.Debug().Int("steps", steps).Msg("episode finished")

	if exhibition {
		return results, &Exhibition[S]{States: history}
	}
	return results, nil
}
